package main

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

// ========== Context Key 常量 ==========

const (
	// MsgIDKey 请求唯一标识的 context key
	MsgIDKey = "msgId"
	// RequestBodyKey 请求体的 context key（用于错误记录）
	RequestBodyKey = "requestBody"
)

// ========== HTTP Header 常量 ==========

const (
	// HeaderXRequestID 客户端传入的请求ID header
	HeaderXRequestID = "X-Request-ID"
	// HeaderXMsgID 响应中返回的 msgId header
	HeaderXMsgID = "X-Msg-ID"
)

// TraceMiddleware 请求追踪中间件
// 功能：
// 1. 生成或获取 msgId（优先使用 X-Request-ID header）
// 2. 将 msgId 和请求体存入 Gin context（请求体用于错误记录）
// 3. 在响应 header 中添加 X-Msg-ID
// 4. 请求失败时记录状态码和耗时
func TraceMiddleware(logger *StructuredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		msgID := c.GetHeader(HeaderXRequestID)
		if msgID == "" {
			msgID = generateID("msg")
		}

		c.Set(MsgIDKey, msgID)

		// Body 只能读取一次，读出后重新设置供 handler 使用
		if c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				c.Set(RequestBodyKey, string(bodyBytes))
			}
		}

		c.Header(HeaderXMsgID, msgID)

		c.Next()

		// 正常请求不记日志，只在错误时记录
		statusCode := c.Writer.Status()
		if statusCode >= 400 {
			duration := time.Since(startTime)
			logData := map[string]any{
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"statusCode": statusCode,
				"duration":   duration.String(),
				"durationMs": duration.Milliseconds(),
			}
			if statusCode >= 500 {
				logger.Error(msgID, "请求失败", logData)
			} else {
				logger.Warn(msgID, "请求失败", logData)
			}
		}
	}
}

// ========== 辅助函数 ==========

// GetMsgID 从 Gin context 获取 msgId，没有时返回 "unknown"
func GetMsgID(c *gin.Context) string {
	if msgID, exists := c.Get(MsgIDKey); exists {
		if id, ok := msgID.(string); ok {
			return id
		}
	}
	return "unknown"
}

// GetRequestBody 从 Gin context 获取请求体，没有时返回空字符串
func GetRequestBody(c *gin.Context) string {
	if body, exists := c.Get(RequestBodyKey); exists {
		if b, ok := body.(string); ok {
			return b
		}
	}
	return ""
}
