package main

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxBodySize 请求体最大记录大小（10KB）
// 超过此大小的请求体将被截断并标记
const MaxBodySize = 10 * 1024

// SensitiveHeaders 需要脱敏处理的敏感 header 列表
// 这些 header 的值将被替换为 "[REDACTED]"
var SensitiveHeaders = []string{
	"authorization",
	"x-token",
	"cookie",
	"set-cookie",
	"x-api-key",
	"x-csrf-token",
}

// ErrorContext 上游调用失败时的完整上下文信息
// 用于记录错误发生时的请求详情，便于问题排查
type ErrorContext struct {
	MsgID      string            `json:"msgId"`
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	ClientIP   string            `json:"clientIP"`
	Headers    map[string]string `json:"headers"` // 已脱敏
	Body       string            `json:"body"`
	BodyTrunc  bool              `json:"bodyTruncated"`
	Error      string            `json:"error"`
	StatusCode int               `json:"statusCode"`
}

// RecordError 记录失败请求的完整上下文
// 请求体超过 10KB 会被截断；敏感 header（含 X-Token、Cookie）做脱敏处理
func RecordError(c *gin.Context, logger *StructuredLogger, err error, statusCode int) {
	msgID := GetMsgID(c)

	body := GetRequestBody(c)
	body, bodyTruncated := TruncateBody(body, MaxBodySize)

	headers := sanitizeHeaders(c)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	errCtx := ErrorContext{
		MsgID:      msgID,
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		ClientIP:   c.ClientIP(),
		Headers:    headers,
		Body:       body,
		BodyTrunc:  bodyTruncated,
		Error:      errMsg,
		StatusCode: statusCode,
	}

	logger.Error(msgID, "上游调用失败详情", map[string]any{
		"errorContext": errCtx,
	})
}

// ========== 辅助函数 ==========

// sanitizeHeaders 获取并脱敏处理请求头
func sanitizeHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string)

	for key, values := range c.Request.Header {
		value := strings.Join(values, ", ")
		if isSensitiveHeader(key) {
			value = "[REDACTED]"
		}
		headers[key] = value
	}

	return headers
}

// isSensitiveHeader 检查是否为敏感 header（不区分大小写）
func isSensitiveHeader(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range SensitiveHeaders {
		if lowerKey == sensitive {
			return true
		}
	}
	return false
}

// TruncateBody 截断请求体
// 如果超过 maxSize，截断并添加 "[truncated]" 标记
func TruncateBody(body string, maxSize int) (string, bool) {
	if len(body) <= maxSize {
		return body, false
	}
	return body[:maxSize] + "[truncated]", true
}
