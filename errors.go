package coupangclient

import (
	"errors"
	"fmt"
)

// ========== 错误类型 ==========

// 两类错误：
// - StatusError：HTTP 状态码非 2xx（网络层错误由 session 直接 wrap 后返回）
// - ShapeError：响应 JSON 缺少预期字段
// 两者都不在本地恢复，记录日志后原样抛给调用方

// StatusError HTTP 状态码错误
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string // 响应体片段，便于排查
}

// Error 实现 error 接口
func (e *StatusError) Error() string {
	return fmt.Sprintf("请求失败 [%d] %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
}

// ShapeError 响应结构错误（缺少预期字段）
type ShapeError struct {
	Field string
	Err   error
}

// Error 实现 error 接口
func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("响应缺少字段 %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("响应缺少字段 %s", e.Field)
}

// Unwrap 支持 errors.Is / errors.As 链式判断
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// IsStatusError 判断错误链中是否包含 HTTP 状态码错误
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsShapeError 判断错误链中是否包含响应结构错误
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
