package coupangclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxErrorBodySize 错误日志中记录的响应体最大长度
const maxErrorBodySize = 512

// Session 显式会话对象
// 持有独立的 Cookie Jar 和默认请求头，多个客户端实例之间互不干扰
// 注意：Cookie Jar 的写入没有额外加锁，单个 Session 不要跨 goroutine 共享
type Session struct {
	httpClient *http.Client
	jar        *cookiejar.Jar
	userAgent  string
	logger     *zap.Logger

	// 基地址可覆盖，测试时指向 httptest server
	LoginBaseURL    string
	PartnersBaseURL string
}

// NewSession 创建会话
// userAgent 为空时使用 DefaultUserAgent
func NewSession(userAgent string) *Session {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	// cookiejar.New(nil) 只在 PublicSuffixList 异常时报错，此处不会发生
	jar, _ := cookiejar.New(nil)

	return &Session{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		jar:             jar,
		userAgent:       userAgent,
		logger:          zap.NewNop(),
		LoginBaseURL:    DefaultLoginBaseURL,
		PartnersBaseURL: DefaultPartnersBaseURL,
	}
}

// SetLogger 注入日志记录器（默认为 Nop）
func (s *Session) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// defaultHeaders 默认请求头
func (s *Session) defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      s.userAgent,
		"accept-language": DefaultAcceptLanguage,
	}
}

// mergeHeaders 合并请求头：extra 覆盖同名默认值，未覆盖的默认值保留
func (s *Session) mergeHeaders(req *http.Request, extra map[string]string) {
	for k, v := range s.defaultHeaders() {
		req.Header.Set(k, v)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}

// do 发送请求并读取响应体
// 非 2xx 状态返回 *StatusError；网络错误 wrap 后返回
// 两种失败都先记录 error 级别日志再抛出
func (s *Session) do(req *http.Request) ([]byte, error) {
	reqID := uuid.New().String()
	start := time.Now()

	s.logger.Debug("发送请求",
		zap.String("requestId", reqID),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("请求发送失败",
			zap.String("requestId", reqID),
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("读取响应失败",
			zap.String("requestId", reqID),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > maxErrorBodySize {
			snippet = snippet[:maxErrorBodySize]
		}
		statusErr := &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       snippet,
		}
		s.logger.Error("请求返回异常状态码",
			zap.String("requestId", reqID),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("url", req.URL.String()),
		)
		return nil, statusErr
	}

	s.logger.Debug("请求完成",
		zap.String("requestId", reqID),
		zap.Int("statusCode", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return body, nil
}

// Get 发送 GET 请求
func (s *Session) Get(rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	s.mergeHeaders(req, headers)
	return s.do(req)
}

// PostForm 发送表单 POST 请求
// 重定向由 http.Client 默认策略跟随，Jar 在各跳之间累积 Cookie
func (s *Session) PostForm(rawURL string, values url.Values, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	s.mergeHeaders(req, headers)
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}
	return s.do(req)
}

// PostJSON 发送 JSON POST 请求，body 为已序列化的 JSON 字节
func (s *Session) PostJSON(rawURL string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	s.mergeHeaders(req, headers)
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}
	return s.do(req)
}

// Cookie 返回 partners 站点下指定名字的 Cookie 值
// 不存在时返回空字符串
func (s *Session) Cookie(name string) string {
	u, err := url.Parse(s.PartnersBaseURL)
	if err != nil {
		return ""
	}
	for _, c := range s.jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
