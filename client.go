package coupangclient

import "go.uber.org/zap"

// CoupangClient Coupang Partners API 客户端
// 一个实例持有一个独立会话，并发场景请为每个 goroutine 创建独立实例
type CoupangClient struct {
	Session *Session
	Auth    *AuthManager
	Search  *SearchService
	Link    *LinkService
}

// NewCoupangClient 创建客户端（使用默认 User-Agent）
func NewCoupangClient(username, password string) *CoupangClient {
	return NewCoupangClientWithUserAgent(username, password, "")
}

// NewCoupangClientWithUserAgent 创建客户端并覆盖 User-Agent
func NewCoupangClientWithUserAgent(username, password, userAgent string) *CoupangClient {
	session := NewSession(userAgent)
	auth := NewAuthManager(session, Credentials{Username: username, Password: password})
	search := NewSearchService(session, auth)
	link := NewLinkService(session, auth)

	return &CoupangClient{
		Session: session,
		Auth:    auth,
		Search:  search,
		Link:    link,
	}
}

// SetLogger 为客户端所有组件注入日志记录器
func (c *CoupangClient) SetLogger(logger *zap.Logger) {
	c.Session.SetLogger(logger)
	c.Auth.SetLogger(logger)
}
