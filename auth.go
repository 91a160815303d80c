package coupangclient

import (
	"net/url"
	"sync"

	"go.uber.org/zap"
)

// AuthManager 登录与 Token 管理器
// 登录成功后从 Cookie 中提取 AFATK 作为 Token
// Token 不会自动续期，过期后需要重新调用 Login
type AuthManager struct {
	session     *Session
	credentials Credentials
	token       string
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewAuthManager 创建 AuthManager
func NewAuthManager(session *Session, credentials Credentials) *AuthManager {
	return &AuthManager{
		session:     session,
		credentials: credentials,
		logger:      zap.NewNop(),
	}
}

// SetLogger 注入日志记录器
func (m *AuthManager) SetLogger(logger *zap.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Login 执行登录流程
// 三步：GET 登录页 → POST 提交凭证（跟随重定向）→ GET postlogin
// 之后从 Cookie Jar 读取 AFATK：
// - 拿到 Token 返回 (true, nil)
// - 请求都成功但没有 Token（凭证错误的预期表现）返回 (false, nil)
// - 任何一步网络/状态码失败返回 (false, err)
func (m *AuthManager) Login() (bool, error) {
	if _, err := m.session.Get(m.session.LoginBaseURL+LoginPagePath, nil); err != nil {
		return false, err
	}

	form := url.Values{}
	form.Set("email", m.credentials.Username)
	form.Set("password", m.credentials.Password)
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded; charset=UTF-8",
	}
	if _, err := m.session.PostForm(m.session.LoginBaseURL+LoginProcessPath, form, headers); err != nil {
		return false, err
	}

	if _, err := m.session.Get(m.session.PartnersBaseURL+PostLoginPath, nil); err != nil {
		return false, err
	}

	token := m.session.Cookie(TokenCookieName)

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	if token == "" {
		m.logger.Debug("登录未获得 Token（通常是用户名或密码错误）")
		return false, nil
	}

	m.logger.Debug("登录成功", zap.Int("tokenLength", len(token)))
	return true, nil
}

// Token 返回当前 Token，未登录时为空字符串
func (m *AuthManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// HasToken 是否持有 Token
func (m *AuthManager) HasToken() bool {
	return m.Token() != ""
}

// SetToken 直接设置 Token（测试用）
func (m *AuthManager) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}
