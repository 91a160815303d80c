package coupangclient

import (
	"encoding/json"
	"fmt"
)

// LinkService 短链生成服务
type LinkService struct {
	session *Session
	auth    *AuthManager
}

// NewLinkService 创建短链生成服务
func NewLinkService(session *Session, auth *AuthManager) *LinkService {
	return &LinkService{
		session: session,
		auth:    auth,
	}
}

// GetProductLink 为商品生成推广短链
// product 通常是 SearchKeyword 返回的记录，原样放入请求体
// 返回 data.shortUrl；短链不做本地缓存，每次调用都请求服务端
func (l *LinkService) GetProductLink(product Product) (string, error) {
	body, err := json.Marshal(linkRequest{Product: product})
	if err != nil {
		return "", fmt.Errorf("序列化短链请求失败: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json;charset=UTF-8",
		"X-Token":      l.auth.Token(),
	}

	respBody, err := l.session.PostJSON(l.session.PartnersBaseURL+BannerURLPath, body, headers)
	if err != nil {
		return "", err
	}

	return decodeShortURL(respBody)
}
