package coupangclient

import (
	"encoding/json"
	"fmt"
)

// SearchService 商品搜索服务
type SearchService struct {
	session *Session
	auth    *AuthManager
}

// NewSearchService 创建搜索服务
// 参数：
// - session: 共享会话
// - auth: Token 来源
func NewSearchService(session *Session, auth *AuthManager) *SearchService {
	return &SearchService{
		session: session,
		auth:    auth,
	}
}

// SearchKeyword 按关键词搜索商品（默认第 0 页，每页 36 条）
// 返回 data.products 原样透传，不做过滤
// 未登录时 X-Token 为空，服务端会以状态码错误拒绝请求，客户端不做本地预校验
func (s *SearchService) SearchKeyword(keyword string) ([]Product, error) {
	return s.SearchKeywordPage(keyword, 0, DefaultPageSize)
}

// SearchKeywordPage 按关键词搜索指定页
// size 只是建议值，服务端可能返回更少
func (s *SearchService) SearchKeywordPage(keyword string, pageNumber, size int) ([]Product, error) {
	body, err := json.Marshal(SearchRequest{
		Filter: keyword,
		Page:   SearchPage{PageNumber: pageNumber, Size: size},
	})
	if err != nil {
		return nil, fmt.Errorf("序列化搜索请求失败: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json;charset=UTF-8",
		"X-Token":      s.auth.Token(),
	}

	respBody, err := s.session.PostJSON(s.session.PartnersBaseURL+SearchPath, body, headers)
	if err != nil {
		return nil, err
	}

	return decodeSearchProducts(respBody)
}
