package coupangclient

import "encoding/json"

// ========== 端点常量 ==========

const (
	// DefaultLoginBaseURL 登录站点基地址
	DefaultLoginBaseURL = "https://login.coupang.com"
	// DefaultPartnersBaseURL Partners API 基地址
	DefaultPartnersBaseURL = "https://partners.coupang.com"

	// LoginPagePath 登录页路径（建立初始会话 Cookie）
	LoginPagePath = "/login/login.pang"
	// LoginProcessPath 登录表单提交路径
	LoginProcessPath = "/login/loginProcess.pang"
	// PostLoginPath 登录后确认路径（服务端完成会话建立）
	PostLoginPath = "/api/v1/postlogin"
	// SearchPath 商品搜索路径
	SearchPath = "/api/v1/search"
	// BannerURLPath 短链生成路径
	BannerURLPath = "/api/v1/banner/iframe/url"
)

// TokenCookieName 认证 Token 所在的 Cookie 名
const TokenCookieName = "AFATK"

// DefaultUserAgent 默认 User-Agent（模拟移动端浏览器）
const DefaultUserAgent = "Mozilla/5.0 (Linux; Android 13; Redmi Note 10 Pro) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/101.0.0.0 Mobile Safari/537.36"

// DefaultAcceptLanguage 默认 accept-language（韩语站点）
const DefaultAcceptLanguage = "ko,ko-KR;q=0.9,en;q=0.8,en-US;q=0.7"

// DefaultPageSize 搜索默认每页数量
// 注意：服务端把它当作参考值，实际返回数可能更少
const DefaultPageSize = 36

// ========== 数据类型 ==========

// Credentials 登录凭证（构造后不再修改）
type Credentials struct {
	Username string
	Password string
}

// Product 搜索返回的商品记录
// Schema 由搜索 API 决定，客户端不做校验，原样透传给短链接口
type Product map[string]any

// SearchPage 搜索分页参数
type SearchPage struct {
	PageNumber int `json:"pageNumber"`
	Size       int `json:"size"`
}

// SearchRequest 搜索请求体
type SearchRequest struct {
	Filter string     `json:"filter"`
	Page   SearchPage `json:"page"`
}

// searchResponse 搜索响应
// 只关心 data.products，其余字段忽略
type searchResponse struct {
	Data *struct {
		Products []Product `json:"products"`
	} `json:"data"`
}

// linkRequest 短链生成请求体
type linkRequest struct {
	Product Product `json:"product"`
}

// linkResponse 短链生成响应
type linkResponse struct {
	Data *struct {
		ShortURL string `json:"shortUrl"`
	} `json:"data"`
}

// decodeSearchProducts 从响应体中提取 data.products
// 字段缺失或为 null 时返回 *ShapeError
func decodeSearchProducts(body []byte) ([]Product, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ShapeError{Field: "data.products", Err: err}
	}
	if resp.Data == nil || resp.Data.Products == nil {
		return nil, &ShapeError{Field: "data.products"}
	}
	return resp.Data.Products, nil
}

// decodeShortURL 从响应体中提取 data.shortUrl
func decodeShortURL(body []byte) (string, error) {
	var resp linkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ShapeError{Field: "data.shortUrl", Err: err}
	}
	if resp.Data == nil || resp.Data.ShortURL == "" {
		return "", &ShapeError{Field: "data.shortUrl"}
	}
	return resp.Data.ShortURL, nil
}
