package coupangclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/quick"
)

// newEchoServer 创建回显请求头的测试服务器
func newEchoServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string)
		for k := range r.Header {
			headers[k] = r.Header.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(headers)
	}))
}

// TestDefaultHeaders 未指定额外请求头时，默认头全部生效
func TestDefaultHeaders(t *testing.T) {
	server := newEchoServer()
	defer server.Close()

	s := NewSession("")
	body, err := s.Get(server.URL, nil)
	if err != nil {
		t.Fatalf("GET 失败: %v", err)
	}

	var headers map[string]string
	if err := json.Unmarshal(body, &headers); err != nil {
		t.Fatalf("解析回显失败: %v", err)
	}

	if headers["User-Agent"] != DefaultUserAgent {
		t.Errorf("期望默认 User-Agent, 得到 %q", headers["User-Agent"])
	}
	if headers["Accept-Language"] != DefaultAcceptLanguage {
		t.Errorf("期望默认 accept-language, 得到 %q", headers["Accept-Language"])
	}
}

// TestHeaderMergeOverride 额外请求头覆盖同名默认值，未覆盖的默认值保留
func TestHeaderMergeOverride(t *testing.T) {
	server := newEchoServer()
	defer server.Close()

	s := NewSession("custom-agent/1.0")
	body, err := s.Get(server.URL, map[string]string{
		"User-Agent": "override-agent/2.0",
		"X-Token":    "tok-1",
	})
	if err != nil {
		t.Fatalf("GET 失败: %v", err)
	}

	var headers map[string]string
	if err := json.Unmarshal(body, &headers); err != nil {
		t.Fatalf("解析回显失败: %v", err)
	}

	if headers["User-Agent"] != "override-agent/2.0" {
		t.Errorf("额外头应覆盖默认 User-Agent, 得到 %q", headers["User-Agent"])
	}
	if headers["Accept-Language"] != DefaultAcceptLanguage {
		t.Errorf("未覆盖的默认头应保留, 得到 %q", headers["Accept-Language"])
	}
	if headers["X-Token"] != "tok-1" {
		t.Errorf("额外头应原样发送, 得到 %q", headers["X-Token"])
	}
}

// ========== Property: 请求头合并 ==========
// *For any* 额外请求头值，合并结果中该值覆盖同名默认值，
// 且未被覆盖的默认头始终存在

func TestProperty_HeaderMerge(t *testing.T) {
	server := newEchoServer()
	defer server.Close()

	s := NewSession("")

	f := func(n uint16) bool {
		// 用数字构造合法的 header 值，避免随机字节造成非法 header
		value := fmt.Sprintf("ua-%d", n)

		body, err := s.Get(server.URL, map[string]string{"User-Agent": value})
		if err != nil {
			t.Logf("GET 失败: %v", err)
			return false
		}

		var headers map[string]string
		if err := json.Unmarshal(body, &headers); err != nil {
			return false
		}

		return headers["User-Agent"] == value &&
			headers["Accept-Language"] == DefaultAcceptLanguage
	}

	cfg := &quick.Config{MaxCount: 30}
	if err := quick.Check(f, cfg); err != nil {
		t.Errorf("请求头合并性质不成立: %v", err)
	}
}

// TestStatusError 非 2xx 状态码返回 *StatusError
func TestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	s := NewSession("")
	_, err := s.Get(server.URL, nil)
	if err == nil {
		t.Fatal("期望错误, 得到 nil")
	}

	if !IsStatusError(err) {
		t.Fatalf("期望 *StatusError, 得到 %T: %v", err, err)
	}

	se := err.(*StatusError)
	if se.StatusCode != http.StatusBadGateway {
		t.Errorf("期望状态码 502, 得到 %d", se.StatusCode)
	}
	if se.Body != "upstream down" {
		t.Errorf("期望响应体片段, 得到 %q", se.Body)
	}
}

// TestCookieAccumulation 服务端下发的 Cookie 累积在 Jar 中，可按名字读取
func TestCookieAccumulation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "AFATK", Value: "cookie-123", Path: "/"})
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewSession("")
	s.PartnersBaseURL = server.URL

	if got := s.Cookie("AFATK"); got != "" {
		t.Errorf("请求前 Cookie 应为空, 得到 %q", got)
	}

	if _, err := s.Get(server.URL+"/", nil); err != nil {
		t.Fatalf("GET 失败: %v", err)
	}

	if got := s.Cookie("AFATK"); got != "cookie-123" {
		t.Errorf("期望 Cookie 值 cookie-123, 得到 %q", got)
	}
	if got := s.Cookie("missing"); got != "" {
		t.Errorf("不存在的 Cookie 应返回空字符串, 得到 %q", got)
	}
}

// TestSessionIsolation 两个会话的 Cookie Jar 互不影响
func TestSessionIsolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "AFATK", Value: "only-first", Path: "/"})
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	first := NewSession("")
	first.PartnersBaseURL = server.URL
	second := NewSession("")
	second.PartnersBaseURL = server.URL

	if _, err := first.Get(server.URL+"/", nil); err != nil {
		t.Fatalf("GET 失败: %v", err)
	}

	if first.Cookie("AFATK") != "only-first" {
		t.Error("第一个会话应持有 Cookie")
	}
	if second.Cookie("AFATK") != "" {
		t.Error("第二个会话不应看到第一个会话的 Cookie")
	}
}
