package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	coupangclient "github.com/jinfeijie/coupang-partners-go"
)

// generateID 生成唯一 ID（时间戳 + 随机数，避免并发冲突）
// 格式：prefix_timestamp_randomhex，如 msg_1770269464010833000_02a2633eb6b49c97
func generateID(prefix string) string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixNano(), hex.EncodeToString(b))
}

// ========== 请求/响应类型 ==========

// SearchAPIRequest 搜索接口请求
type SearchAPIRequest struct {
	Keyword    string `json:"keyword" binding:"required"`
	PageNumber int    `json:"pageNumber"`
	Size       int    `json:"size"`
}

// LinkAPIRequest 短链接口请求
type LinkAPIRequest struct {
	Product coupangclient.Product `json:"product" binding:"required"`
}

// TokenStatusResponse Token 状态响应
type TokenStatusResponse struct {
	HasToken     bool   `json:"hasToken"`
	TokenPreview string `json:"tokenPreview,omitempty"` // 前 8 位，避免泄露完整 Token
}

// ========== 全局状态 ==========

var client *coupangclient.CoupangClient
var logger *StructuredLogger

// ========== Handler ==========

// handleLogin 执行登录
// 凭证错误返回 200 {success:false}；网络/状态码失败返回 502
func handleLogin(c *gin.Context) {
	ok, err := client.Auth.Login()
	if err != nil {
		RecordError(c, logger, err, 502)
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": ok})
}

// handleTokenStatus 获取 Token 状态
func handleTokenStatus(c *gin.Context) {
	token := client.Auth.Token()

	resp := TokenStatusResponse{HasToken: token != ""}
	if len(token) >= 8 {
		resp.TokenPreview = token[:8]
	}

	c.JSON(200, resp)
}

// handleSearch 关键词搜索
func handleSearch(c *gin.Context) {
	var req SearchAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if req.Size == 0 {
		req.Size = coupangclient.DefaultPageSize
	}

	products, err := client.Search.SearchKeywordPage(req.Keyword, req.PageNumber, req.Size)
	if err != nil {
		RecordError(c, logger, err, 502)
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"products": products, "count": len(products)})
}

// handleLink 为商品生成短链
func handleLink(c *gin.Context) {
	var req LinkAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	shortURL, err := client.Link.GetProductLink(req.Product)
	if err != nil {
		RecordError(c, logger, err, 502)
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"shortUrl": shortURL})
}

// handleGetLogLevel 获取当前日志级别
func handleGetLogLevel(c *gin.Context) {
	c.JSON(200, gin.H{"level": logger.GetLevel().String()})
}

// handleUpdateLogLevel 动态更新日志级别
func handleUpdateLogLevel(c *gin.Context) {
	var req struct {
		Level string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	level := ParseLogLevel(req.Level)
	logger.SetLevel(level)

	logger.Info(GetMsgID(c), "日志级别已更新", map[string]any{
		"level": level.String(),
	})
	c.JSON(200, gin.H{"level": level.String()})
}

// setupRouter 组装路由
func setupRouter() *gin.Engine {
	r := gin.Default()

	// pprof 路由
	pprof.Register(r)

	// 请求追踪中间件（必须在其他中间件之前）
	r.Use(TraceMiddleware(logger))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := r.Group("/api")
	{
		api.POST("/login", handleLogin)
		api.GET("/token/status", handleTokenStatus)

		api.POST("/search", handleSearch)
		api.POST("/link", handleLink)

		api.GET("/settings/log-level", handleGetLogLevel)
		api.POST("/settings/log-level", handleUpdateLogLevel)
	}

	return r
}

func main() {
	// 初始化全局结构化日志记录器
	var err error
	logger, err = NewStructuredLogger()
	if err != nil {
		fmt.Printf("初始化日志记录器失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// 从 .env / 环境变量读取账号
	_ = godotenv.Load()
	username := os.Getenv("USERNAME")
	password := os.Getenv("PASSWORD")
	if username == "" || password == "" {
		logger.Error("", "缺少凭证配置", map[string]any{
			"hint": "请在 .env 或环境变量中设置 USERNAME 和 PASSWORD",
		})
		os.Exit(1)
	}

	// 初始化客户端并注入日志
	client = coupangclient.NewCoupangClientWithUserAgent(username, password, os.Getenv("USER_AGENT"))
	client.SetLogger(logger.Zap())

	r := setupRouter()

	// 从环境变量读取端口，默认 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("", "Coupang Partners API 服务启动成功", map[string]any{
		"port":   port,
		"login":  "POST /api/login",
		"search": "POST /api/search",
		"link":   "POST /api/link",
		"pprof":  "http://localhost:" + port + "/debug/pprof/",
	})

	r.Run(":" + port)
}
