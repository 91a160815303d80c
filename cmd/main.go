package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	coupangclient "github.com/jinfeijie/coupang-partners-go"
)

func main() {
	cmd := flag.String("cmd", "search", "命令: search, link")
	keyword := flag.String("k", "신발", "搜索关键词")
	limit := flag.Int("n", 0, "最多打印的商品数（0 表示全部）")
	flag.Parse()

	// 从 .env / 环境变量读取账号（与站点后台同一套凭证）
	_ = godotenv.Load()
	username := os.Getenv("USERNAME")
	password := os.Getenv("PASSWORD")
	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "请在 .env 或环境变量中设置 USERNAME 和 PASSWORD")
		os.Exit(1)
	}

	client := coupangclient.NewCoupangClientWithUserAgent(username, password, os.Getenv("USER_AGENT"))

	ok, err := client.Auth.Login()
	if err != nil {
		fmt.Fprintf(os.Stderr, "登录失败: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "登录失败: 请检查用户名和密码")
		os.Exit(1)
	}

	switch *cmd {
	case "search":
		products, err := client.Search.SearchKeyword(*keyword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "搜索失败: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("关键词 %q 命中 %d 个商品:\n", *keyword, len(products))
		for i, p := range products {
			if *limit > 0 && i >= *limit {
				break
			}
			line, _ := json.Marshal(p)
			fmt.Println(string(line))
		}

	case "link":
		products, err := client.Search.SearchKeyword(*keyword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "搜索失败: %v\n", err)
			os.Exit(1)
		}
		if len(products) == 0 {
			fmt.Fprintf(os.Stderr, "关键词 %q 没有搜索结果\n", *keyword)
			os.Exit(1)
		}

		shortURL, err := client.Link.GetProductLink(products[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "生成短链失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(shortURL)

	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s（支持 search, link）\n", *cmd)
		os.Exit(1)
	}
}
