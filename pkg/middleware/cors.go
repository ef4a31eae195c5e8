package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/configs"
)

// CORSMiddleware CORS中间件.
// 上传端调用方来自浏览器和移动端 WebView，预检响应固定 200，
// 部分旧 WebView 把 204 当作失败.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Owner-Id")
	config.OptionsResponseStatusCode = http.StatusOK

	config.AllowWebSockets = true
	config.AllowFiles = true

	if cfg.Debug {
		config.AllowAllOrigins = true
		config.AllowOrigins = nil
	}

	return cors.New(config)
}
