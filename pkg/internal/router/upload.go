package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/handle"
)

// RegisterUploadRoutes 注册上传网关路由.
// OPTIONS 显式绑定：跨域预检由 CORS 中间件处理，
// 非跨域的裸 OPTIONS 也要返回 200.
func RegisterUploadRoutes(engine *gin.Engine, h *handle.UploadHandler) {
	engine.POST("/upload", h.Upload)
	engine.OPTIONS("/upload", h.UploadPreflight)
}
