package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/handle"
)

// RegisterHealthRoutes 注册健康检查路由.
func RegisterHealthRoutes(engine *gin.Engine, h *handle.HealthHandler) {
	healthRoutes := engine.Group("/health")
	{
		healthRoutes.GET("", h.Health)
		healthRoutes.GET("/db", h.HealthDB)
		healthRoutes.GET("/s3", h.HealthS3)
	}
}
