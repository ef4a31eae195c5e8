// Package router 管理路由配置，将路径与处理器绑定到 gin 引擎.
// 处理器的实现由 pkg/internal/handle 提供并由应用层注入.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/handle"
)

// Handlers 应用层注入的全部处理器.
type Handlers struct {
	Upload         *handle.UploadHandler
	Book           *handle.BookHandler
	Category       *handle.CategoryHandler
	Review         *handle.ReviewHandler
	Subscription   *handle.SubscriptionHandler
	Wallet         *handle.WalletHandler
	Dashboard      *handle.DashboardHandler
	Curriculum     *handle.CurriculumHandler
	WebsiteContent *handle.WebsiteContentHandler
	Health         *handle.HealthHandler
}

// Register 注册全部路由.
func Register(engine *gin.Engine, h *Handlers) {
	RegisterUploadRoutes(engine, h.Upload)
	RegisterHealthRoutes(engine, h.Health)

	api := engine.Group("/api")
	RegisterMarketRoutes(api, h)
}
