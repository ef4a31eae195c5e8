package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMarketRoutes 注册市场实体路由.
func RegisterMarketRoutes(g *gin.RouterGroup, h *Handlers) {
	booksRoutes := g.Group("/books")
	{
		booksRoutes.GET("", h.Book.List)
		booksRoutes.POST("", h.Book.Create)
		booksRoutes.GET("/:id", h.Book.Get)
		booksRoutes.PUT("/:id", h.Book.Update)
		booksRoutes.DELETE("/:id", h.Book.Delete)

		// 评论挂在书下
		booksRoutes.GET("/:id/reviews", h.Review.ListByBook)
	}

	categoriesRoutes := g.Group("/categories")
	{
		categoriesRoutes.GET("", h.Category.List)
		categoriesRoutes.POST("", h.Category.Create)
		categoriesRoutes.GET("/:id", h.Category.Get)
		categoriesRoutes.PUT("/:id", h.Category.Update)
		categoriesRoutes.DELETE("/:id", h.Category.Delete)
	}

	reviewsRoutes := g.Group("/reviews")
	{
		reviewsRoutes.POST("", h.Review.Create)
		reviewsRoutes.PATCH("/:id", h.Review.Update)
		reviewsRoutes.DELETE("/:id", h.Review.Delete)
	}

	subscriptionsRoutes := g.Group("/subscriptions")
	{
		subscriptionsRoutes.GET("/plans", h.Subscription.ListPlans)
		subscriptionsRoutes.POST("/plans", h.Subscription.CreatePlan)
		subscriptionsRoutes.PUT("/plans/:id", h.Subscription.UpdatePlan)
		subscriptionsRoutes.POST("", h.Subscription.Subscribe)
		subscriptionsRoutes.GET("/current", h.Subscription.Current)
		subscriptionsRoutes.DELETE("/current", h.Subscription.Cancel)
	}

	walletRoutes := g.Group("/wallet")
	{
		walletRoutes.GET("/balance", h.Wallet.Balance)
		walletRoutes.POST("/transactions", h.Wallet.Transact)
		walletRoutes.GET("/transactions", h.Wallet.History)
	}

	curriculumRoutes := g.Group("/curriculum")
	{
		curriculumRoutes.GET("", h.Curriculum.List)
		curriculumRoutes.POST("", h.Curriculum.Create)
		curriculumRoutes.GET("/:id", h.Curriculum.Get)
		curriculumRoutes.PUT("/:id", h.Curriculum.Update)
		curriculumRoutes.DELETE("/:id", h.Curriculum.Delete)
	}

	// 官网文案整表读写
	g.GET("/website-content", h.WebsiteContent.Get)
	g.PUT("/website-content", h.WebsiteContent.Update)

	g.GET("/dashboard", h.Dashboard.Overview)
}
