// Package middleware 提供中间件
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/metrics"
)

// PrometheusMiddleware 创建Gin的Prometheus中间件.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// 执行下一个中间件/处理器
		c.Next()

		duration := time.Since(start).Seconds()

		// 用路由模板做标签，避免路径参数打爆基数
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RequestCounter.WithLabelValues(method, endpoint).Inc()
		metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}
