package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/agrivault/pkg/configs"
)

const uploadPath = "/upload"

// RateLimitMiddleware 返回一个基于令牌桶的限流中间件.
// 上传请求单独一档突发容量：请求体大、处理慢，突发上限比普通 API 低.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	pool := newLimiterPool(cfg.RPS)
	keyMode := strings.ToLower(strings.TrimSpace(cfg.Key))

	return func(c *gin.Context) {
		class, burst := "api", cfg.Burst
		if c.Request.URL.Path == uploadPath {
			class, burst = "upload", cfg.UploadBurst
		}

		if burst < 1 {
			burst = 1
		}

		var key string

		switch {
		case keyMode == "global" || keyMode == "":
			key = class
		case strings.HasPrefix(keyMode, "header:"): // 按请求头
			h := strings.TrimPrefix(keyMode, "header:")

			dim := c.GetHeader(h)
			if dim == "" { // fallback 到 IP
				dim = clientIP(c)
			}

			key = class + "|" + dim
		default: // 按客户端 IP
			key = class + "|" + clientIP(c)
		}

		if !pool.get(key, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": "rate limit exceeded, please try again later"})

			return
		}

		c.Next()
	}
}

// limiterPool 按维度缓存 limiter，同一 RPS、各自的突发容量.
type limiterPool struct {
	rps float64

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimiterPool(rps float64) *limiterPool {
	p := &limiterPool{rps: rps, limiters: map[string]*rate.Limiter{}}

	go p.sweep()

	return p
}

func (p *limiterPool) get(key string, burst int) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok := p.limiters[key]; ok {
		return l
	}

	l := rate.NewLimiter(rate.Limit(p.rps), burst)
	p.limiters[key] = l

	return l
}

// sweep 防止按 IP/请求头维度的 map 无限增长，超过上限直接重建.
func (p *limiterPool) sweep() {
	const (
		cleanupInterval   = 10 * time.Minute
		maxLimiterEntries = 10000
	)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		p.mu.Lock()
		if len(p.limiters) > maxLimiterEntries {
			p.limiters = map[string]*rate.Limiter{}
		}
		p.mu.Unlock()
	}
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		// 进一步尝试从 RemoteAddr
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err == nil {
			ip = host
		} else {
			ip = c.Request.RemoteAddr
		}
	}

	return ip
}
