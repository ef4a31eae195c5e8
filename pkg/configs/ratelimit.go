package configs

import "github.com/spf13/viper"

const (
	// 默认速率限制配置.
	DefaultRateLimitEnabled     = false
	DefaultRateLimitRPS         = 20.0
	DefaultRateLimitBurst       = 40
	DefaultRateLimitUploadBurst = 8
	DefaultRateLimitKey         = "ip"
)

// RateLimitConfig 速率限制配置.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`   // 每秒允许的请求数
	Burst   int     `mapstructure:"burst"` // 普通 API 突发容量
	// UploadBurst 上传路径的突发容量，上传体大，上限应低于普通 API
	UploadBurst int `mapstructure:"upload_burst"`
	// Key 选择限流维度：global（全局）、ip（按客户端IP）、header:Header-Name（按请求头）
	Key string `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
	v.SetDefault("rate_limit.upload_burst", DefaultRateLimitUploadBurst)
	v.SetDefault("rate_limit.key", DefaultRateLimitKey)
}
