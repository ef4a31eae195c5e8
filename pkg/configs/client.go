package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultClientBaseURL        = "http://localhost:8080" // 默认上传网关地址
	DefaultClientTimeoutSeconds = 75                      // 单次请求超时，移动网络上传大文件需要较长时间
	DefaultClientMaxRetries     = 2                       // 瞬时失败的重试次数（总共最多 3 次尝试）
	DefaultClientRetryBaseMS    = 2000                    // 退避基准延迟（毫秒），实际延迟为 尝试序号×基准
)

// ClientConfig 上传客户端配置，显式传入 client.New，不使用包级开关.
type ClientConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"     rule:"min=1,max=600"`
	MaxRetries       int    `mapstructure:"max_retries"         rule:"min=0,max=10"`
	RetryBaseDelayMS int    `mapstructure:"retry_base_delay_ms" rule:"min=1"`
}

// GetTimeout 返回请求超时作为time.Duration.
func (c *ClientConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetRetryBaseDelay 返回退避基准延迟作为time.Duration.
func (c *ClientConfig) GetRetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}

func (c *ClientConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("client.base_url", DefaultClientBaseURL)
	v.SetDefault("client.timeout_seconds", DefaultClientTimeoutSeconds)
	v.SetDefault("client.max_retries", DefaultClientMaxRetries)
	v.SetDefault("client.retry_base_delay_ms", DefaultClientRetryBaseMS)
}
