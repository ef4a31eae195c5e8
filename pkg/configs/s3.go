package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// S3Config MinIO/S3 对象存储配置.
type S3Config struct {
	Endpoint        string   `mapstructure:"endpoint"`
	AccessKeyID     string   `mapstructure:"access_key_id"`
	SecretAccessKey string   `mapstructure:"secret_access_key"`
	UseSSL          bool     `mapstructure:"use_ssl"`
	Region          string   `mapstructure:"region"`
	// Buckets 允许配置多个桶：电子书、封面、音频等各用一个桶.
	Buckets []string `mapstructure:"buckets"`
	// SignedURLExpirySeconds 签名 URL 的有效期（秒）.
	// SigV4 预签名最长 7 天，超出会被存储端拒绝.
	SignedURLExpirySeconds int `mapstructure:"signed_url_expiry_seconds" rule:"min=1,max=604800"`
}

const (
	DefaultS3Endpoint        = "localhost:9000" // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"     // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"     // 默认秘密访问密钥
	DefaultS3UseSSL          = false            // 默认是否使用SSL
	DefaultS3Region          = "us-east-1"      // 默认区域
	DefaultSignedURLExpiry   = 7 * 24 * 3600    // 默认签名URL有效期，SigV4上限
)

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// GetSignedURLExpiry 返回签名URL有效期作为time.Duration.
func (c *S3Config) GetSignedURLExpiry() time.Duration {
	if c.SignedURLExpirySeconds <= 0 {
		return time.Duration(DefaultSignedURLExpiry) * time.Second
	}

	return time.Duration(c.SignedURLExpirySeconds) * time.Second
}

// setDefaults 设置 S3 配置的默认值.
func (c *S3Config) setDefaults(v *viper.Viper) {
	v.SetDefault("s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("s3.region", DefaultS3Region)
	v.SetDefault("s3.buckets", []string{"books", "covers", "audio"})
	v.SetDefault("s3.signed_url_expiry_seconds", DefaultSignedURLExpiry)
}
