// Package s3 处理对象存储操作，基于 MinIO 客户端.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/agrivault/pkg/configs"
	nlog "github.com/yeisme/agrivault/pkg/log"
)

// ErrObjectExists 目标键位置已有对象，写入被拒绝而不是覆盖.
var ErrObjectExists = errors.New("object already exists at key")

// Client 包装 MinIO 客户端.
type Client struct {
	*minio.Client

	cfg configs.S3Config
}

// New 初始化 MinIO 客户端，若配置的 bucket 不存在则尝试创建.
// 第一个 bucket 作为默认桶；电子书、封面、音频可分别配置独立桶.
func New(ctx context.Context, cfg *configs.S3Config) (*Client, error) {
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("agrivault", configs.AppVersion)

	// ensure all buckets
	for _, bkt := range cfg.Buckets {
		if bkt == "" {
			continue
		}

		exists, err := cli.BucketExists(ctx, bkt)
		if err != nil {
			return nil, fmt.Errorf("check bucket %s: %w", bkt, err)
		}

		if !exists {
			if err := cli.MakeBucket(ctx, bkt, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
				return nil, fmt.Errorf("create bucket %s: %w", bkt, err)
			}

			nlog.Logger().Info().Str("bucket", bkt).Msg("bucket created")
		}
	}

	nlog.Logger().Info().
		Str("endpoint", cfg.Endpoint).
		Int("bucket_count", len(cfg.Buckets)).
		Msg("s3 connected")

	return &Client{Client: cli, cfg: *cfg}, nil
}

// Put 在 key 处写入字节，禁止覆盖：已存在的对象导致 ErrObjectExists.
// 先 Stat 再 Put，两个并发写同一 key 的竞争交给存储层分辨，输掉的一方收到冲突.
func (c *Client) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := c.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, ErrObjectExists)
	}

	if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" && resp.StatusCode != 404 {
		return fmt.Errorf("stat %s/%s: %w", bucket, key, err)
	}

	_, err = c.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}

	return nil
}

// PublicURL 返回对象的公开访问 URL，桶不可公开读时该 URL 不可用.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.cfg.GetEndpointURL(), bucket, key)
}

// SignedURL 生成限时签名的下载 URL，私有桶的兜底访问方式.
func (c *Client) SignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := c.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign get for %s/%s: %w", bucket, key, err)
	}

	return u.String(), nil
}

// BucketNames 列出存储端现有的桶名.
func (c *Client) BucketNames(ctx context.Context) ([]string, error) {
	buckets, err := c.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}

	return names, nil
}

// HealthCheck 简单的健康检查，通过列出桶来验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)

	return err
}

// GetConfig 返回客户端使用的配置.
func (c *Client) GetConfig() configs.S3Config {
	return c.cfg
}
