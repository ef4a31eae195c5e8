package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/agrivault/pkg/internal/fault"
	"github.com/yeisme/agrivault/pkg/internal/payload"
	"github.com/yeisme/agrivault/pkg/internal/storage/s3"
	"github.com/yeisme/agrivault/pkg/internal/types"
	nlog "github.com/yeisme/agrivault/pkg/log"
)

// ObjectStore 提交器依赖的对象存储能力，由 s3.Client 实现.
// 抽出接口是为了让上传链路可以脱离真实 MinIO 做测试.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	PublicURL(bucket, key string) string
	SignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	BucketNames(ctx context.Context) ([]string, error)
}

// UploadService 把归一化后的文件提交到对象存储并解析访问 URL.
type UploadService struct {
	store        ObjectStore
	signedExpiry time.Duration
}

// NewUploadService 创建上传服务.
func NewUploadService(store ObjectStore, signedExpiry time.Duration) *UploadService {
	if signedExpiry <= 0 {
		signedExpiry = 7 * 24 * time.Hour
	}

	return &UploadService{store: store, signedExpiry: signedExpiry}
}

// BuildStorageKey 构建对象键：[folder/][ownerID/]<毫秒时间戳>-<文件名>.
// 毫秒时间戳做前缀保证同名文件不会互相覆盖；同一毫秒内的同名并发
// 写入由存储层的键冲突检测兜底.
func BuildStorageKey(folder, ownerID, fileName string) string {
	var b strings.Builder

	if folder = strings.Trim(folder, "/"); folder != "" {
		b.WriteString(folder)
		b.WriteByte('/')
	}

	if ownerID = strings.Trim(ownerID, "/"); ownerID != "" {
		b.WriteString(ownerID)
		b.WriteByte('/')
	}

	fmt.Fprintf(&b, "%d-%s", time.Now().UnixMilli(), fileName)

	return b.String()
}

// Commit 将文件写入指定桶并返回访问 URL.
//
// 桶存在性检查是尽力而为：列桶本身失败时不拦截写入，交给存储层
// 在 Put 阶段报错；列桶成功但目标桶不在其中则直接拒绝，并在诊断
// 信息里带上现有桶名便于定位配置错误.
func (us *UploadService) Commit(ctx context.Context, file *payload.NormalizedFile,
	bucket, folder, ownerID string,
) (*types.UploadResult, error) {
	if names, err := us.store.BucketNames(ctx); err != nil {
		nlog.Logger().Debug().Err(err).Msg("bucket listing unavailable, skipping existence check")
	} else if !slices.Contains(names, bucket) {
		return nil, fault.New(fault.KindBucketNotFound, "bucket %q not found", bucket).
			WithDetail("bucket", bucket).
			WithDetail("available", names)
	}

	key := BuildStorageKey(folder, ownerID, file.FileName)

	if err := us.store.Put(ctx, bucket, key, file.Bytes, file.ContentType); err != nil {
		return nil, classifyPutError(err, bucket, key)
	}

	publicURL := us.store.PublicURL(bucket, key)

	signedURL, signErr := us.store.SignedURL(ctx, bucket, key, us.signedExpiry)
	if signErr != nil {
		nlog.Logger().Warn().Err(signErr).
			Str("bucket", bucket).
			Str("key", key).
			Msg("signed URL unavailable, falling back to public URL")

		signedURL = ""
	}

	// 首选签名 URL，不可用时退回公共 URL；两者都拿不到才算失败
	url := signedURL
	if url == "" {
		url = publicURL
	}

	if url == "" {
		// 字节已写入，对象不回滚，调用方可凭 path 重新获取 URL
		return nil, fault.Wrap(fault.KindURLResolution, signErr, "object stored but URL resolution failed").
			WithDetail("path", key)
	}

	nlog.Logger().Info().
		Str("bucket", bucket).
		Str("key", key).
		Int("size", len(file.Bytes)).
		Str("content_type", file.ContentType).
		Msg("object committed")

	return &types.UploadResult{
		Success:   true,
		Path:      key,
		URL:       url,
		PublicURL: publicURL,
		SignedURL: signedURL,
	}, nil
}

// classifyPutError 把存储层写入错误映射为结构化失败.
func classifyPutError(err error, bucket, key string) error {
	if errors.Is(err, s3.ErrObjectExists) {
		return fault.Wrap(fault.KindDuplicateKey, err, "object already exists").
			WithDetail("bucket", bucket).
			WithDetail("path", key)
	}

	resp := minio.ToErrorResponse(errors.Unwrap(err))
	if resp.Code == "" {
		resp = minio.ToErrorResponse(err)
	}

	switch {
	case resp.Code == "NoSuchBucket":
		return fault.Wrap(fault.KindBucketNotFound, err, "bucket %q not found", bucket).
			WithDetail("bucket", bucket)
	case resp.StatusCode == 403 || resp.Code == "AccessDenied":
		return fault.Wrap(fault.KindStoragePermission, err, "storage backend denied access").
			WithDetail("bucket", bucket).
			WithDetail("path", key)
	case resp.StatusCode == 413 || resp.Code == "EntityTooLarge":
		return fault.Wrap(fault.KindPayloadTooLarge, err, "object exceeds storage size limit").
			WithDetail("path", key)
	default:
		return fault.Wrap(fault.KindInternal, err, "store object %s/%s", bucket, key)
	}
}
