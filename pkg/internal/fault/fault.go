// Package fault 定义上传链路的结构化失败分类.
// 上传网关是整个系统中客户端形态最杂、最难排查的部分，
// 失败必须携带可操作的诊断信息而不是笼统的 "upload failed".
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 失败分类.
type Kind int

const (
	// KindInternal 未分类的内部错误.
	KindInternal Kind = iota
	// KindBadRequest 调用方请求错误，缺少文件或桶.
	KindBadRequest
	// KindUnrecognizedPayload 调用方发送了不支持的文件表示形式.
	KindUnrecognizedPayload
	// KindPayloadRead 读取输入时发生 I/O 错误，或读到空文件.
	KindPayloadRead
	// KindBucketNotFound 目标桶不存在.
	KindBucketNotFound
	// KindDuplicateKey 存储层键冲突，同一毫秒内同名文件并发上传.
	KindDuplicateKey
	// KindStoragePermission 存储后端拒绝访问.
	KindStoragePermission
	// KindPayloadTooLarge 文件超过存储后端大小限制.
	KindPayloadTooLarge
	// KindURLResolution 字节已写入但无法生成访问 URL，对象不会被回滚.
	KindURLResolution
)

// String 返回分类名，用于日志和指标标签.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnrecognizedPayload:
		return "unrecognized_payload"
	case KindPayloadRead:
		return "payload_read"
	case KindBucketNotFound:
		return "bucket_not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindStoragePermission:
		return "storage_permission"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindURLResolution:
		return "url_resolution"
	default:
		return "internal"
	}
}

// HTTPStatus 返回分类对应的HTTP状态码.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest, KindUnrecognizedPayload, KindPayloadRead:
		return http.StatusBadRequest
	case KindBucketNotFound:
		return http.StatusNotFound
	case KindDuplicateKey:
		return http.StatusConflict
	case KindStoragePermission:
		return http.StatusForbidden
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Failure 带分类和诊断信息的失败.
// Details 只放非敏感内容，生产模式下也直接返回给调用方.
type Failure struct {
	Kind    Kind
	Message string
	Details map[string]any
	cause   error
}

// New 创建失败.
func New(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误.
func Wrap(kind Kind, err error, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...), cause: err}
}

// WithDetail 附加一条诊断信息，返回自身便于链式调用.
func (f *Failure) WithDetail(key string, value any) *Failure {
	if f.Details == nil {
		f.Details = make(map[string]any)
	}

	f.Details[key] = value

	return f
}

func (f *Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.cause)
	}

	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// KindOf 返回错误的分类，非 Failure 错误视为 KindInternal.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}

	return KindInternal
}

// DetailsOf 返回错误携带的诊断信息，没有则返回 nil.
func DetailsOf(err error) map[string]any {
	var f *Failure
	if errors.As(err, &f) {
		return f.Details
	}

	return nil
}
