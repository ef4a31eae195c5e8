// Package client 提供上传网关的Go客户端.
// 面向移动端同步工具等弱网环境设计：瞬时失败（超时、网络错误、5xx）
// 有限重试，调用方错误（4xx、响应体损坏）立即终止.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/agrivault/pkg/internal/payload"
	"github.com/yeisme/agrivault/pkg/internal/types"
	nlog "github.com/yeisme/agrivault/pkg/log"
)

const (
	defaultTimeout    = 75 * time.Second
	defaultMaxRetries = 2
	defaultBaseDelay  = 2 * time.Second
)

// Config 客户端配置，零值字段使用默认值.
type Config struct {
	// BaseURL 上传网关地址，如 http://localhost:8080
	BaseURL string
	// Timeout 单次请求超时
	Timeout time.Duration
	// MaxRetries 瞬时失败的重试次数，总尝试数为 MaxRetries+1
	MaxRetries int
	// RetryBaseDelay 退避基准，第 n 次重试前等待 n×RetryBaseDelay
	RetryBaseDelay time.Duration
	// HTTPClient 自定义HTTP客户端，测试时注入
	HTTPClient *http.Client
}

// Client 上传网关客户端.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// New 创建客户端.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultBaseDelay
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
	}
}

// UploadOptions 上传参数，Bucket 必填.
type UploadOptions struct {
	Bucket      string
	Folder      string
	OwnerID     string
	FileName    string // 为空时使用文件自身的名字
	ContentType string
}

// terminalError 不可重试的失败.
type terminalError struct {
	status int
	msg    string
}

func (e *terminalError) Error() string {
	if e.status != 0 {
		return fmt.Sprintf("upload rejected (status %d): %s", e.status, e.msg)
	}

	return e.msg
}

// Upload 上传本地文件.fileRef 是文件路径或 file:// URI.
// 文件内容只读一次并缓存，每次尝试重新构造请求体.
func (c *Client) Upload(ctx context.Context, fileRef string, opts UploadOptions) (*types.UploadResult, error) {
	if opts.Bucket == "" {
		return nil, errors.New("bucket is required")
	}

	path, err := normalizeFileRef(fileRef)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = filepath.Base(path)
	}

	// 客户端侧先从扩展名解析类型，服务端推断失败时元数据依然完整
	if opts.ContentType == "" {
		opts.ContentType = payload.ContentTypeByName(fileName)
	}

	var lastErr error

	attempts := c.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			// 第 n 次重试前等待 n×基准延迟
			delay := time.Duration(attempt-1) * c.baseDelay

			nlog.Logger().Debug().
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying upload")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := c.tryUpload(ctx, data, fileName, opts)
		if err == nil {
			return result, nil
		}

		var term *terminalError
		if errors.As(err, &term) {
			return nil, err
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
	}

	return nil, fmt.Errorf("upload failed after %d attempts: %w", attempts, lastErr)
}

// tryUpload 进行一次上传尝试.
func (c *Client) tryUpload(ctx context.Context, data []byte, fileName string, opts UploadOptions) (*types.UploadResult, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	part, err := mw.CreatePart(filePartHeader(fileName, opts.ContentType))
	if err != nil {
		return nil, &terminalError{msg: fmt.Sprintf("build form file: %v", err)}
	}

	if _, err := part.Write(data); err != nil {
		return nil, &terminalError{msg: fmt.Sprintf("write form file: %v", err)}
	}

	fields := map[string]string{
		"bucket":   opts.Bucket,
		"folder":   opts.Folder,
		"owner_id": opts.OwnerID,
		"fileName": opts.FileName,
		"fileType": opts.ContentType,
	}
	for k, v := range fields {
		if v == "" {
			continue
		}

		if err := mw.WriteField(k, v); err != nil {
			return nil, &terminalError{msg: fmt.Sprintf("write form field %s: %v", k, err)}
		}
	}

	if err := mw.Close(); err != nil {
		return nil, &terminalError{msg: fmt.Sprintf("finalize form: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, &terminalError{msg: fmt.Sprintf("build request: %v", err)}
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 超时和网络错误可重试
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return classifyResponse(resp.StatusCode, raw)
}

// filePartHeader 构造文件分片的 MIME 头，带上解析出的内容类型
// 而不是 multipart 默认的 application/octet-stream.
func filePartHeader(fileName, contentType string) textproto.MIMEHeader {
	quoted := strings.NewReplacer("\\", "\\\\", `"`, `\"`).Replace(fileName)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoted))

	if contentType == "" {
		contentType = payload.DefaultContentType
	}

	h.Set("Content-Type", contentType)

	return h
}

// classifyResponse 把HTTP响应归为成功、可重试失败、不可重试失败.
func classifyResponse(status int, raw []byte) (*types.UploadResult, error) {
	switch {
	case status >= 500:
		// 服务端故障可能是瞬时的
		return nil, fmt.Errorf("server error (status %d): %s", status, errorMessage(raw))
	case status >= 400:
		return nil, &terminalError{status: status, msg: errorMessage(raw)}
	}

	var result types.UploadResult
	if err := sonic.Unmarshal(raw, &result); err != nil {
		return nil, &terminalError{msg: fmt.Sprintf("malformed response body: %v", err)}
	}

	if !result.Success || result.URL == "" {
		return nil, &terminalError{msg: "response missing upload URL"}
	}

	return &result, nil
}

// errorMessage 尽力从错误响应体里取出 error 字段.
func errorMessage(raw []byte) string {
	var er types.ErrorResponse
	if err := sonic.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return er.Error
	}

	return strings.TrimSpace(string(raw))
}

// normalizeFileRef 把 file:// URI 归一为本地路径，其他形式原样返回.
func normalizeFileRef(ref string) (string, error) {
	if !strings.HasPrefix(ref, "file://") {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse file URI %q: %w", ref, err)
	}

	if u.Path == "" {
		return "", fmt.Errorf("file URI %q has empty path", ref)
	}

	return u.Path, nil
}
