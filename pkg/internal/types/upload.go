// Package types 定义HTTP层的请求与响应结构.
package types

// UploadResult 上传成功的响应，只有写入成功才构造，不存在部分填充.
type UploadResult struct {
	Success   bool   `json:"success"`
	Path      string `json:"path"`                // 对象存储内的键
	URL       string `json:"url"`                 // 规范访问 URL，优先签名 URL
	PublicURL string `json:"publicUrl,omitempty"` // 公开 URL，桶私有时不可用
	SignedURL string `json:"signedUrl,omitempty"` // 限时签名 URL
}

// UploadRequest JSON 形态的上传请求.File 字段保持 any：
// 可能是 base64 data URI 字符串、字节数组，或带 data/_data 的包装对象，
// 具体形态由归一化层在边界处一次性判定.
type UploadRequest struct {
	Bucket      string `json:"bucket"`
	Folder      string `json:"folder"`
	OwnerID     string `json:"owner_id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"fileType"`
	File        any    `json:"file"`
}

// ErrorResponse 失败响应体，details 只含非敏感诊断信息.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
