package payload

import (
	"path"
	"strings"
)

// DefaultContentType 无法推断时的通用二进制类型.
const DefaultContentType = "application/octet-stream"

// DefaultFileName 无法解析文件名时的兜底名称.
const DefaultFileName = "file"

// extContentTypes 扩展名到 MIME 的静态映射.
// 覆盖市场里实际流转的格式：电子书、封面图、有声书音频.
var extContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"epub": "application/epub+zip",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"mp3":  "audio/mpeg",
	"m4a":  "audio/mp4",
	"wav":  "audio/wav",
	"txt":  "text/plain",
	"json": "application/json",
}

// ContentTypeByName 根据文件名扩展名推断 MIME 类型，未知扩展名返回空串.
func ContentTypeByName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		return ""
	}

	return extContentTypes[ext]
}

// ResolveContentType 按优先级解析内容类型：显式声明 > 载荷自带 > 扩展名推断 > 通用二进制.
func ResolveContentType(declared, own, fileName string) string {
	if declared != "" {
		return declared
	}

	if own != "" {
		return own
	}

	if byExt := ContentTypeByName(fileName); byExt != "" {
		return byExt
	}

	return DefaultContentType
}

// ResolveFileName 按优先级解析文件名：显式声明 > 载荷自带 > 生成默认.
func ResolveFileName(declared, own string) string {
	if declared != "" {
		return declared
	}

	if own != "" {
		return own
	}

	return DefaultFileName
}
