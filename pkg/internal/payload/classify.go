// Package payload 把异构的入站文件表示归一化为字节缓冲.
// Web 端发 multipart File、移动端原生桥可能发 JSON 包装的字节数组
// 或 base64 data-URI，分类在边界一次完成，后续按标签分派，不再逐处探测能力.
package payload

import (
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"sort"
	"strings"
)

// Variant 载荷的识别结果标签，封闭集合.
type Variant int

const (
	// VariantUnknown 未识别的载荷形式.
	VariantUnknown Variant = iota
	// VariantOpener 可打开读取的文件句柄，multipart 上传的标准形态.
	VariantOpener
	// VariantReader 顺序流式读取.
	VariantReader
	// VariantBytes 原始字节缓冲.
	VariantBytes
	// VariantByteSeq JSON 解码产生的数值序列，每个元素为 0-255 的整数.
	VariantByteSeq
	// VariantEmbedded 包装对象，data/_data 属性携带实际内容.
	VariantEmbedded
	// VariantDataURI base64 data-URI 字符串.
	VariantDataURI
)

// String 返回标签名.
func (v Variant) String() string {
	switch v {
	case VariantOpener:
		return "opener"
	case VariantReader:
		return "reader"
	case VariantBytes:
		return "bytes"
	case VariantByteSeq:
		return "byte_seq"
	case VariantEmbedded:
		return "embedded"
	case VariantDataURI:
		return "data_uri"
	default:
		return "unknown"
	}
}

// Opener 可打开为读取流的载荷.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// Classified 分类结果，Raw 保持原值，由 Normalize 按标签取用.
type Classified struct {
	Variant Variant
	Raw     any
}

// Classify 按固定顺序探测载荷的结构前提，第一个命中的形式独占后续处理.
// 顺序：文件句柄 > 流 > 字节缓冲 > 数值序列 > 包装对象 > data-URI.
func Classify(raw any) Classified {
	if raw == nil {
		return Classified{Variant: VariantUnknown, Raw: raw}
	}

	if _, ok := raw.(*multipart.FileHeader); ok {
		return Classified{Variant: VariantOpener, Raw: raw}
	}

	if _, ok := raw.(Opener); ok {
		return Classified{Variant: VariantOpener, Raw: raw}
	}

	if _, ok := raw.(io.Reader); ok {
		return Classified{Variant: VariantReader, Raw: raw}
	}

	switch v := raw.(type) {
	case []byte:
		return Classified{Variant: VariantBytes, Raw: raw}
	case []any, []float64, []int:
		if _, ok := bytesFromSeq(raw); ok {
			return Classified{Variant: VariantByteSeq, Raw: raw}
		}
	case map[string]any:
		if _, ok := embeddedData(v); ok {
			return Classified{Variant: VariantEmbedded, Raw: raw}
		}
	case string:
		if strings.HasPrefix(v, "data:") {
			return Classified{Variant: VariantDataURI, Raw: raw}
		}
	}

	return Classified{Variant: VariantUnknown, Raw: raw}
}

// bytesFromSeq 把数值序列转为字节，任一元素不是 0-255 的整数则整体不适用.
func bytesFromSeq(raw any) ([]byte, bool) {
	toByte := func(f float64) (byte, bool) {
		if f != float64(int64(f)) || f < 0 || f > 255 {
			return 0, false
		}

		return byte(f), true
	}

	switch seq := raw.(type) {
	case []float64:
		out := make([]byte, 0, len(seq))

		for _, f := range seq {
			b, ok := toByte(f)
			if !ok {
				return nil, false
			}

			out = append(out, b)
		}

		return out, true
	case []int:
		out := make([]byte, 0, len(seq))

		for _, n := range seq {
			if n < 0 || n > 255 {
				return nil, false
			}

			out = append(out, byte(n))
		}

		return out, true
	case []any:
		out := make([]byte, 0, len(seq))

		for _, el := range seq {
			f, ok := el.(float64)
			if !ok {
				return nil, false
			}

			b, ok := toByte(f)
			if !ok {
				return nil, false
			}

			out = append(out, b)
		}

		return out, true
	default:
		return nil, false
	}
}

// embeddedData 从包装对象里取出 data/_data 属性，返回其值和是否为可识别形式.
func embeddedData(m map[string]any) (any, bool) {
	var data any

	if v, ok := m["_data"]; ok {
		data = v
	} else if v, ok := m["data"]; ok {
		data = v
	} else {
		return nil, false
	}

	switch v := data.(type) {
	case []byte:
		return data, true
	case []any, []float64, []int:
		if _, ok := bytesFromSeq(data); ok {
			return data, true
		}
	case string:
		if strings.HasPrefix(v, "data:") {
			return data, true
		}
	}

	return nil, false
}

// Describe 生成未识别载荷的诊断信息：运行时类型、具备的能力、可枚举的属性名.
// 足够调用方定位不受支持的客户端格式，无需服务端堆栈.
func Describe(raw any) map[string]any {
	desc := map[string]any{
		"type_name": fmt.Sprintf("%T", raw),
	}

	if raw == nil {
		return desc
	}

	_, isOpener := raw.(Opener)
	_, isFileHeader := raw.(*multipart.FileHeader)
	_, isReader := raw.(io.Reader)
	_, isBytes := raw.([]byte)

	desc["has_open"] = isOpener || isFileHeader
	desc["has_read"] = isReader
	desc["is_buffer"] = isBytes

	switch v := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)
		desc["keys"] = keys
	default:
		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}

		if rv.IsValid() && rv.Kind() == reflect.Struct {
			rt := rv.Type()
			keys := make([]string, 0, rt.NumField())

			for i := range rt.NumField() {
				keys = append(keys, rt.Field(i).Name)
			}

			desc["keys"] = keys
		}
	}

	return desc
}
