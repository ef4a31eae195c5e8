package payload

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/yeisme/agrivault/pkg/internal/fault"
)

// NormalizedFile 归一化后的文件：非空字节缓冲加解析完成的元数据.
type NormalizedFile struct {
	Bytes       []byte
	FileName    string
	ContentType string
}

// readChunkSize 流式读取的块大小.
const readChunkSize = 32 * 1024

// Normalize 把任意入站载荷转换为 NormalizedFile.
// declaredName/declaredType 来自请求表单字段，优先于载荷自带的元数据.
// 分类一次完成，命中的策略独占处理；全部不适用时返回携带诊断信息的失败.
func Normalize(ctx context.Context, raw any, declaredName, declaredType string) (*NormalizedFile, error) {
	if raw == nil {
		return nil, fault.New(fault.KindBadRequest, "missing file payload")
	}

	cl := Classify(raw)

	var (
		data    []byte
		ownName string
		ownType string
		err     error
	)

	switch cl.Variant {
	case VariantOpener:
		data, ownName, ownType, err = readOpener(ctx, cl.Raw)
	case VariantReader:
		data, err = drain(ctx, cl.Raw.(io.Reader))
	case VariantBytes:
		data = cl.Raw.([]byte)
	case VariantByteSeq:
		data, _ = bytesFromSeq(cl.Raw)
	case VariantEmbedded:
		inner, _ := embeddedData(cl.Raw.(map[string]any))
		data, ownType, err = readEmbedded(inner)
	case VariantDataURI:
		data, ownType, err = decodeDataURI(cl.Raw.(string))
	default:
		return nil, fault.New(fault.KindUnrecognizedPayload,
			"unsupported file representation %T", raw).
			WithDetail("payload", Describe(raw))
	}

	if err != nil {
		return nil, fault.Wrap(fault.KindPayloadRead, err, "failed to read file payload").
			WithDetail("variant", cl.Variant.String())
	}

	if len(data) == 0 {
		// 空文件在这一层拒绝，不交给存储提交器
		return nil, fault.New(fault.KindPayloadRead, "file payload is empty").
			WithDetail("variant", cl.Variant.String())
	}

	fileName := ResolveFileName(declaredName, ownName)
	contentType := ResolveContentType(declaredType, ownType, fileName)

	return &NormalizedFile{
		Bytes:       data,
		FileName:    fileName,
		ContentType: contentType,
	}, nil
}

// readOpener 打开文件句柄并读完，返回载荷自带的名称和类型.
func readOpener(ctx context.Context, raw any) (data []byte, name, contentType string, err error) {
	var rc io.ReadCloser

	switch v := raw.(type) {
	case *multipart.FileHeader:
		name = v.Filename
		contentType = v.Header.Get("Content-Type")

		f, openErr := v.Open()
		if openErr != nil {
			return nil, "", "", fmt.Errorf("open multipart file: %w", openErr)
		}

		rc = f
	case Opener:
		f, openErr := v.Open()
		if openErr != nil {
			return nil, "", "", fmt.Errorf("open payload: %w", openErr)
		}

		rc = f
	default:
		return nil, "", "", fmt.Errorf("payload is not openable")
	}

	defer rc.Close()

	data, err = drain(ctx, rc)

	return data, name, contentType, err
}

// drain 顺序读完一个流，读取间隙响应取消.
func drain(ctx context.Context, r io.Reader) ([]byte, error) {
	var out []byte

	buf := make([]byte, readChunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			return out, nil
		}

		if err != nil {
			return nil, fmt.Errorf("drain stream: %w", err)
		}
	}
}

// readEmbedded 从包装对象的 data 属性取出字节.
func readEmbedded(inner any) (data []byte, contentType string, err error) {
	switch v := inner.(type) {
	case []byte:
		return v, "", nil
	case string:
		return decodeDataURI(v)
	default:
		if b, ok := bytesFromSeq(inner); ok {
			return b, "", nil
		}

		return nil, "", fmt.Errorf("embedded data property has unsupported form %T", inner)
	}
}

// decodeDataURI 解码 data:<mime>;base64,<payload> 形式的字符串.
func decodeDataURI(s string) (data []byte, contentType string, err error) {
	rest := strings.TrimPrefix(s, "data:")

	header, encoded, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", fmt.Errorf("malformed data URI: no comma separator")
	}

	contentType, _, _ = strings.Cut(header, ";")

	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// 部分客户端不带 padding
		data, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, "", fmt.Errorf("decode base64 payload: %w", err)
		}
	}

	return data, contentType, nil
}
