package payload_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/yeisme/agrivault/pkg/internal/fault"
	"github.com/yeisme/agrivault/pkg/internal/payload"
)

// makeFileHeader 构造一个真实的 multipart.FileHeader 用于测试.
func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}

	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}

	_ = w.Close()

	r := multipart.NewReader(&buf, w.Boundary())

	form, err := r.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}

	return form.File["file"][0]
}

// TestClassifyOrder 验证分类标签与探测顺序.
func TestClassifyOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want payload.Variant
	}{
		{"file header", &multipart.FileHeader{}, payload.VariantOpener},
		{"reader", bytes.NewReader([]byte("x")), payload.VariantReader},
		{"bytes", []byte{1, 2, 3}, payload.VariantBytes},
		{"float seq", []float64{0, 128, 255}, payload.VariantByteSeq},
		{"any seq", []any{float64(1), float64(2)}, payload.VariantByteSeq},
		{"out of range seq", []float64{300}, payload.VariantUnknown},
		{"fractional seq", []float64{1.5}, payload.VariantUnknown},
		{"embedded bytes", map[string]any{"data": []byte{9}}, payload.VariantEmbedded},
		{"embedded underscore", map[string]any{"_data": "data:text/plain;base64,aGk="}, payload.VariantEmbedded},
		{"embedded junk", map[string]any{"data": 42}, payload.VariantUnknown},
		{"map without data", map[string]any{"uri": "file:///tmp/x"}, payload.VariantUnknown},
		{"data uri", "data:image/png;base64,AAAA", payload.VariantDataURI},
		{"plain string", "hello", payload.VariantUnknown},
		{"nil", nil, payload.VariantUnknown},
		{"number", 42, payload.VariantUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := payload.Classify(tt.raw).Variant; got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

// TestNormalizeRoundTrip 验证每种受支持的载荷形式都能无损归一化.
func TestNormalizeRoundTrip(t *testing.T) {
	content := []byte("fertilizer application schedule for maize")

	seq := make([]any, len(content))
	for i, b := range content {
		seq[i] = float64(b)
	}

	tests := []struct {
		name string
		raw  any
	}{
		{"bytes", append([]byte(nil), content...)},
		{"reader", bytes.NewReader(content)},
		{"any seq", seq},
		{"embedded bytes", map[string]any{"data": append([]byte(nil), content...)}},
		{"file header", makeFileHeader(t, "schedule.txt", content)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nf, err := payload.Normalize(context.Background(), tt.raw, "schedule.txt", "")
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}

			if !bytes.Equal(nf.Bytes, content) {
				t.Errorf("byte length %d, want %d", len(nf.Bytes), len(content))
			}

			if nf.FileName != "schedule.txt" {
				t.Errorf("file name %q, want schedule.txt", nf.FileName)
			}
		})
	}
}

// TestNormalizeDataURI 验证 data-URI 解码和 MIME 解析.
func TestNormalizeDataURI(t *testing.T) {
	nf, err := payload.Normalize(context.Background(), "data:image/png;base64,AAAA", "", "")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if !bytes.Equal(nf.Bytes, []byte{0, 0, 0}) {
		t.Errorf("decoded bytes = %v, want [0 0 0]", nf.Bytes)
	}

	if nf.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", nf.ContentType)
	}
}

// TestNormalizeUnrecognized 验证未识别载荷返回分类失败并携带诊断信息.
func TestNormalizeUnrecognized(t *testing.T) {
	type weird struct {
		URI string
	}

	_, err := payload.Normalize(context.Background(), &weird{URI: "content://media/1"}, "", "")
	if err == nil {
		t.Fatal("expected error for unrecognized payload")
	}

	if fault.KindOf(err) != fault.KindUnrecognizedPayload {
		t.Errorf("kind = %s, want unrecognized_payload", fault.KindOf(err))
	}

	details := fault.DetailsOf(err)
	if details == nil {
		t.Fatal("expected diagnostic details")
	}

	desc, ok := details["payload"].(map[string]any)
	if !ok {
		t.Fatalf("details[payload] = %T, want map", details["payload"])
	}

	if desc["type_name"] == "" {
		t.Error("diagnostic missing runtime type name")
	}

	if keys, ok := desc["keys"].([]string); !ok || len(keys) != 1 || keys[0] != "URI" {
		t.Errorf("diagnostic keys = %v, want [URI]", desc["keys"])
	}
}

// TestNormalizeNilPayload 验证缺失载荷返回 BadRequest.
func TestNormalizeNilPayload(t *testing.T) {
	_, err := payload.Normalize(context.Background(), nil, "", "")
	if fault.KindOf(err) != fault.KindBadRequest {
		t.Errorf("kind = %s, want bad_request", fault.KindOf(err))
	}
}

// TestNormalizeEmptyPayload 验证零字节结果被拒绝而不是静默成功.
func TestNormalizeEmptyPayload(t *testing.T) {
	for _, raw := range []any{[]byte{}, bytes.NewReader(nil)} {
		_, err := payload.Normalize(context.Background(), raw, "a.txt", "")
		if fault.KindOf(err) != fault.KindPayloadRead {
			t.Errorf("kind for %T = %s, want payload_read", raw, fault.KindOf(err))
		}
	}
}

// brokenReader 读取途中报错.
type brokenReader struct{ n int }

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.n > 0 {
		r.n--
		p[0] = 'x'

		return 1, nil
	}

	return 0, errors.New("connection reset")
}

// TestNormalizeReadFailure 验证流中途读失败归类为 PayloadRead 并包含原因.
func TestNormalizeReadFailure(t *testing.T) {
	_, err := payload.Normalize(context.Background(), &brokenReader{n: 2}, "a.txt", "")
	if fault.KindOf(err) != fault.KindPayloadRead {
		t.Fatalf("kind = %s, want payload_read", fault.KindOf(err))
	}

	if !bytes.Contains([]byte(err.Error()), []byte("connection reset")) {
		t.Errorf("error %q should mention underlying cause", err)
	}
}

// TestResolveContentType 验证内容类型解析的优先级链.
func TestResolveContentType(t *testing.T) {
	tests := []struct {
		declared, own, name, want string
	}{
		{"application/pdf", "image/png", "a.mp3", "application/pdf"},
		{"", "image/png", "a.mp3", "image/png"},
		{"", "", "a.mp3", "audio/mpeg"},
		{"", "", "a.m4a", "audio/mp4"},
		{"", "", "cover.JPG", "image/jpeg"},
		{"", "", "noext", payload.DefaultContentType},
		{"", "", "a.xyz", payload.DefaultContentType},
	}

	for _, tt := range tests {
		got := payload.ResolveContentType(tt.declared, tt.own, tt.name)
		if got != tt.want {
			t.Errorf("ResolveContentType(%q,%q,%q) = %q, want %q",
				tt.declared, tt.own, tt.name, got, tt.want)
		}
	}
}

// TestNormalizeNameFromHeader 验证未声明文件名时使用载荷自带名称.
func TestNormalizeNameFromHeader(t *testing.T) {
	fh := makeFileHeader(t, "soil-report.pdf", []byte("%PDF-1.4"))

	nf, err := payload.Normalize(context.Background(), fh, "", "")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if nf.FileName != "soil-report.pdf" {
		t.Errorf("file name = %q, want soil-report.pdf", nf.FileName)
	}
}
