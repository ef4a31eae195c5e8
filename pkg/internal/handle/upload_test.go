package handle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/configs"
	"github.com/yeisme/agrivault/pkg/internal/handle"
	"github.com/yeisme/agrivault/pkg/internal/router"
	"github.com/yeisme/agrivault/pkg/internal/service"
)

// memStore 内存对象存储，记录最后一次写入.
type memStore struct {
	buckets []string

	lastKey         string
	lastData        []byte
	lastContentType string
}

func (m *memStore) Put(_ context.Context, _, key string, data []byte, contentType string) error {
	m.lastKey = key
	m.lastData = data
	m.lastContentType = contentType

	return nil
}

func (m *memStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("http://store.local/%s/%s", bucket, key)
}

func (m *memStore) SignedURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("http://store.local/%s/%s?signature=abc", bucket, key), nil
}

func (m *memStore) BucketNames(_ context.Context) ([]string, error) {
	return m.buckets, nil
}

func newTestServer(t *testing.T, store *memStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	engine := gin.New()
	svc := service.NewUploadService(store, time.Hour)
	router.RegisterUploadRoutes(engine, handle.NewUploadHandler(svc))

	return engine
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}

		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return body, mw.FormDataContentType()
}

func TestUploadMultipartFile(t *testing.T) {
	store := &memStore{buckets: []string{"books"}}
	engine := newTestServer(t, store)

	body, contentType := multipartBody(t,
		map[string]string{"bucket": "books", "folder": "notes", "owner_id": "owner-7"},
		"a.txt", []byte("once upon a time"))

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		Path      string `json:"path"`
		URL       string `json:"url"`
		PublicURL string `json:"publicUrl"`
		SignedURL string `json:"signedUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !resp.Success {
		t.Error("expected success true")
	}

	// owner 段出现在键里说明表单的 owner_id 字段被读到了
	if !regexp.MustCompile(`^notes/owner-7/\d{13}-a\.txt$`).MatchString(resp.Path) {
		t.Errorf("path %q does not match expected key shape", resp.Path)
	}

	if resp.URL != resp.SignedURL || resp.SignedURL == "" {
		t.Errorf("url = %q, signedUrl = %q", resp.URL, resp.SignedURL)
	}

	if string(store.lastData) != "once upon a time" {
		t.Errorf("stored data = %q", store.lastData)
	}
}

func TestUploadMissingBucket(t *testing.T) {
	engine := newTestServer(t, &memStore{buckets: []string{"books"}})

	body, contentType := multipartBody(t, nil, "a.txt", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	if !strings.Contains(w.Body.String(), "bucket") {
		t.Errorf("error should mention bucket, got %s", w.Body.String())
	}
}

func TestUploadUnknownBucket(t *testing.T) {
	engine := newTestServer(t, &memStore{buckets: []string{"books"}})

	body, contentType := multipartBody(t,
		map[string]string{"bucket": "missing"}, "a.txt", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Details["bucket"] != "missing" {
		t.Errorf("details bucket = %v", resp.Details["bucket"])
	}
}

func TestUploadJSONDataURI(t *testing.T) {
	store := &memStore{buckets: []string{"covers"}}
	engine := newTestServer(t, store)

	payload := map[string]any{
		"bucket":   "covers",
		"fileName": "pixel.png",
		"file":     "data:image/png;base64,AAAA",
	}

	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if !bytes.Equal(store.lastData, []byte{0, 0, 0}) {
		t.Errorf("stored data = %v, want decoded base64", store.lastData)
	}

	if store.lastContentType != "image/png" {
		t.Errorf("content type = %q, want image/png from data URI header", store.lastContentType)
	}
}

func TestUploadJSONByteArray(t *testing.T) {
	store := &memStore{buckets: []string{"books"}}
	engine := newTestServer(t, store)

	payload := map[string]any{
		"bucket":   "books",
		"fileName": "raw.bin",
		"owner_id": "owner-7",
		"file":     []int{104, 105},
	}

	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if string(store.lastData) != "hi" {
		t.Errorf("stored data = %q", store.lastData)
	}

	if !regexp.MustCompile(`^owner-7/\d{13}-raw\.bin$`).MatchString(store.lastKey) {
		t.Errorf("key %q should carry the owner segment from the JSON owner_id field", store.lastKey)
	}
}

func TestUploadUnrecognizedPayload(t *testing.T) {
	engine := newTestServer(t, &memStore{buckets: []string{"books"}})

	payload := map[string]any{
		"bucket": "books",
		"file":   true,
	}

	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Details == nil {
		t.Error("unrecognized payload should carry diagnostic details")
	}
}

func TestUploadOptionsReturns200(t *testing.T) {
	engine := newTestServer(t, &memStore{buckets: []string{"books"}})

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("OPTIONS /upload status = %d, want 200", w.Code)
	}
}
