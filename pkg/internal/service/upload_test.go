package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/agrivault/pkg/internal/fault"
	"github.com/yeisme/agrivault/pkg/internal/payload"
	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/storage/s3"
)

// fakeStore 内存实现的对象存储，记录写入并允许注入失败.
type fakeStore struct {
	buckets []string

	bucketsErr  error
	putErr      error
	signedErr   error
	noPublicURL bool

	putBucket      string
	putKey         string
	putData        []byte
	putContentType string
}

func (f *fakeStore) Put(_ context.Context, bucket, key string, data []byte, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}

	f.putBucket = bucket
	f.putKey = key
	f.putData = data
	f.putContentType = contentType

	return nil
}

func (f *fakeStore) PublicURL(bucket, key string) string {
	if f.noPublicURL {
		return ""
	}

	return fmt.Sprintf("http://store.local/%s/%s", bucket, key)
}

func (f *fakeStore) SignedURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	if f.signedErr != nil {
		return "", f.signedErr
	}

	return fmt.Sprintf("http://store.local/%s/%s?signature=abc", bucket, key), nil
}

func (f *fakeStore) BucketNames(_ context.Context) ([]string, error) {
	if f.bucketsErr != nil {
		return nil, f.bucketsErr
	}

	return f.buckets, nil
}

func testFile() *payload.NormalizedFile {
	return &payload.NormalizedFile{
		Bytes:       []byte("hello"),
		FileName:    "a.txt",
		ContentType: "text/plain",
	}
}

func TestBuildStorageKey(t *testing.T) {
	tests := []struct {
		name    string
		folder  string
		ownerID string
		want    string
	}{
		{"folder and owner", "notes", "owner-7", `^notes/owner-7/\d{13}-a\.txt$`},
		{"folder only", "notes", "", `^notes/\d{13}-a\.txt$`},
		{"owner only", "", "owner-7", `^owner-7/\d{13}-a\.txt$`},
		{"bare", "", "", `^\d{13}-a\.txt$`},
		{"slashes trimmed", "/notes/", "/owner-7/", `^notes/owner-7/\d{13}-a\.txt$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := service.BuildStorageKey(tt.folder, tt.ownerID, "a.txt")
			if !regexp.MustCompile(tt.want).MatchString(key) {
				t.Fatalf("key %q does not match %q", key, tt.want)
			}
		})
	}
}

func TestCommitSuccess(t *testing.T) {
	store := &fakeStore{buckets: []string{"books", "covers"}}
	svc := service.NewUploadService(store, time.Hour)

	result, err := svc.Commit(context.Background(), testFile(), "books", "notes", "owner-7")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if !result.Success {
		t.Error("expected Success true")
	}

	if result.Path != store.putKey {
		t.Errorf("Path = %q, stored key = %q", result.Path, store.putKey)
	}

	pattern := regexp.MustCompile(`^notes/owner-7/\d{13}-a\.txt$`)
	if !pattern.MatchString(result.Path) {
		t.Errorf("Path %q does not match expected key shape", result.Path)
	}

	if result.URL != result.SignedURL {
		t.Errorf("URL should prefer signed URL, got %q", result.URL)
	}

	if result.PublicURL == "" || result.SignedURL == "" {
		t.Errorf("both URLs should be set, got public=%q signed=%q", result.PublicURL, result.SignedURL)
	}

	if string(store.putData) != "hello" {
		t.Errorf("stored data = %q", store.putData)
	}

	if store.putContentType != "text/plain" {
		t.Errorf("stored content type = %q", store.putContentType)
	}
}

func TestCommitBucketNotFound(t *testing.T) {
	store := &fakeStore{buckets: []string{"books"}}
	svc := service.NewUploadService(store, time.Hour)

	_, err := svc.Commit(context.Background(), testFile(), "missing", "", "")
	if err == nil {
		t.Fatal("expected error")
	}

	if fault.KindOf(err) != fault.KindBucketNotFound {
		t.Fatalf("kind = %v, want bucket_not_found", fault.KindOf(err))
	}

	details := fault.DetailsOf(err)
	if details["bucket"] != "missing" {
		t.Errorf("details bucket = %v", details["bucket"])
	}

	if _, ok := details["available"]; !ok {
		t.Error("details should list available buckets")
	}

	if fault.KindBucketNotFound.HTTPStatus() != http.StatusNotFound {
		t.Error("bucket_not_found should map to 404")
	}
}

func TestCommitBucketListingUnavailable(t *testing.T) {
	// 列桶失败不拦截写入
	store := &fakeStore{bucketsErr: errors.New("access denied")}
	svc := service.NewUploadService(store, time.Hour)

	result, err := svc.Commit(context.Background(), testFile(), "books", "", "")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if result.Path == "" {
		t.Error("expected object to be written")
	}
}

func TestCommitDuplicateKey(t *testing.T) {
	store := &fakeStore{
		buckets: []string{"books"},
		putErr:  fmt.Errorf("put books/x: %w", s3.ErrObjectExists),
	}
	svc := service.NewUploadService(store, time.Hour)

	_, err := svc.Commit(context.Background(), testFile(), "books", "", "")
	if fault.KindOf(err) != fault.KindDuplicateKey {
		t.Fatalf("kind = %v, want duplicate_key", fault.KindOf(err))
	}

	if fault.KindDuplicateKey.HTTPStatus() != http.StatusConflict {
		t.Error("duplicate_key should map to 409")
	}
}

func TestCommitPermissionDenied(t *testing.T) {
	store := &fakeStore{
		buckets: []string{"books"},
		putErr:  minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden},
	}
	svc := service.NewUploadService(store, time.Hour)

	_, err := svc.Commit(context.Background(), testFile(), "books", "", "")
	if fault.KindOf(err) != fault.KindStoragePermission {
		t.Fatalf("kind = %v, want storage_permission", fault.KindOf(err))
	}
}

func TestCommitPayloadTooLarge(t *testing.T) {
	store := &fakeStore{
		buckets: []string{"books"},
		putErr:  minio.ErrorResponse{Code: "EntityTooLarge", StatusCode: http.StatusRequestEntityTooLarge},
	}
	svc := service.NewUploadService(store, time.Hour)

	_, err := svc.Commit(context.Background(), testFile(), "books", "", "")
	if fault.KindOf(err) != fault.KindPayloadTooLarge {
		t.Fatalf("kind = %v, want payload_too_large", fault.KindOf(err))
	}
}

func TestCommitSignedURLFallsBackToPublic(t *testing.T) {
	store := &fakeStore{
		buckets:   []string{"books"},
		signedErr: errors.New("presign unavailable"),
	}
	svc := service.NewUploadService(store, time.Hour)

	result, err := svc.Commit(context.Background(), testFile(), "books", "", "")
	if err != nil {
		t.Fatalf("Commit should fall back to public URL, got error: %v", err)
	}

	if result.URL != result.PublicURL || result.PublicURL == "" {
		t.Errorf("URL = %q, want public URL %q", result.URL, result.PublicURL)
	}

	if result.SignedURL != "" {
		t.Errorf("SignedURL = %q, want empty when presign fails", result.SignedURL)
	}
}

func TestCommitNoURLResolvable(t *testing.T) {
	store := &fakeStore{
		buckets:     []string{"books"},
		signedErr:   errors.New("presign unavailable"),
		noPublicURL: true,
	}
	svc := service.NewUploadService(store, time.Hour)

	_, err := svc.Commit(context.Background(), testFile(), "books", "", "")
	if fault.KindOf(err) != fault.KindURLResolution {
		t.Fatalf("kind = %v, want url_resolution", fault.KindOf(err))
	}

	// 对象已写入，诊断信息带出 path 供调用方重取 URL
	details := fault.DetailsOf(err)
	if details["path"] != store.putKey {
		t.Errorf("details path = %v, stored key = %q", details["path"], store.putKey)
	}
}
