package testutil

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"path"
	"sync"
	"testing"

	"github.com/user/moviesite/internal/storage"
)

// FileHeader 构造一个 multipart 上传文件
func FileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

// MemStore 内存媒体存储，记录当前存在的文件
type MemStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

var _ storage.Store = (*MemStore)(nil)

// NewMemStore 创建内存存储
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

func (s *MemStore) Save(_ context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(f); err != nil {
		return "", err
	}

	key := path.Join(dir, storage.GenFilename(fh.Filename))
	s.mu.Lock()
	s.files[key] = buf.Bytes()
	s.mu.Unlock()
	return key, nil
}

func (s *MemStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.files, key)
	s.mu.Unlock()
	return nil
}

func (s *MemStore) URL(key string) string {
	return "/uploads/" + key
}

// Has 文件是否存在
func (s *MemStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[key]
	return ok
}

// Len 当前文件数量
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
