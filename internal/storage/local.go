package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// LocalStore 本地文件系统存储，文件通过 urlPrefix 对外提供
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore 创建本地存储并确保各子目录存在
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	for _, dir := range []string{DirMovie, DirPreview, DirAvatar} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}, nil
}

// Root 本地根目录
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(_ context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	key := objectKey(dir, fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(s.root, filepath.FromSlash(key)), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return key, nil
}

// Remove 删除文件，文件不存在不算错误
func (s *LocalStore) Remove(_ context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.urlPrefix + "/" + key
}
