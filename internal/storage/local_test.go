package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader 构造一个 multipart 上传文件
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestGenFilename(t *testing.T) {
	name := GenFilename("Trailer.MP4")
	assert.Regexp(t, regexp.MustCompile(`^\d{14}[0-9a-f]{32}\.mp4$`), name)
	assert.NotEqual(t, name, GenFilename("Trailer.MP4"))
}

func TestLocalStoreSaveRemove(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStore(root, "/uploads")
	require.NoError(t, err)

	key, err := s.Save(context.Background(), DirPreview, fileHeader(t, "logo.png", []byte("png")))
	require.NoError(t, err)
	assert.Equal(t, DirPreview, filepath.Dir(key))
	assert.Equal(t, "/uploads/"+key, s.URL(key))

	data, err := os.ReadFile(filepath.Join(root, key))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, s.Remove(context.Background(), key))
	_, err = os.Stat(filepath.Join(root, key))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, s.Remove(context.Background(), key))
}

func TestLocalStoreRejectsEscapingKey(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Error(t, s.Remove(context.Background(), "../etc/passwd"))
	assert.Error(t, s.Remove(context.Background(), "/etc/passwd"))
	assert.Equal(t, "", s.URL(""))
}
