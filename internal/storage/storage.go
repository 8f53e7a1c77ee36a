// Package storage 保存上传的媒体文件（视频、封面、头像）
package storage

import (
	"context"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// 媒体子目录
const (
	DirMovie   = "movie"
	DirPreview = "preview"
	DirAvatar  = "avatar"
)

// Store 媒体存储后端
// key 形如 "movie/20240101120000<uuid>.mp4"，实体中保存的就是 key
type Store interface {
	Save(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

// GenFilename 生成不重复的文件名：时间戳 + uuid + 原扩展名
func GenFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return time.Now().Format("20060102150405") + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

func objectKey(dir, original string) string {
	return path.Join(dir, GenFilename(original))
}

// validKey 拒绝越出存储根目录的 key
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	clean := path.Clean(key)
	return clean == key && !strings.HasPrefix(clean, "..")
}
