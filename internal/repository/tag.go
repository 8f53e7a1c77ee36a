package repository

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/utils"
	"gorm.io/gorm"
)

const activeTagsCacheKey = "tags:active"

// TagRepository 标签仓库
type TagRepository struct {
	*Store[model.Tag]
	cache *cache.Cache
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		Store: NewStore[model.Tag](db),
		cache: utils.NewCache(5 * time.Minute),
	}
}

// ListAll 获取全部有效标签（带缓存），用于筛选栏和电影表单
func (r *TagRepository) ListAll() ([]*model.Tag, error) {
	if cached, found := r.cache.Get(activeTagsCacheKey); found {
		if tags, ok := cached.([]*model.Tag); ok {
			return tags, nil
		}
	}

	tags, err := r.AllActive()
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(activeTagsCacheKey, tags)
	return tags, nil
}

// InvalidateCache 标签变更后清理缓存
func (r *TagRepository) InvalidateCache() {
	r.cache.Delete(activeTagsCacheKey)
}

// DetachMovies 将引用该标签的电影的 tag_id 置空
func DetachMovies(tx *gorm.DB, tagID uint) error {
	return tx.Model(&model.Movie{}).Where("tag_id = ?", tagID).Update("tag_id", nil).Error
}
