package repository

import (
	"github.com/user/moviesite/internal/model"
	"gorm.io/gorm"
)

type MovieColRepository struct {
	*Store[model.MovieCol]
}

func NewMovieColRepository(db *gorm.DB) *MovieColRepository {
	return &MovieColRepository{Store: NewStore[model.MovieCol](db)}
}

// IsFavorited 检查是否已收藏
func (r *MovieColRepository) IsFavorited(userID, movieID uint) (bool, error) {
	return ExistsActive[model.MovieCol](r.db, 0, "user_id = ? AND movie_id = ?", userID, movieID)
}

// ListByUser 获取用户收藏列表，已删除的电影不再出现
func (r *MovieColRepository) ListByUser(userID uint, page, perPage int) (*Page[model.MovieCol], error) {
	return r.ListActiveWith(page, perPage, []string{"Movie"}, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}, ActiveParent[model.Movie](r.db, "movie_id"))
}

// CountByMovie 统计电影被有效会员收藏的次数
func (r *MovieColRepository) CountByMovie(movieID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.MovieCol{}).Scopes(Active, ActiveParent[model.User](r.db, "user_id")).
		Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}
