package repository

import (
	"github.com/user/moviesite/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	*Store[model.Comment]
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{Store: NewStore[model.Comment](db)}
}

// ListByMovie 分页获取电影的评论，已删除会员的评论不显示
func (r *CommentRepository) ListByMovie(movieID uint, page, perPage int) (*Page[model.Comment], error) {
	return r.ListActiveWith(page, perPage, []string{"User"}, func(db *gorm.DB) *gorm.DB {
		return db.Where("movie_id = ?", movieID)
	}, ActiveParent[model.User](r.db, "user_id"))
}

// ListByUser 分页获取用户发表的评论，已删除电影的评论不显示
func (r *CommentRepository) ListByUser(userID uint, page, perPage int) (*Page[model.Comment], error) {
	return r.ListActiveWith(page, perPage, []string{"Movie"}, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}, ActiveParent[model.Movie](r.db, "movie_id"))
}
