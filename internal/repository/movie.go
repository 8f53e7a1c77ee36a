package repository

import (
	"strings"

	"github.com/user/moviesite/internal/model"
	"gorm.io/gorm"
)

// MovieFilter 首页筛选条件
// Time/PlayNum/CommentNum: 0 不排序，1 倒序，2 正序
type MovieFilter struct {
	TagID      uint
	Star       int
	Time       int
	PlayNum    int
	CommentNum int
}

type MovieRepository struct {
	*Store[model.Movie]
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{Store: NewStore[model.Movie](db)}
}

// FindWithTag 查找有效电影并加载标签
func (r *MovieRepository) FindWithTag(id uint) (*model.Movie, error) {
	return r.FindActive(id, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Tag")
	})
}

// List 按筛选条件分页获取有效电影
func (r *MovieRepository) List(f MovieFilter, page, perPage int) (*Page[model.Movie], error) {
	q := r.db.Model(&model.Movie{}).Scopes(Active)
	if f.TagID != 0 {
		q = q.Where("tag_id = ?", f.TagID)
	}
	if f.Star != 0 {
		q = q.Where("star = ?", f.Star)
	}

	var orders []string
	orders = appendOrder(orders, "created_at", f.Time)
	orders = appendOrder(orders, "play_num", f.PlayNum)
	orders = appendOrder(orders, "comment_num", f.CommentNum)
	orders = append(orders, "id DESC")

	return Paginate[model.Movie](q, page, perPage, strings.Join(orders, ", "), "Tag")
}

func appendOrder(orders []string, column string, dir int) []string {
	switch dir {
	case 1:
		return append(orders, column+" DESC")
	case 2:
		return append(orders, column+" ASC")
	}
	return orders
}

// Search 按片名模糊搜索（不区分大小写）
func (r *MovieRepository) Search(key string, page, perPage int) (*Page[model.Movie], error) {
	q := r.db.Model(&model.Movie{}).Scopes(Active).
		Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+strings.ToLower(escapeLike(key))+"%")
	return Paginate[model.Movie](q, page, perPage, "play_num DESC, id DESC", "Tag")
}

// IncrementPlayNum 播放量 +1
func (r *MovieRepository) IncrementPlayNum(id uint) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", id).
		UpdateColumn("play_num", gorm.Expr("play_num + ?", 1)).Error
}

// IncrementCommentNum 在事务中将评论数 +1
func IncrementCommentNum(tx *gorm.DB, id uint) error {
	return tx.Model(&model.Movie{}).Where("id = ?", id).
		UpdateColumn("comment_num", gorm.Expr("comment_num + ?", 1)).Error
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
