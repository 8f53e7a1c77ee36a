package repository

import (
	"errors"

	"github.com/user/moviesite/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope 查询条件
type Scope = func(*gorm.DB) *gorm.DB

// Store 通用实体仓库，所有默认查询都只返回 status = true 的记录
type Store[T any] struct {
	db *gorm.DB
}

// NewStore 创建通用仓库
func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// DB 返回底层连接
func (s *Store[T]) DB() *gorm.DB {
	return s.db
}

// Active 只保留有效记录
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", true)
}

// ActiveParent 只保留 column 指向的 P 记录仍有效的行
func ActiveParent[P any](db *gorm.DB, column string) Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(column+" IN (?)", db.Model(new(P)).Select("id").Where("status = ?", true))
	}
}

// FindActive 根据 ID 查找有效记录，不存在或已删除时返回 nil
func (s *Store[T]) FindActive(id uint, scopes ...Scope) (*T, error) {
	var e T
	err := s.db.Scopes(Active).Scopes(scopes...).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindAny 根据 ID 查找记录（包括已删除），用于审计和测试
func (s *Store[T]) FindAny(id uint) (*T, error) {
	var e T
	err := s.db.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListActive 分页获取有效记录，按创建时间倒序
func (s *Store[T]) ListActive(page, perPage int, scopes ...Scope) (*Page[T], error) {
	return s.ListActiveWith(page, perPage, nil, scopes...)
}

// ListActiveWith 分页获取有效记录并预加载关联
func (s *Store[T]) ListActiveWith(page, perPage int, preloads []string, scopes ...Scope) (*Page[T], error) {
	q := s.db.Model(new(T)).Scopes(Active).Scopes(scopes...)
	return Paginate[T](q, page, perPage, "created_at DESC, id DESC", preloads...)
}

// AllActive 获取全部有效记录
func (s *Store[T]) AllActive(scopes ...Scope) ([]*T, error) {
	var items []*T
	err := s.db.Scopes(Active).Scopes(scopes...).Order("id ASC").Find(&items).Error
	return items, err
}

// CountActive 统计有效记录数量
func (s *Store[T]) CountActive() (int64, error) {
	var count int64
	err := s.db.Model(new(T)).Scopes(Active).Count(&count).Error
	return count, err
}

// ExistsActive 判断是否存在满足条件的有效记录，exclude 非 0 时排除该 ID（更新时排除自身）
func ExistsActive[T any](tx *gorm.DB, exclude uint, query string, args ...interface{}) (bool, error) {
	q := tx.Model(new(T)).Scopes(Active).Where(query, args...)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert 在给定事务中插入记录，关联关系由调用方单独维护
func Insert(tx *gorm.DB, e model.Entity) error {
	b := e.GetBase()
	b.Status = true
	return tx.Omit(clause.Associations).Create(e).Error
}

// Save 在给定事务中保存全部字段
func Save(tx *gorm.DB, e model.Entity) error {
	return tx.Omit(clause.Associations).Save(e).Error
}

// SoftDelete 在给定事务中将记录标记为已删除，不物理删除
func SoftDelete(tx *gorm.DB, e model.Entity) error {
	b := e.GetBase()
	if err := tx.Model(e).Update("status", false).Error; err != nil {
		return err
	}
	b.Status = false
	return nil
}
