package repository

import (
	"errors"

	"github.com/user/moviesite/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	*Store[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Store: NewStore[model.User](db)}
}

// FindByEmail 根据邮箱查找有效用户
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Scopes(Active).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdatePassword 更新密码哈希
func (r *UserRepository) UpdatePassword(userID uint, hash string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hash).Error
}

// ListAdmins 分页获取管理员
func (r *UserRepository) ListAdmins(page, perPage int) (*Page[model.User], error) {
	return r.ListActive(page, perPage, func(db *gorm.DB) *gorm.DB {
		return db.Where("role <> ?", model.RoleUser)
	})
}

// CountAdmins 统计管理员数量（含超级管理员）
func (r *UserRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Scopes(Active).Where("role <> ?", model.RoleUser).Count(&count).Error
	return count, err
}
