package repository

import (
	"github.com/user/moviesite/internal/model"
	"gorm.io/gorm"
)

// LogRepository 审计日志仓库（只追加）
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository 创建日志仓库
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// AddUserLog 记录用户登录
func (r *LogRepository) AddUserLog(userID uint, ip string) error {
	return Insert(r.db, &model.UserLog{UserID: userID, IP: ip})
}

// AddAdminLog 记录管理员登录
func (r *LogRepository) AddAdminLog(userID uint, ip string) error {
	return Insert(r.db, &model.AdminLog{UserID: userID, IP: ip})
}

// AddOpLog 在事务中记录管理员操作
func AddOpLog(tx *gorm.DB, userID uint, ip, reason string) error {
	return Insert(tx, &model.OpLog{UserID: userID, IP: ip, Reason: reason})
}

// ListOpLogs 分页获取操作日志
func (r *LogRepository) ListOpLogs(page, perPage int) (*Page[model.OpLog], error) {
	return NewStore[model.OpLog](r.db).ListActiveWith(page, perPage, []string{"User"})
}

// ListAdminLogs 分页获取管理员登录日志
func (r *LogRepository) ListAdminLogs(page, perPage int) (*Page[model.AdminLog], error) {
	return NewStore[model.AdminLog](r.db).ListActiveWith(page, perPage, []string{"User"})
}

// ListUserLogs 分页获取用户登录日志，userID 为 0 时返回全部
func (r *LogRepository) ListUserLogs(userID uint, page, perPage int) (*Page[model.UserLog], error) {
	store := NewStore[model.UserLog](r.db)
	if userID == 0 {
		return store.ListActiveWith(page, perPage, []string{"User"})
	}
	return store.ListActiveWith(page, perPage, []string{"User"}, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}
