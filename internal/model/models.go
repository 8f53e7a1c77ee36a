package model

import (
	"time"
)

// Base 所有实体共享的字段：自增主键、创建时间、软删除状态
// Status 为 true 表示有效，false 表示已删除（软删除）
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	Status    bool      `json:"status" gorm:"not null;default:true;index"`
}

// GetBase 返回公共字段，供仓库和生命周期逻辑读取 ID 和状态
func (b *Base) GetBase() *Base {
	return b
}

// Entity 可由通用仓库管理的实体
type Entity interface {
	GetBase() *Base
}

// All 返回所有需要迁移的模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Movie{},
		&Preview{},
		&Comment{},
		&MovieCol{},
		&Permission{},
		&Role{},
		&UserLog{},
		&AdminLog{},
		&OpLog{},
	}
}
