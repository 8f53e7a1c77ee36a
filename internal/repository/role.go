package repository

import (
	"github.com/user/moviesite/internal/model"
	"gorm.io/gorm"
)

// RoleRepository 角色仓库
type RoleRepository struct {
	*Store[model.Role]
}

// NewRoleRepository 创建角色仓库
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{Store: NewStore[model.Role](db)}
}

// FindWithPermissions 查找角色并加载其有效权限
func (r *RoleRepository) FindWithPermissions(id uint) (*model.Role, error) {
	return r.FindActive(id, preloadActivePermissions)
}

// List 分页获取角色及其有效权限
func (r *RoleRepository) List(page, perPage int) (*Page[model.Role], error) {
	result, err := r.ListActive(page, perPage)
	if err != nil {
		return nil, err
	}
	for _, role := range result.Items {
		err := r.db.Model(role).Where("status = ?", true).Association("Permissions").Find(&role.Permissions)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ReplacePermissions 在事务中替换角色的权限集合
func ReplacePermissions(tx *gorm.DB, role *model.Role, permissionIDs []uint) error {
	perms := make([]*model.Permission, 0, len(permissionIDs))
	if len(permissionIDs) > 0 {
		if err := tx.Scopes(Active).Where("id IN ?", permissionIDs).Find(&perms).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(role).Association("Permissions").Replace(perms); err != nil {
		return err
	}
	role.Permissions = perms
	return nil
}

func preloadActivePermissions(db *gorm.DB) *gorm.DB {
	return db.Preload("Permissions", "status = ?", true)
}
