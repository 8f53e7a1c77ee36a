package model

// Permission 权限（对应一个后台地址）
type Permission struct {
	Base
	Name string `json:"name" gorm:"size:100;not null;index"`
	URL  string `json:"url" gorm:"size:255;not null;index"`
}

// Role 角色，通过 role_permissions 关联表持有一组权限
type Role struct {
	Base
	Name        string        `json:"name" gorm:"size:100;not null;index"`
	Permissions []*Permission `json:"permissions" gorm:"many2many:role_permissions"`
}

// PermissionIDs 返回角色持有的权限 ID
func (r *Role) PermissionIDs() []uint {
	ids := make([]uint, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		ids = append(ids, p.ID)
	}
	return ids
}

// HasPermission 角色是否持有指定权限
func (r *Role) HasPermission(id uint) bool {
	for _, p := range r.Permissions {
		if p.ID == id {
			return true
		}
	}
	return false
}
