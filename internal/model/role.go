package model

// RoleLevel 用户角色等级
type RoleLevel int

const (
	RoleUser         RoleLevel = 0
	RoleAdmin        RoleLevel = 1
	RoleTagAdmin     RoleLevel = 2
	RoleMovieAdmin   RoleLevel = 3
	RolePreviewAdmin RoleLevel = 4
	RoleLogAdmin     RoleLevel = 5
	RoleUserAdmin    RoleLevel = 6
	RoleSuperAdmin   RoleLevel = 99
)

var roleNames = map[RoleLevel]string{
	RoleUser:         "普通用户",
	RoleAdmin:        "普通管理员",
	RoleTagAdmin:     "标签管理员",
	RoleMovieAdmin:   "影片管理员",
	RolePreviewAdmin: "预告管理员",
	RoleLogAdmin:     "日志管理员",
	RoleUserAdmin:    "用户管理员",
	RoleSuperAdmin:   "超级管理员",
}

// AdminRoles 除超级管理员外的所有管理员角色
var AdminRoles = []RoleLevel{
	RoleAdmin,
	RoleTagAdmin,
	RoleMovieAdmin,
	RolePreviewAdmin,
	RoleLogAdmin,
	RoleUserAdmin,
}

// AssignableRoles 可在后台分配的角色，按等级排序
var AssignableRoles = append([]RoleLevel{RoleUser}, append(AdminRoles, RoleSuperAdmin)...)

func (r RoleLevel) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "未知角色"
}

// Valid 是否为已定义的角色
func (r RoleLevel) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// IsAdmin 是否为任意管理员角色（含超级管理员）
func (r RoleLevel) IsAdmin() bool {
	return r != RoleUser && r.Valid()
}
