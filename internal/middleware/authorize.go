package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/model"
)

// RoleTable 路由（gin 完整路径）到允许角色的映射
type RoleTable map[string][]model.RoleLevel

// AnyAdmin 所有管理员角色
var AnyAdmin = model.AdminRoles

// Authorize 按角色表校验权限，必须放在 RequireAuth 之后
// 超级管理员总是通过，表中没有登记的路径一律拒绝
func Authorize(table RoleTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			abortWithPage(c, http.StatusUnauthorized, "未登录")
			return
		}
		if role == model.RoleSuperAdmin || table.Allows(c.FullPath(), role) {
			c.Next()
			return
		}
		abortWithPage(c, http.StatusForbidden, "权限不足")
	}
}

// Allows 角色是否可以访问该路径
func (t RoleTable) Allows(path string, role model.RoleLevel) bool {
	if role == model.RoleSuperAdmin {
		return true
	}
	for _, r := range t[path] {
		if r == role {
			return true
		}
	}
	return false
}
