package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/middleware"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/service"
)

// ==================== 管理后台 ====================

// AdminIndex 后台首页
func (h *Handler) AdminIndex(c *gin.Context) {
	stats, err := h.Services.Catalog.Stats(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "admin_index.html", gin.H{"Title": "管理后台", "Stats": stats})
}

// TagAdmin 标签管理
func (h *Handler) TagAdmin() *Resource[model.Tag, dto.TagForm] {
	return &Resource[model.Tag, dto.TagForm]{
		h:         h,
		base:      "/admin/tag",
		title:     "标签",
		template:  "admin_tag",
		lifecycle: h.Services.Tags,
		find:      func(id uint) (*model.Tag, error) { return h.Repos.Tag.FindActive(id) },
		list: func(page, perPage int) (interface{}, error) {
			return h.Repos.Tag.ListActive(page, perPage)
		},
		apply: func(f *dto.TagForm) func(*model.Tag) { return f.Apply },
		fill:  func(t *model.Tag) *dto.TagForm { return &dto.TagForm{Name: t.Name} },
	}
}

// MovieAdmin 电影管理
func (h *Handler) MovieAdmin() *Resource[model.Movie, dto.MovieForm] {
	return &Resource[model.Movie, dto.MovieForm]{
		h:         h,
		base:      "/admin/movie",
		title:     "电影",
		template:  "admin_movie",
		lifecycle: h.Services.Movies,
		find:      h.Repos.Movie.FindWithTag,
		list: func(page, perPage int) (interface{}, error) {
			return h.Repos.Movie.ListActiveWith(page, perPage, []string{"Tag"})
		},
		apply:    func(f *dto.MovieForm) func(*model.Movie) { return f.Apply },
		fill:     dto.FillMovie,
		media:    []string{"url", "logo"},
		required: map[string]string{"url": "请上传文件！", "logo": "请上传封面！"},
		extra: func() (gin.H, error) {
			tags, err := h.Repos.Tag.ListAll()
			return gin.H{"Tags": tags, "Stars": []int{1, 2, 3, 4, 5}}, err
		},
	}
}

// PreviewAdmin 电影预告管理
func (h *Handler) PreviewAdmin() *Resource[model.Preview, dto.PreviewForm] {
	return &Resource[model.Preview, dto.PreviewForm]{
		h:         h,
		base:      "/admin/preview",
		title:     "电影预告",
		template:  "admin_preview",
		lifecycle: h.Services.Previews,
		find:      func(id uint) (*model.Preview, error) { return h.Repos.Preview.FindActive(id) },
		list: func(page, perPage int) (interface{}, error) {
			return h.Repos.Preview.ListActive(page, perPage)
		},
		apply:    func(f *dto.PreviewForm) func(*model.Preview) { return f.Apply },
		fill:     func(p *model.Preview) *dto.PreviewForm { return &dto.PreviewForm{Title: p.Title} },
		media:    []string{"logo"},
		required: map[string]string{"logo": "请上传封面！"},
	}
}

// PermissionAdmin 权限管理
func (h *Handler) PermissionAdmin() *Resource[model.Permission, dto.PermissionForm] {
	return &Resource[model.Permission, dto.PermissionForm]{
		h:         h,
		base:      "/admin/permission",
		title:     "权限",
		template:  "admin_permission",
		lifecycle: h.Services.Permissions,
		find:      func(id uint) (*model.Permission, error) { return h.Repos.Permission.FindActive(id) },
		list: func(page, perPage int) (interface{}, error) {
			return h.Repos.Permission.ListActive(page, perPage)
		},
		apply: func(f *dto.PermissionForm) func(*model.Permission) { return f.Apply },
		fill: func(p *model.Permission) *dto.PermissionForm {
			return &dto.PermissionForm{Name: p.Name, URL: p.URL}
		},
	}
}

// RoleAdmin 角色管理
func (h *Handler) RoleAdmin() *Resource[model.Role, dto.RoleForm] {
	return &Resource[model.Role, dto.RoleForm]{
		h:         h,
		base:      "/admin/role",
		title:     "角色",
		template:  "admin_role",
		lifecycle: h.Services.Roles,
		find:      h.Repos.Role.FindWithPermissions,
		list: func(page, perPage int) (interface{}, error) {
			return h.Repos.Role.List(page, perPage)
		},
		apply: func(f *dto.RoleForm) func(*model.Role) { return f.Apply },
		fill: func(r *model.Role) *dto.RoleForm {
			return &dto.RoleForm{Name: r.Name, PermissionIDs: r.PermissionIDs()}
		},
		extra: func() (gin.H, error) {
			perms, err := h.Repos.Permission.AllActive()
			return gin.H{"Permissions": perms}, err
		},
	}
}

// ==================== 会员管理 ====================

// AdminUserList 会员列表
func (h *Handler) AdminUserList(c *gin.Context) {
	page, err := h.Repos.User.ListActive(pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "admin_user_list.html", gin.H{"Title": "会员列表", "Page": page})
}

// AdminUserView 查看会员
func (h *Handler) AdminUserView(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	h.render(c, "admin_user_view.html", gin.H{"Title": "查看会员", "User": user})
}

// AdminUserDelete 删除会员
func (h *Handler) AdminUserDelete(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	if user.ID == middleware.GetUserID(c) {
		h.redirectWith(c, flashError, "不能删除自己", "/admin/user/list")
		return
	}

	msg, err := h.Services.Users.Delete(c.Request.Context(), user, actor(c))
	if err != nil {
		h.writeFailed(c, err, "/admin/user/list")
		return
	}
	h.redirectWith(c, flashMessage, msg, "/admin/user/list")
}

// AdminUserRolePage 修改会员角色页面
func (h *Handler) AdminUserRolePage(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	h.render(c, "admin_user_role.html", gin.H{
		"Title": "修改角色",
		"User":  user,
		"Roles": model.AssignableRoles,
	})
}

// AdminUserRole 修改会员角色
func (h *Handler) AdminUserRole(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	back := fmt.Sprintf("/admin/user/role/%d", user.ID)

	var form dto.UserRoleForm
	if errs := bindForm(c, &form); errs != nil {
		h.redirectWith(c, flashError, "请选择角色！", back)
		return
	}

	msg, err := h.Services.Auth.SetRole(c.Request.Context(), user, form.Role, actor(c))
	if errors.Is(err, service.ErrInvalidRole) {
		h.redirectWith(c, flashError, err.Error(), back)
		return
	}
	if err != nil {
		h.writeFailed(c, err, back)
		return
	}
	h.redirectWith(c, flashMessage, msg, "/admin/user/list")
}

func (h *Handler) loadUser(c *gin.Context) (*model.User, bool) {
	id, ok := idParam(c)
	if !ok {
		h.notFound(c)
		return nil, false
	}
	user, err := h.Repos.User.FindActive(id)
	if err != nil {
		h.serverError(c, err)
		return nil, false
	}
	if user == nil {
		h.notFound(c)
		return nil, false
	}
	return user, true
}

// ==================== 管理员 ====================

// AdminList 管理员列表
func (h *Handler) AdminList(c *gin.Context) {
	page, err := h.Repos.User.ListAdmins(pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "admin_admin_list.html", gin.H{"Title": "管理员列表", "Page": page})
}

// AdminAddPage 添加管理员页面
func (h *Handler) AdminAddPage(c *gin.Context) {
	h.renderAdminForm(c, &dto.AdminForm{}, nil)
}

// AdminAdd 添加管理员
func (h *Handler) AdminAdd(c *gin.Context) {
	var form dto.AdminForm
	if errs := bindForm(c, &form); errs != nil {
		h.renderAdminForm(c, &form, errs)
		return
	}

	_, msg, err := h.Services.Auth.AddAdmin(c.Request.Context(), service.Account{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	}, form.Role, actor(c))
	if errors.Is(err, service.ErrInvalidRole) || errors.Is(err, service.ErrPasswordLength) {
		h.redirectWith(c, flashError, err.Error(), "/admin/admin/add")
		return
	}
	if err != nil {
		h.writeFailed(c, err, "/admin/admin/add")
		return
	}
	h.redirectWith(c, flashMessage, msg, "/admin/admin/list")
}

func (h *Handler) renderAdminForm(c *gin.Context, form *dto.AdminForm, errs dto.FieldErrors) {
	h.render(c, "admin_admin_add.html", gin.H{
		"Title":       "添加管理员",
		"Form":        form,
		"FieldErrors": errs,
		"Roles":       model.AssignableRoles[1:],
	})
}

// ==================== 日志 ====================

// OpLogList 操作日志
func (h *Handler) OpLogList(c *gin.Context) {
	page, err := h.Repos.Log.ListOpLogs(pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "admin_oplog_list.html", gin.H{"Title": "操作日志", "Page": page})
}

// AdminLoginLogList 管理员登录日志
func (h *Handler) AdminLoginLogList(c *gin.Context) {
	page, err := h.Repos.Log.ListAdminLogs(pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "admin_login_log_list.html", gin.H{"Title": "管理员登录日志", "Page": page})
}

// UserLoginLogList 会员登录日志，可按 ?uid= 过滤
func (h *Handler) UserLoginLogList(c *gin.Context) {
	uid := uint(max(queryInt(c, "uid"), 0))
	page, err := h.Repos.Log.ListUserLogs(uid, pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "admin_user_login_log_list.html", gin.H{"Title": "会员登录日志", "Page": page, "UID": uid})
}
