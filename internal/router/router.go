package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/handler"
	"github.com/user/moviesite/internal/middleware"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/storage"
	"github.com/user/moviesite/web"
)

// AdminRoles 后台路由的角色表，超级管理员可访问全部路由
// 未登记的路由（权限、角色、管理员、修改会员角色）只有超级管理员可以访问
var AdminRoles = middleware.RoleTable{
	"/admin":                      middleware.AnyAdmin,
	"/admin/user/list":            middleware.AnyAdmin,
	"/admin/user/view/:id":        middleware.AnyAdmin,
	"/admin/user_login_log/list":  middleware.AnyAdmin,
	"/admin/user/del/:id":         {model.RoleUserAdmin},
	"/admin/oplog/list":           {model.RoleLogAdmin},
	"/admin/admin_login_log/list": {model.RoleLogAdmin},
	"/admin/tag/list":             {model.RoleTagAdmin},
	"/admin/tag/add":              {model.RoleTagAdmin},
	"/admin/tag/edit/:id":         {model.RoleTagAdmin},
	"/admin/tag/del/:id":          {model.RoleTagAdmin},
	"/admin/movie/list":           {model.RoleMovieAdmin},
	"/admin/movie/add":            {model.RoleMovieAdmin},
	"/admin/movie/edit/:id":       {model.RoleMovieAdmin},
	"/admin/movie/del/:id":        {model.RoleMovieAdmin},
	"/admin/preview/list":         {model.RolePreviewAdmin},
	"/admin/preview/add":          {model.RolePreviewAdmin},
	"/admin/preview/edit/:id":     {model.RolePreviewAdmin},
	"/admin/preview/del/:id":      {model.RolePreviewAdmin},
}

// New 创建 gin 引擎：中间件、Session、模板、静态文件和全部路由
func New(h *handler.Handler) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(h.Config.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("moviesite", store))
	r.MaxMultipartMemory = int64(h.Config.MaxUploadMB) << 20

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	renderer, err := LoadTemplates(templates, FuncMap(h.Services.Storage))
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	static, err := web.Static()
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	if local, ok := h.Services.Storage.(*storage.LocalStore); ok {
		r.Static("/uploads", local.Root())
	}

	RegisterRoutes(r, h)
	return r, nil
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	loadUser := func(id uint) (*model.User, error) {
		return h.Repos.User.FindActive(id)
	}
	secret := h.Config.AppSecret
	requireAuth := middleware.RequireAuth(secret, loadUser)

	r.GET("/health", h.Health)
	r.NoRoute(h.NoRoute)

	// ==================== 前台页面 ====================
	front := r.Group("/", middleware.OptionalAuth(secret, loadUser))
	{
		front.GET("", h.Index)
		front.GET("/animation", h.Animation)
		front.GET("/search", h.Search)
		front.GET("/play/:id", h.Play)
		front.POST("/play/:id", requireAuth, h.Comment)

		front.GET("/login", h.LoginPage)
		front.POST("/login", h.Login)
		front.GET("/register", h.RegisterPage)
		front.POST("/register", h.Register)
		front.POST("/logout", h.Logout)
	}

	// ==================== 会员中心（需要登录）====================
	member := r.Group("/", requireAuth)
	{
		member.GET("/change_password", h.ChangePasswordPage)
		member.POST("/change_password", h.ChangePassword)
		member.GET("/user/info", h.UserInfoPage)
		member.POST("/user/info", h.UpdateUserInfo)
		member.GET("/comment/list", h.CommentList)
		member.GET("/login_log", h.LoginLog)
		member.GET("/movie_col/list", h.FavoriteList)
		member.POST("/movie_col/add", h.AddFavorite)
	}

	// ==================== 管理后台 ====================
	admin := r.Group("/admin", requireAuth, middleware.Authorize(AdminRoles))
	{
		admin.GET("", h.AdminIndex)

		crud := func(prefix string, list, addPage, add, editPage, edit, del gin.HandlerFunc) {
			admin.GET(prefix+"/list", list)
			admin.GET(prefix+"/add", addPage)
			admin.POST(prefix+"/add", add)
			admin.GET(prefix+"/edit/:id", editPage)
			admin.POST(prefix+"/edit/:id", edit)
			admin.POST(prefix+"/del/:id", del)
		}

		tags := h.TagAdmin()
		crud("/tag", tags.List, tags.AddPage, tags.Add, tags.EditPage, tags.Edit, tags.Delete)
		movies := h.MovieAdmin()
		crud("/movie", movies.List, movies.AddPage, movies.Add, movies.EditPage, movies.Edit, movies.Delete)
		previews := h.PreviewAdmin()
		crud("/preview", previews.List, previews.AddPage, previews.Add, previews.EditPage, previews.Edit, previews.Delete)
		perms := h.PermissionAdmin()
		crud("/permission", perms.List, perms.AddPage, perms.Add, perms.EditPage, perms.Edit, perms.Delete)
		roles := h.RoleAdmin()
		crud("/role", roles.List, roles.AddPage, roles.Add, roles.EditPage, roles.Edit, roles.Delete)

		admin.GET("/user/list", h.AdminUserList)
		admin.GET("/user/view/:id", h.AdminUserView)
		admin.POST("/user/del/:id", h.AdminUserDelete)
		admin.GET("/user/role/:id", h.AdminUserRolePage)
		admin.POST("/user/role/:id", h.AdminUserRole)

		admin.GET("/admin/list", h.AdminList)
		admin.GET("/admin/add", h.AdminAddPage)
		admin.POST("/admin/add", h.AdminAdd)

		admin.GET("/oplog/list", h.OpLogList)
		admin.GET("/admin_login_log/list", h.AdminLoginLogList)
		admin.GET("/user_login_log/list", h.UserLoginLogList)
	}
}
