package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/config"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/middleware"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/service"
	"github.com/user/moviesite/internal/utils"
	"github.com/user/moviesite/pkg/logger"
	"go.uber.org/zap"
)

const (
	sessionUserKey = "userinfo"
	flashMessage   = "message"
	flashError     = "error"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, services *service.Services, cfg *config.Config) *Handler {
	return &Handler{Repos: repos, Services: services, Config: cfg}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"Path":     c.Request.URL.Path,
		"URL":      c.Request.URL,
	}

	// 登录状态以 Token 为准，Token 失效后清除 Session 中残留的用户信息
	session := sessions.Default(c)
	if user := middleware.CurrentUser(c); user != nil {
		res["UserInfo"] = user.ToSession()
	} else if session.Get(sessionUserKey) != nil {
		session.Delete(sessionUserKey)
	}

	// 读取后即清除
	res["FlashMessages"] = session.Flashes(flashMessage)
	res["FlashErrors"] = session.Flashes(flashError)
	_ = session.Save()

	for k, v := range data {
		res[k] = v
	}
	return res
}

func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	c.HTML(http.StatusOK, name, h.RenderData(c, data))
}

// flash 写入一次性提示
func (h *Handler) flash(c *gin.Context, kind, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, kind)
	if err := session.Save(); err != nil {
		logger.Warn("保存 session 失败", zap.Error(err))
	}
}

func (h *Handler) redirectWith(c *gin.Context, kind, msg, to string) {
	h.flash(c, kind, msg)
	c.Redirect(http.StatusFound, to)
}

// renderError 渲染错误页
func (h *Handler) renderError(c *gin.Context, code int, msg string) {
	if utils.WantsJSON(c) {
		utils.AbortError(c, code, msg)
		return
	}
	c.Abort()
	c.HTML(code, "error.html", h.RenderData(c, gin.H{"Title": msg, "Code": code, "Message": msg}))
}

func (h *Handler) notFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "资源不存在")
}

// serverError 记录错误并返回 500
func (h *Handler) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	logger.Error("请求处理失败", zap.String("path", c.Request.URL.Path), zap.Error(err))
	h.renderError(c, http.StatusInternalServerError, "服务器内部错误")
}

// writeFailed 冲突类错误提示后跳转，其余按 500 处理
func (h *Handler) writeFailed(c *gin.Context, err error, back string) {
	if msg := service.ConflictMessage(err); msg != "" {
		h.redirectWith(c, flashError, msg, back)
		return
	}
	if errors.Is(err, service.ErrMovieNotFound) {
		h.notFound(c)
		return
	}
	h.serverError(c, err)
}

// NoRoute 未匹配的路由
func (h *Handler) NoRoute(c *gin.Context) {
	h.notFound(c)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	utils.Success(c, gin.H{"status": "ok"})
}

func (h *Handler) perPage() int {
	return h.Config.PerPage
}

// pageParam 读取 ?page=，非法值按第一页处理
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func actor(c *gin.Context) *service.Actor {
	return &service.Actor{UserID: middleware.GetUserID(c), IP: c.ClientIP()}
}

// uploadedFiles 收集上传的文件，未上传的字段忽略
func uploadedFiles(c *gin.Context, fields ...string) map[string]*multipart.FileHeader {
	files := make(map[string]*multipart.FileHeader, len(fields))
	for _, field := range fields {
		if fh, err := c.FormFile(field); err == nil && fh.Size > 0 {
			files[field] = fh
		}
	}
	return files
}

// bindForm 绑定并校验表单，失败时返回字段错误
func bindForm(c *gin.Context, form interface{}) dto.FieldErrors {
	if err := c.ShouldBind(form); err != nil {
		return dto.Errors(form, err)
	}
	return nil
}

// safeNext 只允许站内跳转
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
