package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/middleware"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/service"
)

// ==================== 认证页面 ====================

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, "login.html", gin.H{
		"Title": "登录",
		"Next":  safeNext(c.Query("next")),
		"Form":  &dto.LoginForm{},
	})
}

// Login 登录处理，管理员跳转到后台
func (h *Handler) Login(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if next == "" {
		next = safeNext(c.PostForm("next"))
	}

	var form dto.LoginForm
	if errs := bindForm(c, &form); errs != nil {
		h.render(c, "login.html", gin.H{"Title": "登录", "Next": next, "Form": &form, "FieldErrors": errs})
		return
	}

	user, err := h.Services.Auth.Login(form.Email, form.Password, c.ClientIP())
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.redirectWith(c, flashError, err.Error(), c.Request.URL.RequestURI())
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	if err := h.signIn(c, user); err != nil {
		h.serverError(c, err)
		return
	}

	switch {
	case user.Role.IsAdmin():
		next = "/admin"
	case next == "":
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// signIn 写入 JWT Cookie 和 Session 用户信息
func (h *Handler) signIn(c *gin.Context, user *model.User) error {
	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		return err
	}
	middleware.SetTokenCookie(c, token, h.Config.JWTExpiry)

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ToSession())
	return session.Save()
}

func (h *Handler) signOut(c *gin.Context) {
	middleware.ClearTokenCookie(c)

	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	_ = session.Save()
}

// RegisterPage 注册页面
func (h *Handler) RegisterPage(c *gin.Context) {
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, "register.html", gin.H{"Title": "注册", "Form": &dto.RegisterForm{}})
}

// Register 注册处理
func (h *Handler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if errs := bindForm(c, &form); errs != nil {
		h.render(c, "register.html", gin.H{"Title": "注册", "Form": &form, "FieldErrors": errs})
		return
	}

	_, _, err := h.Services.Auth.Register(c.Request.Context(), service.Account{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	})
	if err != nil {
		h.writeFailed(c, err, "/register")
		return
	}

	h.redirectWith(c, flashMessage, "注册成功，请登录", "/login")
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	h.signOut(c)
	c.Redirect(http.StatusFound, "/login")
}

// ChangePasswordPage 修改密码页面
func (h *Handler) ChangePasswordPage(c *gin.Context) {
	h.render(c, "change_password.html", gin.H{"Title": "修改密码", "Form": &dto.ChangePasswordForm{}})
}

// ChangePassword 修改密码，成功后需要重新登录
func (h *Handler) ChangePassword(c *gin.Context) {
	var form dto.ChangePasswordForm
	if errs := bindForm(c, &form); errs != nil {
		h.render(c, "change_password.html", gin.H{"Title": "修改密码", "Form": &form, "FieldErrors": errs})
		return
	}

	err := h.Services.Auth.ChangePassword(middleware.GetUserID(c), form.OldPassword, form.NewPassword)
	switch {
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrSamePassword),
		errors.Is(err, service.ErrPasswordLength):
		h.redirectWith(c, flashError, err.Error(), "/change_password")
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	h.signOut(c)
	h.redirectWith(c, flashMessage, "修改密码成功，请重新登录", "/login")
}
