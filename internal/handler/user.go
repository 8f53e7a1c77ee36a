package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/middleware"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/service"
)

// ==================== 会员中心 ====================

// UserInfoPage 会员资料
func (h *Handler) UserInfoPage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.render(c, "user_info.html", gin.H{
		"Title": "会员中心",
		"User":  user,
		"Form": &dto.UserInfoForm{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
			Intro: user.Intro,
		},
	})
}

// UpdateUserInfo 修改会员资料，头像可选
func (h *Handler) UpdateUserInfo(c *gin.Context) {
	current := middleware.CurrentUser(c)

	var form dto.UserInfoForm
	if errs := bindForm(c, &form); errs != nil {
		h.render(c, "user_info.html", gin.H{"Title": "会员中心", "User": current, "Form": &form, "FieldErrors": errs})
		return
	}

	// 修改副本，失败时不影响上下文中的用户
	user := *current
	msg, err := h.Services.Users.Update(c.Request.Context(), &user, service.Input[model.User]{
		Apply: form.Apply,
		Files: uploadedFiles(c, "avatar"),
	})
	if err != nil {
		h.writeFailed(c, err, "/user/info")
		return
	}
	h.redirectWith(c, flashMessage, msg, "/user/info")
}

// CommentList 我的评论
func (h *Handler) CommentList(c *gin.Context) {
	page, err := h.Repos.Comment.ListByUser(middleware.GetUserID(c), pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "comment_list.html", gin.H{"Title": "评论记录", "Page": page})
}

// LoginLog 我的登录日志
func (h *Handler) LoginLog(c *gin.Context) {
	page, err := h.Repos.Log.ListUserLogs(middleware.GetUserID(c), pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "login_log.html", gin.H{"Title": "登录日志", "Page": page})
}

// FavoriteList 我的收藏
func (h *Handler) FavoriteList(c *gin.Context) {
	page, err := h.Services.Favorites.List(middleware.GetUserID(c), pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "movie_col_list.html", gin.H{"Title": "收藏电影", "Page": page})
}
