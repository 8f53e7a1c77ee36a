package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/middleware"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/service"
)

// ==================== 公开页面 ====================

// Index 首页，支持按标签、星级筛选和按时间、播放量、评论量排序
func (h *Handler) Index(c *gin.Context) {
	filter := repository.MovieFilter{
		TagID:      uint(max(queryInt(c, "tid"), 0)),
		Star:       queryInt(c, "star"),
		Time:       queryInt(c, "time"),
		PlayNum:    queryInt(c, "play_num"),
		CommentNum: queryInt(c, "comment_num"),
	}

	movies, tags, err := h.Services.Catalog.Index(filter, pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, "index.html", gin.H{
		"Title":  "首页",
		"Tags":   tags,
		"Params": filter,
		"Page":   movies,
	})
}

// Animation 电影预告
func (h *Handler) Animation(c *gin.Context) {
	previews, err := h.Services.Catalog.Previews()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "animation.html", gin.H{"Title": "电影预告", "Previews": previews})
}

// Search 按片名搜索
func (h *Handler) Search(c *gin.Context) {
	key := c.Query("key")
	page, err := h.Services.Catalog.Search(key, pageParam(c), h.perPage())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, "search.html", gin.H{
		"Title": key + " - 搜索结果",
		"Key":   key,
		"Page":  page,
	})
}

// Play 播放页，每次访问播放量 +1
func (h *Handler) Play(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.notFound(c)
		return
	}

	movie, comments, err := h.Services.Catalog.Play(id, pageParam(c), h.perPage())
	if errors.Is(err, service.ErrMovieNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	favorited := false
	if uid := middleware.GetUserID(c); uid != 0 {
		favorited, _ = h.Repos.MovieCol.IsFavorited(uid, movie.ID)
	}
	favoriteNum, err := h.Repos.MovieCol.CountByMovie(movie.ID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, "play.html", gin.H{
		"Title":       movie.Title,
		"Movie":       movie,
		"Page":        comments,
		"Favorited":   favorited,
		"FavoriteNum": favoriteNum,
		"Form":        &dto.CommentForm{},
	})
}

// Comment 发表评论
func (h *Handler) Comment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.notFound(c)
		return
	}
	back := fmt.Sprintf("/play/%d", id)

	var form dto.CommentForm
	if errs := bindForm(c, &form); errs != nil {
		h.redirectWith(c, flashError, errs["content"], back)
		return
	}

	msg, err := h.Services.Catalog.Comment(c.Request.Context(), middleware.GetUserID(c), id, form.Content)
	if err != nil {
		h.writeFailed(c, err, back)
		return
	}
	h.redirectWith(c, flashMessage, msg, back)
}

// AddFavorite 收藏电影，返回 {"ok": 1} 表示新收藏，{"ok": 0} 表示已收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	var req struct {
		MovieID uint `form:"mid" json:"mid" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": 0, "error": "参数错误"})
		return
	}

	added, err := h.Services.Favorites.Add(c.Request.Context(), middleware.GetUserID(c), req.MovieID)
	if errors.Is(err, service.ErrMovieNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": 0, "error": err.Error()})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": 0, "error": "服务器内部错误"})
		return
	}

	ok := 0
	if added {
		ok = 1
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}
