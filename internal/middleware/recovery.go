package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/utils"
	"github.com/user/moviesite/pkg/logger"
	"go.uber.org/zap"
)

// Recovery 捕获 panic 并返回 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				abortWithPage(c, http.StatusInternalServerError, "服务器内部错误")
			}
		}()

		c.Next()
	}
}

// abortWithPage JSON 请求返回 JSON，页面请求渲染错误页
func abortWithPage(c *gin.Context, code int, message string) {
	if utils.WantsJSON(c) {
		utils.AbortError(c, code, message)
		return
	}
	c.Abort()
	c.HTML(code, "error.html", gin.H{"Title": message, "Path": c.Request.URL.Path, "Code": code, "Message": message})
}
