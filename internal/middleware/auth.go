package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/utils"
)

const (
	// TokenCookie 登录凭证 Cookie 名
	TokenCookie = "token"

	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxUser   = "user"
)

// Claims JWT 声明
type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   model.RoleLevel `json:"role"`
	jwt.RegisteredClaims
}

// UserLoader 根据 ID 加载有效用户，用户不存在或已删除时返回 nil
type UserLoader func(id uint) (*model.User, error)

// RequireAuth 必须登录中间件
// Token 有效但用户已被删除时同样视为未登录，角色以数据库为准
func RequireAuth(jwtSecret string, load UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims := authenticate(c, jwtSecret, load)
		if user == nil {
			// 页面请求重定向到登录页
			if !utils.WantsJSON(c) && strings.Contains(c.GetHeader("Accept"), "text/html") {
				c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
				c.Abort()
				return
			}
			utils.Unauthorized(c, "")
			return
		}

		setUser(c, user)
		refresh(c, claims, user, jwtSecret)
		c.Next()
	}
}

// OptionalAuth 可选登录中间件（不强制要求登录）
func OptionalAuth(jwtSecret string, load UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, claims := authenticate(c, jwtSecret, load); user != nil {
			setUser(c, user)
			refresh(c, claims, user, jwtSecret)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtSecret string, load UserLoader) (*model.User, *Claims) {
	// 已由前一个中间件加载
	if user := CurrentUser(c); user != nil {
		return user, nil
	}

	claims, err := extractClaims(c, jwtSecret)
	if err != nil {
		return nil, nil
	}
	user, err := load(claims.UserID)
	if err != nil {
		_ = c.Error(err)
		return nil, nil
	}
	return user, claims
}

func setUser(c *gin.Context, user *model.User) {
	c.Set(ctxUserID, user.ID)
	c.Set(ctxRole, user.Role)
	c.Set(ctxUser, user)
}

// refresh 滑动续期：有效期消耗超过一半时签发新 Token
func refresh(c *gin.Context, claims *Claims, user *model.User, jwtSecret string) {
	if claims == nil || !shouldRefresh(claims) {
		return
	}
	expiry := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	token, err := GenerateToken(user.ID, user.Email, user.Role, jwtSecret, expiry)
	if err == nil {
		SetTokenCookie(c, token, expiry)
	}
}

// extractClaims 从 Cookie 或 Header 中提取 JWT Claims
func extractClaims(c *gin.Context, jwtSecret string) (*Claims, error) {
	var tokenString string

	if cookie, err := c.Cookie(TokenCookie); err == nil {
		tokenString = cookie
	} else {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxUserID); exists {
		return userID.(uint)
	}
	return 0
}

// GetRole 从上下文获取用户角色
func GetRole(c *gin.Context) (model.RoleLevel, bool) {
	role, exists := c.Get(ctxRole)
	if !exists {
		return model.RoleUser, false
	}
	return role.(model.RoleLevel), true
}

// CurrentUser 当前登录用户（未登录返回 nil）
func CurrentUser(c *gin.Context) *model.User {
	if user, exists := c.Get(ctxUser); exists {
		return user.(*model.User)
	}
	return nil
}

// GenerateToken 生成 JWT Token
func GenerateToken(userID uint, email string, role model.RoleLevel, jwtSecret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// SetTokenCookie 写入登录凭证
func SetTokenCookie(c *gin.Context, token string, expiry time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, int(expiry.Seconds()), "/", "", false, true)
}

// ClearTokenCookie 清除登录凭证
func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
}

// shouldRefresh 已经消耗了总有效期的 50% 以上时刷新
func shouldRefresh(claims *Claims) bool {
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return false
	}

	total := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	return time.Since(claims.IssuedAt.Time) > total/2
}
