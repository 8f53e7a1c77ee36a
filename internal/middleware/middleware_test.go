package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviesite/internal/model"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func usersByID(users ...*model.User) UserLoader {
	return func(id uint) (*model.User, error) {
		for _, u := range users {
			if u.ID == id && u.Status {
				return u, nil
			}
		}
		return nil, nil
	}
}

func newEngine(load UserLoader, table RoleTable) *gin.Engine {
	r := gin.New()
	admin := r.Group("/admin", RequireAuth(testSecret, load), Authorize(table))
	admin.GET("/tag/list", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	admin.GET("/role/list", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	admin.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func request(t *testing.T, r http.Handler, path string, user *model.User, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", accept)
	if user != nil {
		token, err := GenerateToken(user.ID, user.Email, user.Role, testSecret, time.Hour)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthorizeByRole(t *testing.T) {
	plain := &model.User{Base: model.Base{ID: 1, Status: true}, Role: model.RoleUser}
	tagAdmin := &model.User{Base: model.Base{ID: 2, Status: true}, Role: model.RoleTagAdmin}
	super := &model.User{Base: model.Base{ID: 3, Status: true}, Role: model.RoleSuperAdmin}

	table := RoleTable{
		"/admin/":         AnyAdmin,
		"/admin/tag/list": {model.RoleTagAdmin},
	}
	r := newEngine(usersByID(plain, tagAdmin, super), table)

	cases := []struct {
		name string
		path string
		user *model.User
		code int
	}{
		{"plain user on tag list", "/admin/tag/list", plain, http.StatusForbidden},
		{"plain user on admin index", "/admin/", plain, http.StatusForbidden},
		{"tag admin on tag list", "/admin/tag/list", tagAdmin, http.StatusOK},
		{"tag admin on admin index", "/admin/", tagAdmin, http.StatusOK},
		{"tag admin on unlisted path", "/admin/role/list", tagAdmin, http.StatusForbidden},
		{"super admin on unlisted path", "/admin/role/list", super, http.StatusOK},
		{"anonymous", "/admin/tag/list", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := request(t, r, tc.path, tc.user, "application/json")
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	deleted := &model.User{Base: model.Base{ID: 9, Status: false}, Role: model.RoleSuperAdmin}
	r := newEngine(usersByID(deleted), RoleTable{})

	w := request(t, r, "/admin/", deleted, "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRedirectsPages(t *testing.T) {
	r := newEngine(usersByID(), RoleTable{})

	w := request(t, r, "/admin/tag/list?page=2", nil, "text/html,application/xhtml+xml")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fadmin%2Ftag%2Flist%3Fpage%3D2", w.Header().Get("Location"))
}

func TestRoleFromDatabaseWins(t *testing.T) {
	// Token 签发时是超级管理员，之后被降级
	demoted := &model.User{Base: model.Base{ID: 5, Status: true}, Role: model.RoleUser}
	r := newEngine(usersByID(demoted), RoleTable{})

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.Header.Set("Accept", "application/json")
	token, err := GenerateToken(5, "", model.RoleSuperAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShouldRefresh(t *testing.T) {
	token, err := GenerateToken(1, "a@b.c", model.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	claims, err := extractClaims(c, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.False(t, shouldRefresh(claims))

	_, err = extractClaims(c, "other-secret")
	assert.Error(t, err)
}
