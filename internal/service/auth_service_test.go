package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/service"
)

func registerUser(t *testing.T, e *env, name, email string) *model.User {
	t.Helper()
	user, _, err := e.svc.Auth.Register(context.Background(), service.Account{
		Name:     name,
		Email:    email,
		Phone:    "",
		Password: "123asd",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	user := registerUser(t, e, "ding1", "ding@example.com")
	assert.Equal(t, model.RoleUser, user.Role)

	_, _, err := e.svc.Auth.Register(context.Background(), service.Account{
		Name: "ding2", Email: "ding@example.com", Password: "123asd",
	})
	assert.Equal(t, "邮箱已经存在", service.ConflictMessage(err))

	_, err = e.svc.Auth.Login("ding@example.com", "wrong-pass", "127.0.0.1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = e.svc.Auth.Login("nobody@example.com", "123asd", "127.0.0.1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	logged, err := e.svc.Auth.Login("ding@example.com", "123asd", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	logs, err := e.repos.Log.ListUserLogs(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), logs.Total)
}

func TestAdminLoginWritesAdminLog(t *testing.T) {
	e := newEnv(t)
	admin, _, err := e.svc.Auth.AddAdmin(context.Background(), service.Account{
		Name: "admin", Email: "admin@example.com", Password: "123asd",
	}, model.RoleTagAdmin, &service.Actor{UserID: 1, IP: "127.0.0.1"})
	require.NoError(t, err)

	_, err = e.svc.Auth.Login("admin@example.com", "123asd", "127.0.0.1")
	require.NoError(t, err)

	adminLogs, err := e.repos.Log.ListAdminLogs(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adminLogs.Total)
	assert.Equal(t, admin.ID, adminLogs.Items[0].UserID)

	userLogs, err := e.repos.Log.ListUserLogs(0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), userLogs.Total)

	_, _, err = e.svc.Auth.AddAdmin(context.Background(), service.Account{
		Name: "plain", Email: "plain@example.com", Password: "123asd",
	}, model.RoleUser, nil)
	assert.ErrorIs(t, err, service.ErrInvalidRole)
}

func TestSoftDeletedUserCannotLogin(t *testing.T) {
	e := newEnv(t)
	user := registerUser(t, e, "gone", "gone@example.com")

	_, err := e.svc.Users.Delete(context.Background(), user, nil)
	require.NoError(t, err)

	_, err = e.svc.Auth.Login("gone@example.com", "123asd", "127.0.0.1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t)
	user := registerUser(t, e, "ding1", "ding@example.com")

	assert.ErrorIs(t, e.svc.Auth.ChangePassword(user.ID, "123asd", "123asd"), service.ErrSamePassword)
	assert.ErrorIs(t, e.svc.Auth.ChangePassword(user.ID, "bad-old", "654321"), service.ErrWrongPassword)
	assert.ErrorIs(t, e.svc.Auth.ChangePassword(user.ID, "123asd", "123"), service.ErrPasswordLength)

	// 失败时密码不变
	stored, err := e.repos.User.FindActive(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)

	require.NoError(t, e.svc.Auth.ChangePassword(user.ID, "123asd", "654321"))
	_, err = e.svc.Auth.Login("ding@example.com", "654321", "127.0.0.1")
	assert.NoError(t, err)
	_, err = e.svc.Auth.Login("ding@example.com", "123asd", "127.0.0.1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestSetRole(t *testing.T) {
	e := newEnv(t)
	user := registerUser(t, e, "ding1", "ding@example.com")

	_, err := e.svc.Auth.SetRole(context.Background(), user, model.RoleLevel(42), nil)
	assert.ErrorIs(t, err, service.ErrInvalidRole)

	_, err = e.svc.Auth.SetRole(context.Background(), user, model.RoleMovieAdmin, &service.Actor{UserID: 1})
	require.NoError(t, err)

	stored, err := e.repos.User.FindActive(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMovieAdmin, stored.Role)
}
