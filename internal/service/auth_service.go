package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/pkg/logger"
	"go.uber.org/zap"
)

// AuthService 注册、登录和密码管理
type AuthService struct {
	repos *repository.Repositories
	users *Lifecycle[model.User]
}

// NewAuthService 创建认证服务
func NewAuthService(repos *repository.Repositories, users *Lifecycle[model.User]) *AuthService {
	return &AuthService{repos: repos, users: users}
}

// Account 新账号信息
type Account struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register 注册普通用户
func (s *AuthService) Register(ctx context.Context, acc Account) (*model.User, string, error) {
	return s.create(ctx, acc, model.RoleUser, nil)
}

// AddAdmin 超级管理员创建管理员账号
func (s *AuthService) AddAdmin(ctx context.Context, acc Account, role model.RoleLevel, actor *Actor) (*model.User, string, error) {
	if !role.IsAdmin() {
		return nil, "", ErrInvalidRole
	}
	return s.create(ctx, acc, role, actor)
}

func (s *AuthService) create(ctx context.Context, acc Account, role model.RoleLevel, actor *Actor) (*model.User, string, error) {
	if err := checkPasswordLength(acc.Password); err != nil {
		return nil, "", err
	}

	user := &model.User{}
	if err := user.SetPassword(acc.Password); err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	msg, err := s.users.Add(ctx, user, Input[model.User]{
		Apply: func(u *model.User) {
			u.Name = acc.Name
			u.Email = acc.Email
			u.Phone = acc.Phone
			u.Role = role
		},
		Actor: actor,
	})
	if err != nil {
		return nil, "", err
	}
	return user, msg, nil
}

// Login 校验邮箱和密码，管理员写入管理员登录日志，普通用户写入用户登录日志
func (s *AuthService) Login(email, password, ip string) (*model.User, error) {
	user, err := s.repos.User.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if user.Role.IsAdmin() {
		err = s.repos.Log.AddAdminLog(user.ID, ip)
	} else {
		err = s.repos.Log.AddUserLog(user.ID, ip)
	}
	if err != nil {
		logger.Warn("写入登录日志失败", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

// ChangePassword 修改密码，失败时原密码保持不变
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}

	user, err := s.repos.User.FindActive(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if oldPassword == newPassword {
		return ErrSamePassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repos.User.UpdatePassword(user.ID, user.PasswordHash)
}

// SetRole 修改用户角色
func (s *AuthService) SetRole(ctx context.Context, user *model.User, role model.RoleLevel, actor *Actor) (string, error) {
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return s.users.Update(ctx, user, Input[model.User]{
		Apply: func(u *model.User) { u.Role = role },
		Actor: actor,
	})
}

func checkPasswordLength(password string) error {
	if n := utf8.RuneCountInString(password); n < 6 || n > 32 {
		return ErrPasswordLength
	}
	return nil
}
