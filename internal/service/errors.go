package service

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("账号密码不匹配")
	ErrWrongPassword      = errors.New("旧密码错误")
	ErrSamePassword       = errors.New("新密码不能与旧密码相同")
	ErrPasswordLength     = errors.New("密码长度为:6-32位字符")
	ErrMovieNotFound      = errors.New("电影不存在")
	ErrInvalidRole        = errors.New("无效的角色")
)

// ConflictError 业务规则冲突（名称重复、重复收藏等），消息直接展示给用户
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

// IsConflict 判断是否为业务冲突
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ConflictMessage 返回冲突消息，非冲突错误返回空串
func ConflictMessage(err error) string {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Msg
	}
	return ""
}
