package model

import (
	"golang.org/x/crypto/bcrypt"
)

// User 用户模型
type User struct {
	Base
	Name         string    `json:"name" gorm:"size:20;not null;index"`
	Email        string    `json:"email" gorm:"size:64;not null;index"`
	Phone        string    `json:"phone" gorm:"size:11;index"`
	PasswordHash string    `json:"-" gorm:"column:password;size:128;not null"`
	Role         RoleLevel `json:"role" gorm:"not null;default:0"`
	Intro        string    `json:"intro" gorm:"type:text"`
	Avatar       string    `json:"avatar" gorm:"size:255"`
	Confirmed    bool      `json:"confirmed" gorm:"not null;default:false"`
}

// SetPassword 生成并保存密码哈希
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID    uint
	Email string
	Name  string
	Role  RoleLevel
}

// ToSession 转换为 Session 用户信息
func (u *User) ToSession() SessionUser {
	return SessionUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
