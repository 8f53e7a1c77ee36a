package model

// UserLog 用户登录日志
type UserLog struct {
	Base
	UserID uint   `json:"user_id" gorm:"not null;index"`
	User   *User  `json:"user,omitempty"`
	IP     string `json:"ip" gorm:"size:100"`
}

// AdminLog 管理员登录日志
type AdminLog struct {
	Base
	UserID uint   `json:"user_id" gorm:"not null;index"`
	User   *User  `json:"user,omitempty"`
	IP     string `json:"ip" gorm:"size:100"`
}

// OpLog 管理员操作日志
type OpLog struct {
	Base
	UserID uint   `json:"user_id" gorm:"not null;index"`
	User   *User  `json:"user,omitempty"`
	IP     string `json:"ip" gorm:"size:100"`
	Reason string `json:"reason" gorm:"size:600"`
}
