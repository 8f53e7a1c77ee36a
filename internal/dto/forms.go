package dto

import (
	"strings"
	"time"

	"github.com/user/moviesite/internal/model"
)

// DateLayout 上映日期格式
const DateLayout = "2006-01-02"

// LoginForm 登录
type LoginForm struct {
	Email    string `form:"email" binding:"required,email" msg:"请输入有效的邮箱！"`
	Password string `form:"password" binding:"required" msg:"请输入密码！"`
}

// RegisterForm 注册
type RegisterForm struct {
	Name       string `form:"name" binding:"required,min=5,max=20" msg:"昵称应在5-20个字符之间"`
	Email      string `form:"email" binding:"required,email,min=8,max=64" msg:"邮箱应在8-64个字符之间"`
	Phone      string `form:"phone" binding:"required,phone" msg:"请输入11位手机号"`
	Password   string `form:"password" binding:"required,min=6,max=32" msg:"密码长度为:6-32位字符"`
	RePassword string `form:"repassword" binding:"required,eqfield=Password" msg:"两次输入的密码不匹配"`
}

// UserInfoForm 会员资料，头像可选
type UserInfoForm struct {
	Name  string `form:"name" binding:"required,min=5,max=20" msg:"昵称应在5-20个字符之间"`
	Email string `form:"email" binding:"required,email,min=8,max=64" msg:"邮箱应在8-64个字符之间"`
	Phone string `form:"phone" binding:"required,phone" msg:"请输入11位手机号"`
	Intro string `form:"intro" binding:"required" msg:"请输入简介！"`
}

func (f *UserInfoForm) Apply(u *model.User) {
	u.Name = strings.TrimSpace(f.Name)
	u.Email = strings.TrimSpace(f.Email)
	u.Phone = strings.TrimSpace(f.Phone)
	u.Intro = f.Intro
}

// ChangePasswordForm 修改密码
type ChangePasswordForm struct {
	OldPassword string `form:"old_password" binding:"required" msg:"请输入旧密码！"`
	NewPassword string `form:"new_password" binding:"required,min=6,max=32" msg:"密码长度为:6-32位字符"`
}

// CommentForm 评论
type CommentForm struct {
	Content string `form:"content" binding:"required" msg:"请输入内容！"`
}

// TagForm 标签
type TagForm struct {
	Name string `form:"name" binding:"required,max=50" msg:"请输入标签！"`
}

func (f *TagForm) Apply(t *model.Tag) {
	t.Name = strings.TrimSpace(f.Name)
}

// MovieForm 电影，视频和封面在添加时必须上传
type MovieForm struct {
	Title       string `form:"title" binding:"required,max=255" msg:"请输入片名！"`
	Intro       string `form:"intro" binding:"required" msg:"请输入简介！"`
	Star        int    `form:"star" binding:"required,min=1,max=5" msg:"请选择星级！"`
	TagID       uint   `form:"tag_id" binding:"required" msg:"请选择标签！"`
	Area        string `form:"area" binding:"required,max=255" msg:"请输入地区！"`
	Length      string `form:"length" binding:"required,max=100" msg:"请输入片长！"`
	ReleaseTime string `form:"release_time" binding:"required,datetime=2006-01-02" msg:"请选择上映日期！"`
}

func (f *MovieForm) Apply(m *model.Movie) {
	m.Title = strings.TrimSpace(f.Title)
	m.Intro = f.Intro
	m.Star = f.Star
	tagID := f.TagID
	m.TagID = &tagID
	m.Area = strings.TrimSpace(f.Area)
	m.Length = strings.TrimSpace(f.Length)
	if t, err := time.Parse(DateLayout, f.ReleaseTime); err == nil {
		m.ReleaseTime = t
	}
}

// FillMovie 编辑时回填表单
func FillMovie(m *model.Movie) *MovieForm {
	f := &MovieForm{
		Title:  m.Title,
		Intro:  m.Intro,
		Star:   m.Star,
		Area:   m.Area,
		Length: m.Length,
	}
	if m.TagID != nil {
		f.TagID = *m.TagID
	}
	if !m.ReleaseTime.IsZero() {
		f.ReleaseTime = m.ReleaseTime.Format(DateLayout)
	}
	return f
}

// PreviewForm 电影预告
type PreviewForm struct {
	Title string `form:"title" binding:"required,max=255" msg:"请输入预告标题！"`
}

func (f *PreviewForm) Apply(p *model.Preview) {
	p.Title = strings.TrimSpace(f.Title)
}

// PermissionForm 权限
type PermissionForm struct {
	Name string `form:"name" binding:"required,max=100" msg:"请输入权限名称！"`
	URL  string `form:"url" binding:"required,startswith=/,max=255" msg:"请输入以 / 开头的权限地址！"`
}

func (f *PermissionForm) Apply(p *model.Permission) {
	p.Name = strings.TrimSpace(f.Name)
	p.URL = strings.TrimSpace(f.URL)
}

// RoleForm 角色
type RoleForm struct {
	Name          string `form:"name" binding:"required,max=100" msg:"请输入角色名称！"`
	PermissionIDs []uint `form:"permission_ids"`
}

func (f *RoleForm) Apply(r *model.Role) {
	r.Name = strings.TrimSpace(f.Name)
	r.Permissions = make([]*model.Permission, 0, len(f.PermissionIDs))
	for _, id := range f.PermissionIDs {
		r.Permissions = append(r.Permissions, &model.Permission{Base: model.Base{ID: id}})
	}
}

// AdminForm 添加管理员
type AdminForm struct {
	Name     string          `form:"name" binding:"required,min=2,max=20" msg:"昵称应在2-20个字符之间"`
	Email    string          `form:"email" binding:"required,email,max=64" msg:"请输入有效的邮箱！"`
	Phone    string          `form:"phone" binding:"omitempty,phone" msg:"请输入11位手机号"`
	Password string          `form:"password" binding:"required,min=6,max=32" msg:"密码长度为:6-32位字符"`
	Role     model.RoleLevel `form:"role" binding:"required" msg:"请选择角色！"`
}

// UserRoleForm 修改用户角色
type UserRoleForm struct {
	Role model.RoleLevel `form:"role"`
}
