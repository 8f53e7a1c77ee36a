package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviesite/internal/model"
)

func init() {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

func TestRegisterFormErrors(t *testing.T) {
	form := &RegisterForm{
		Name:       "ding1",
		Email:      "ding@example.com",
		Phone:      "12345",
		Password:   "123asd",
		RePassword: "123asf",
	}
	err := binding.Validator.ValidateStruct(form)
	require.Error(t, err)

	errs := Errors(form, err)
	assert.Equal(t, "请输入11位手机号", errs["phone"])
	assert.Equal(t, "两次输入的密码不匹配", errs["repassword"])
	assert.NotContains(t, errs, "email")
}

func TestRegisterFormValid(t *testing.T) {
	form := &RegisterForm{
		Name:       "ding1",
		Email:      "ding@example.com",
		Phone:      "13800000000",
		Password:   "123asd",
		RePassword: "123asd",
	}
	assert.NoError(t, binding.Validator.ValidateStruct(form))
}

func TestMovieFormApply(t *testing.T) {
	form := &MovieForm{
		Title:       " 流浪地球 ",
		Intro:       "简介",
		Star:        5,
		TagID:       3,
		Area:        "中国",
		Length:      "125",
		ReleaseTime: "2019-02-05",
	}
	require.NoError(t, binding.Validator.ValidateStruct(form))

	m := &model.Movie{}
	form.Apply(m)
	assert.Equal(t, "流浪地球", m.Title)
	require.NotNil(t, m.TagID)
	assert.Equal(t, uint(3), *m.TagID)
	assert.Equal(t, "2019-02-05", m.ReleaseTime.Format(DateLayout))

	assert.Equal(t, form.ReleaseTime, FillMovie(m).ReleaseTime)

	form.ReleaseTime = "05/02/2019"
	errs := Errors(form, binding.Validator.ValidateStruct(form))
	assert.Equal(t, "请选择上映日期！", errs["release_time"])
}

func TestRoleFormApply(t *testing.T) {
	r := &model.Role{}
	(&RoleForm{Name: "编辑", PermissionIDs: []uint{1, 2}}).Apply(r)
	assert.Equal(t, []uint{1, 2}, r.PermissionIDs())
}
