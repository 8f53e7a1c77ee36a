// Package dto 表单结构、校验规则和错误提示
package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// RegisterValidators 在 gin 的校验引擎上注册自定义规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// FieldErrors 表单字段名到提示消息
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, m := range e {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}

// Errors 把绑定错误转换为按字段展示的消息，消息取自字段的 msg 标签
func Errors(form interface{}, err error) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = "表单数据有误"
		return out
	}

	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for _, fe := range ve {
		name, msg := fe.Field(), fe.Error()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := strings.Split(f.Tag.Get("form"), ",")[0]; tag != "" {
				name = tag
			}
			if m := f.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		if _, exists := out[name]; !exists {
			out[name] = msg
		}
	}
	return out
}
