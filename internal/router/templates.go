package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/storage"
)

const (
	frontLayout = "layouts/base.html"
	adminLayout = "layouts/admin.html"
)

// LoadTemplates 为每个页面组合布局、公共片段和页面本身
// pages/ 下的页面使用前台布局，pages/admin/ 下的页面使用后台布局
func LoadTemplates(fsys fs.FS, funcMap template.FuncMap) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, err
	}

	add := func(layout, pattern string) error {
		pages, err := fs.Glob(fsys, pattern)
		if err != nil {
			return err
		}
		for _, page := range pages {
			files := append([]string{layout}, partials...)
			files = append(files, page)
			tmpl, err := template.New(path.Base(layout)).Funcs(funcMap).ParseFS(fsys, files...)
			if err != nil {
				return fmt.Errorf("解析模板 %s 失败: %w", page, err)
			}
			r.Add(path.Base(page), tmpl)
		}
		return nil
	}

	if err := add(frontLayout, "pages/*.html"); err != nil {
		return nil, err
	}
	if err := add(adminLayout, "pages/admin/*.html"); err != nil {
		return nil, err
	}
	return r, nil
}

// FuncMap 模板函数
func FuncMap(store storage.Store) template.FuncMap {
	return template.FuncMap{
		"media": func(key string) string {
			if key == "" {
				return ""
			}
			return store.URL(key)
		},
		"datetime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"pageURL":    pageURL,
		"fieldError": fieldError,
		"seq": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i + 1
			}
			return s
		},
		"hasID": func(ids []uint, id uint) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
		"isAdmin": func(role model.RoleLevel) bool {
			return role.IsAdmin()
		},
		"sel": func(a, b interface{}) template.HTMLAttr {
			if fmt.Sprint(a) == fmt.Sprint(b) {
				return "selected"
			}
			return ""
		},
		"dict": func(values ...interface{}) map[string]interface{} {
			m := make(map[string]interface{}, len(values)/2)
			for i := 0; i+1 < len(values); i += 2 {
				if key, ok := values[i].(string); ok {
					m[key] = values[i+1]
				}
			}
			return m
		},
	}
}

// pageURL 保留当前查询参数，只替换页码
func pageURL(u *url.URL, page int) string {
	if u == nil {
		return "?page=" + strconv.Itoa(page)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	return u.Path + "?" + q.Encode()
}

// fieldError 读取表单字段的校验提示，页面未传 FieldErrors 时返回空
func fieldError(errs interface{}, field string) string {
	switch e := errs.(type) {
	case dto.FieldErrors:
		return e[field]
	case map[string]string:
		return e[field]
	}
	return ""
}
