package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesite/internal/dto"
	"github.com/user/moviesite/internal/service"
)

// Resource 后台实体的列表、添加、编辑、删除页面
// T 为实体，F 为对应的表单
type Resource[T any, F any] struct {
	h         *Handler
	base      string
	title     string
	template  string
	lifecycle *service.Lifecycle[T]

	find  func(id uint) (*T, error)
	list  func(page, perPage int) (interface{}, error)
	apply func(*F) func(*T)
	fill  func(*T) *F
	// required 添加时必须上传的文件字段及提示
	required map[string]string
	media    []string
	// extra 表单页需要的附加数据，如标签和权限列表
	extra func() (gin.H, error)
}

// List 分页列表
func (r *Resource[T, F]) List(c *gin.Context) {
	page, err := r.list(pageParam(c), r.h.perPage())
	if err != nil {
		r.h.serverError(c, err)
		return
	}
	r.h.render(c, r.template+"_list.html", gin.H{"Title": r.title + "列表", "Page": page})
}

// AddPage 添加页面
func (r *Resource[T, F]) AddPage(c *gin.Context) {
	r.renderForm(c, new(F), nil, nil)
}

// Add 添加
func (r *Resource[T, F]) Add(c *gin.Context) {
	form := new(F)
	errs := bindForm(c, form)
	files := uploadedFiles(c, r.media...)
	for field, msg := range r.required {
		if files[field] == nil {
			if errs == nil {
				errs = dto.FieldErrors{}
			}
			errs[field] = msg
		}
	}
	if errs != nil {
		r.renderForm(c, form, nil, errs)
		return
	}

	msg, err := r.lifecycle.Add(c.Request.Context(), new(T), service.Input[T]{
		Apply: r.apply(form),
		Files: files,
		Actor: actor(c),
	})
	if err != nil {
		r.h.writeFailed(c, err, r.base+"/add")
		return
	}
	r.h.redirectWith(c, flashMessage, msg, r.base+"/list")
}

// EditPage 编辑页面
func (r *Resource[T, F]) EditPage(c *gin.Context) {
	entity, ok := r.load(c)
	if !ok {
		return
	}
	r.renderForm(c, r.fill(entity), entity, nil)
}

// Edit 编辑，未上传的文件保持不变
func (r *Resource[T, F]) Edit(c *gin.Context) {
	entity, ok := r.load(c)
	if !ok {
		return
	}

	form := new(F)
	if errs := bindForm(c, form); errs != nil {
		r.renderForm(c, form, entity, errs)
		return
	}

	msg, err := r.lifecycle.Update(c.Request.Context(), entity, service.Input[T]{
		Apply: r.apply(form),
		Files: uploadedFiles(c, r.media...),
		Actor: actor(c),
	})
	if err != nil {
		r.h.writeFailed(c, err, fmt.Sprintf("%s/edit/%s", r.base, c.Param("id")))
		return
	}
	r.h.redirectWith(c, flashMessage, msg, r.base+"/list")
}

// Delete 软删除
func (r *Resource[T, F]) Delete(c *gin.Context) {
	entity, ok := r.load(c)
	if !ok {
		return
	}

	msg, err := r.lifecycle.Delete(c.Request.Context(), entity, actor(c))
	if err != nil {
		r.h.writeFailed(c, err, r.base+"/list")
		return
	}
	r.h.redirectWith(c, flashMessage, msg, r.base+"/list")
}

// load 读取路径中的 ID 对应的有效实体，不存在时返回 404
func (r *Resource[T, F]) load(c *gin.Context) (*T, bool) {
	id, ok := idParam(c)
	if !ok {
		r.h.notFound(c)
		return nil, false
	}
	entity, err := r.find(id)
	if err != nil {
		r.h.serverError(c, err)
		return nil, false
	}
	if entity == nil {
		r.h.notFound(c)
		return nil, false
	}
	return entity, true
}

func (r *Resource[T, F]) renderForm(c *gin.Context, form *F, entity *T, errs dto.FieldErrors) {
	data := gin.H{
		"Form":        form,
		"FieldErrors": errs,
		"Entity":      entity,
	}
	if entity == nil {
		data["Title"] = "添加" + r.title
		data["Action"] = r.base + "/add"
	} else {
		data["Title"] = "编辑" + r.title
		data["Action"] = fmt.Sprintf("%s/edit/%s", r.base, c.Param("id"))
	}

	if r.extra != nil {
		more, err := r.extra()
		if err != nil {
			r.h.serverError(c, err)
			return
		}
		for k, v := range more {
			data[k] = v
		}
	}

	code := http.StatusOK
	if errs != nil {
		code = http.StatusUnprocessableEntity
	}
	c.HTML(code, r.template+"_form.html", r.h.RenderData(c, data))
}
