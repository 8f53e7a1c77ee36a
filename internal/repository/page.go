package repository

import (
	"gorm.io/gorm"
)

// Page 分页结果
type Page[T any] struct {
	Items   []*T
	Page    int
	PerPage int
	Total   int64
}

// Pages 总页数
func (p *Page[T]) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// HasPrev 是否有上一页
func (p *Page[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext 是否有下一页
func (p *Page[T]) HasNext() bool {
	return p.Page < p.Pages()
}

// PrevNum 上一页页码
func (p *Page[T]) PrevNum() int {
	return p.Page - 1
}

// NextNum 下一页页码
func (p *Page[T]) NextNum() int {
	return p.Page + 1
}

// Paginate 对查询分页，order 为空时保留查询已有的排序
// 预加载只作用于列表查询，不参与计数
func Paginate[T any](q *gorm.DB, page, perPage int, order string, preloads ...string) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]*T, 0, perPage)
	list := q.Session(&gorm.Session{})
	if order != "" {
		list = list.Order(order)
	}
	for _, p := range preloads {
		list = list.Preload(p)
	}
	if err := list.Limit(perPage).Offset((page - 1) * perPage).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}
