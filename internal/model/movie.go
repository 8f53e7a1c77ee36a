package model

import (
	"time"
)

// Tag 电影标签
type Tag struct {
	Base
	Name string `json:"name" gorm:"size:50;not null;index"`
}

// Movie 电影
type Movie struct {
	Base
	Title       string    `json:"title" gorm:"size:255;not null;index"`
	URL         string    `json:"url" gorm:"size:255"`  // 视频文件
	Logo        string    `json:"logo" gorm:"size:255"` // 封面
	Intro       string    `json:"intro" gorm:"type:text"`
	Star        int       `json:"star" gorm:"not null;default:1;index"`
	PlayNum     int64     `json:"play_num" gorm:"not null;default:0"`
	CommentNum  int64     `json:"comment_num" gorm:"not null;default:0"`
	TagID       *uint     `json:"tag_id" gorm:"index"`
	Tag         *Tag      `json:"tag,omitempty"`
	Area        string    `json:"area" gorm:"size:255"`
	Length      string    `json:"length" gorm:"size:100"`
	ReleaseTime time.Time `json:"release_time" gorm:"type:date"`
}

// Preview 电影预告
type Preview struct {
	Base
	Title string `json:"title" gorm:"size:255;not null;index"`
	Logo  string `json:"logo" gorm:"size:255"`
}
