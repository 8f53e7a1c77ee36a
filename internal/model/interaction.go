package model

// Comment 电影评论
type Comment struct {
	Base
	Content string `json:"content" gorm:"type:text;not null"`
	MovieID uint   `json:"movie_id" gorm:"not null;index"`
	Movie   *Movie `json:"movie,omitempty"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	User    *User  `json:"user,omitempty"`
}

// MovieCol 电影收藏，每个用户对同一部电影只能收藏一次
type MovieCol struct {
	Base
	UserID  uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_movie_col_user_movie"`
	MovieID uint   `json:"movie_id" gorm:"not null;uniqueIndex:idx_movie_col_user_movie"`
	Movie   *Movie `json:"movie,omitempty"`
}
