package service

import (
	"context"

	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
)

// FavoriteService 电影收藏
type FavoriteService struct {
	repos *repository.Repositories
	cols  *Lifecycle[model.MovieCol]
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(repos *repository.Repositories, cols *Lifecycle[model.MovieCol]) *FavoriteService {
	return &FavoriteService{repos: repos, cols: cols}
}

// Add 收藏电影，已收藏时返回 false，不重复插入
func (s *FavoriteService) Add(ctx context.Context, userID, movieID uint) (bool, error) {
	movie, err := s.repos.Movie.FindActive(movieID)
	if err != nil {
		return false, err
	}
	if movie == nil {
		return false, ErrMovieNotFound
	}

	_, err = s.cols.Add(ctx, &model.MovieCol{UserID: userID, MovieID: movieID}, Input[model.MovieCol]{})
	if err == nil {
		return true, nil
	}
	if IsConflict(err) {
		return false, nil
	}

	// 并发收藏时由唯一索引拦截
	if dup, checkErr := s.repos.MovieCol.IsFavorited(userID, movieID); checkErr == nil && dup {
		return false, nil
	}
	return false, err
}

// List 用户收藏列表
func (s *FavoriteService) List(userID uint, page, perPage int) (*repository.Page[model.MovieCol], error) {
	return s.repos.MovieCol.ListByUser(userID, page, perPage)
}
