package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CatalogService 首页、搜索、播放和评论
type CatalogService struct {
	repos    *repository.Repositories
	comments *Lifecycle[model.Comment]
	search   *utils.LRUCache[*repository.Page[model.Movie]]
	sf       singleflight.Group
}

// NewCatalogService 创建目录服务
func NewCatalogService(repos *repository.Repositories) *CatalogService {
	return &CatalogService{
		repos:  repos,
		search: utils.NewLRUCache[*repository.Page[model.Movie]](1000, 10*time.Minute),
	}
}

// Index 首页电影列表和筛选用的标签
func (s *CatalogService) Index(f repository.MovieFilter, page, perPage int) (*repository.Page[model.Movie], []*model.Tag, error) {
	tags, err := s.repos.Tag.ListAll()
	if err != nil {
		return nil, nil, err
	}
	movies, err := s.repos.Movie.List(f, page, perPage)
	if err != nil {
		return nil, nil, err
	}
	return movies, tags, nil
}

// Search 按片名搜索，结果短期缓存，电影变更时清空
func (s *CatalogService) Search(key string, page, perPage int) (*repository.Page[model.Movie], error) {
	key = strings.TrimSpace(key)
	cacheKey := fmt.Sprintf("%s|%d|%d", strings.ToLower(key), page, perPage)
	if cached, ok := s.search.Get(cacheKey); ok {
		return cached, nil
	}

	// 同一关键词的并发请求只查一次库
	val, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		result, err := s.repos.Movie.Search(key, page, perPage)
		if err != nil {
			return nil, err
		}
		s.search.Set(cacheKey, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*repository.Page[model.Movie]), nil
}

// ClearSearchCache 清空搜索缓存
func (s *CatalogService) ClearSearchCache() {
	s.search.Purge()
}

// Play 获取电影和评论，播放量 +1
func (s *CatalogService) Play(movieID uint, page, perPage int) (*model.Movie, *repository.Page[model.Comment], error) {
	movie, err := s.repos.Movie.FindWithTag(movieID)
	if err != nil {
		return nil, nil, err
	}
	if movie == nil {
		return nil, nil, ErrMovieNotFound
	}

	if err := s.repos.Movie.IncrementPlayNum(movie.ID); err != nil {
		return nil, nil, err
	}
	movie.PlayNum++

	comments, err := s.repos.Comment.ListByMovie(movie.ID, page, perPage)
	if err != nil {
		return nil, nil, err
	}
	return movie, comments, nil
}

// Comment 发表评论，内容只保留纯文本，同一事务内评论数 +1
func (s *CatalogService) Comment(ctx context.Context, userID, movieID uint, content string) (string, error) {
	movie, err := s.repos.Movie.FindActive(movieID)
	if err != nil {
		return "", err
	}
	if movie == nil {
		return "", ErrMovieNotFound
	}

	text := PlainText(content)
	if text == "" {
		return "", &ConflictError{Msg: "请输入内容！"}
	}

	return s.comments.Add(ctx, &model.Comment{}, Input[model.Comment]{
		Apply: func(c *model.Comment) {
			c.Content = text
			c.MovieID = movie.ID
			c.UserID = userID
		},
	})
}

// Previews 全部有效预告
func (s *CatalogService) Previews() ([]*model.Preview, error) {
	return s.repos.Preview.AllActive()
}

// PlainText 去掉 HTML 标签，只保留文本
func PlainText(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(doc.Text())
}

// DashboardStats 后台首页统计
type DashboardStats struct {
	Users     int64
	Admins    int64
	Movies    int64
	Tags      int64
	Previews  int64
	Comments  int64
	Favorites int64
}

// Stats 并发统计各实体的有效记录数
func (s *CatalogService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, _ := errgroup.WithContext(ctx)

	counters := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&stats.Users, s.repos.User.CountActive},
		{&stats.Admins, s.repos.User.CountAdmins},
		{&stats.Movies, s.repos.Movie.CountActive},
		{&stats.Tags, s.repos.Tag.CountActive},
		{&stats.Previews, s.repos.Preview.CountActive},
		{&stats.Comments, s.repos.Comment.CountActive},
		{&stats.Favorites, s.repos.MovieCol.CountActive},
	}
	for _, c := range counters {
		g.Go(func() error {
			n, err := c.count()
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
