package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/service"
)

func addMovie(t *testing.T, e *env, title string) *model.Movie {
	t.Helper()
	movie := &model.Movie{}
	_, err := e.svc.Movies.Add(context.Background(), movie, service.Input[model.Movie]{Apply: func(m *model.Movie) {
		m.Title = title
		m.Star = 3
	}})
	require.NoError(t, err)
	return movie
}

func TestFavoriteIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := registerUser(t, e, "ding1", "ding@example.com")
	movie := addMovie(t, e, "流浪地球")

	added, err := e.svc.Favorites.Add(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = e.svc.Favorites.Add(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	assert.False(t, added)

	page, err := e.svc.Favorites.List(user.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "流浪地球", page.Items[0].Movie.Title)

	_, err = e.svc.Favorites.Add(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrMovieNotFound)
}

func TestCommentIncrementsCounter(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := registerUser(t, e, "ding1", "ding@example.com")
	movie := addMovie(t, e, "哪吒")

	msg, err := e.svc.Catalog.Comment(ctx, user.ID, movie.ID, "<p>很<b>好看</b></p>")
	require.NoError(t, err)
	assert.Equal(t, "添加评论成功", msg)

	_, err = e.svc.Catalog.Comment(ctx, user.ID, movie.ID, "<p> </p>")
	assert.True(t, service.IsConflict(err))

	played, comments, err := e.svc.Catalog.Play(movie.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), played.CommentNum)
	assert.Equal(t, int64(1), played.PlayNum)
	require.Len(t, comments.Items, 1)
	assert.Equal(t, "很好看", comments.Items[0].Content)
	assert.Equal(t, "ding1", comments.Items[0].User.Name)

	_, _, err = e.svc.Catalog.Play(9999, 1, 10)
	assert.ErrorIs(t, err, service.ErrMovieNotFound)
}

func TestSearchCacheClearedOnMovieWrite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	movie := addMovie(t, e, "Interstellar")

	page, err := e.svc.Catalog.Search("stellar", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = e.svc.Movies.Delete(ctx, movie, nil)
	require.NoError(t, err)

	page, err = e.svc.Catalog.Search("stellar", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestSearchCacheClearedOnTagRename(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tag := &model.Tag{}
	_, err := e.svc.Tags.Add(ctx, tag, service.Input[model.Tag]{Apply: setName("动画")})
	require.NoError(t, err)
	movie := addMovie(t, e, "千与千寻")
	_, err = e.svc.Movies.Update(ctx, movie, service.Input[model.Movie]{Apply: func(m *model.Movie) { m.TagID = &tag.ID }})
	require.NoError(t, err)

	page, err := e.svc.Catalog.Search("千与", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].Tag)
	assert.Equal(t, "动画", page.Items[0].Tag.Name)

	_, err = e.svc.Tags.Update(ctx, tag, service.Input[model.Tag]{Apply: setName("动漫")})
	require.NoError(t, err)

	page, err = e.svc.Catalog.Search("千与", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].Tag)
	assert.Equal(t, "动漫", page.Items[0].Tag.Name)
}

func TestDeletedMovieLeavesMemberLists(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := registerUser(t, e, "ding1", "ding@example.com")
	movie := addMovie(t, e, "已删除电影")

	_, err := e.svc.Favorites.Add(ctx, user.ID, movie.ID)
	require.NoError(t, err)
	_, err = e.svc.Catalog.Comment(ctx, user.ID, movie.ID, "不错")
	require.NoError(t, err)

	_, err = e.svc.Movies.Delete(ctx, movie, nil)
	require.NoError(t, err)

	favs, err := e.svc.Favorites.List(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), favs.Total)
	assert.Empty(t, favs.Items)

	comments, err := e.repos.Comment.ListByUser(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), comments.Total)
	assert.Empty(t, comments.Items)
}

func TestIndexFilters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tag := &model.Tag{}
	_, err := e.svc.Tags.Add(ctx, tag, service.Input[model.Tag]{Apply: setName("动画")})
	require.NoError(t, err)

	movie := addMovie(t, e, "大鱼海棠")
	_, err = e.svc.Movies.Update(ctx, movie, service.Input[model.Movie]{Apply: func(m *model.Movie) { m.TagID = &tag.ID }})
	require.NoError(t, err)
	addMovie(t, e, "无标签")

	page, tags, err := e.svc.Catalog.Index(repository.MovieFilter{TagID: tag.ID}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "大鱼海棠", page.Items[0].Title)
}

func TestStats(t *testing.T) {
	e := newEnv(t)
	registerUser(t, e, "ding1", "ding@example.com")
	addMovie(t, e, "一")
	addMovie(t, e, "二")

	stats, err := e.svc.Catalog.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(0), stats.Admins)
	assert.Equal(t, int64(2), stats.Movies)
	assert.Equal(t, int64(0), stats.Tags)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "hello world", service.PlainText("<div>hello <script></script>world</div>"))
	assert.Equal(t, "a < b", service.PlainText("a &lt; b"))
}
