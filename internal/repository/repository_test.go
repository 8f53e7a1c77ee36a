package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/testutil"
)

func uintPtr(v uint) *uint { return &v }

func TestStoreSoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	tag := &model.Tag{Name: "科幻"}
	require.NoError(t, repository.Insert(db, tag))
	assert.True(t, tag.Status)

	found, err := repos.Tag.FindActive(tag.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	require.NoError(t, repository.SoftDelete(db, tag))

	found, err = repos.Tag.FindActive(tag.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	raw, err := repos.Tag.FindAny(tag.ID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.False(t, raw.Status)

	count, err := repos.Tag.CountActive()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestExistsActiveExcludesSelfAndDeleted(t *testing.T) {
	db := testutil.NewDB(t)

	a := &model.Tag{Name: "动作"}
	require.NoError(t, repository.Insert(db, a))

	exists, err := repository.ExistsActive[model.Tag](db, 0, "name = ?", "动作")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repository.ExistsActive[model.Tag](db, a.ID, "name = ?", "动作")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repository.SoftDelete(db, a))
	exists, err = repository.ExistsActive[model.Tag](db, 0, "name = ?", "动作")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPagination(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	for i := 0; i < 25; i++ {
		require.NoError(t, repository.Insert(db, &model.Preview{Title: "预告" + string(rune('A'+i))}))
	}

	page, err := repos.Preview.ListActive(3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.Pages())
	assert.Len(t, page.Items, 5)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())
	assert.Equal(t, 2, page.PrevNum())

	// 最新的在前
	first, err := repos.Preview.ListActive(1, 10)
	require.NoError(t, err)
	assert.Equal(t, "预告Y", first.Items[0].Title)
}

func TestMovieFilterAndSearch(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	tag := &model.Tag{Name: "爱情"}
	require.NoError(t, repository.Insert(db, tag))

	movies := []*model.Movie{
		{Title: "Alpha", Star: 5, PlayNum: 10, TagID: uintPtr(tag.ID)},
		{Title: "alphabet", Star: 3, PlayNum: 30},
		{Title: "Beta_1", Star: 5, PlayNum: 20, TagID: uintPtr(tag.ID)},
	}
	for _, m := range movies {
		require.NoError(t, repository.Insert(db, m))
	}

	page, err := repos.Movie.List(repository.MovieFilter{TagID: tag.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = repos.Movie.List(repository.MovieFilter{Star: 5, PlayNum: 1}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Beta_1", page.Items[0].Title)
	require.NotNil(t, page.Items[0].Tag)
	assert.Equal(t, "爱情", page.Items[0].Tag.Name)

	page, err = repos.Movie.Search("ALPHA", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	// 下划线按字面匹配
	page, err = repos.Movie.Search("a_1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	require.NoError(t, repos.Movie.IncrementPlayNum(movies[0].ID))
	m, err := repos.Movie.FindActive(movies[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), m.PlayNum)
}

func TestDetachMovies(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	tag := &model.Tag{Name: "战争"}
	require.NoError(t, repository.Insert(db, tag))
	movie := &model.Movie{Title: "长津湖", Star: 4, TagID: uintPtr(tag.ID)}
	require.NoError(t, repository.Insert(db, movie))

	require.NoError(t, repository.DetachMovies(db, tag.ID))

	m, err := repos.Movie.FindActive(movie.ID)
	require.NoError(t, err)
	assert.Nil(t, m.TagID)
}

func TestRolePermissions(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	p1 := &model.Permission{Name: "标签列表", URL: "/admin/tag/list"}
	p2 := &model.Permission{Name: "电影列表", URL: "/admin/movie/list"}
	require.NoError(t, repository.Insert(db, p1))
	require.NoError(t, repository.Insert(db, p2))

	role := &model.Role{Name: "编辑"}
	require.NoError(t, repository.Insert(db, role))
	require.NoError(t, repository.ReplacePermissions(db, role, []uint{p1.ID, p2.ID}))

	loaded, err := repos.Role.FindWithPermissions(role.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{p1.ID, p2.ID}, loaded.PermissionIDs())

	require.NoError(t, repository.ReplacePermissions(db, role, []uint{p2.ID}))
	loaded, err = repos.Role.FindWithPermissions(role.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{p2.ID}, loaded.PermissionIDs())
}

func TestUserLookupAndLogs(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	u := &model.User{Name: "ding", Email: "ding@example.com", Phone: "13800000000"}
	require.NoError(t, u.SetPassword("123456"))
	require.NoError(t, repository.Insert(db, u))

	found, err := repos.User.FindByEmail("ding@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	missing, err := repos.User.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repos.Log.AddUserLog(u.ID, "127.0.0.1"))
	require.NoError(t, repos.Log.AddUserLog(u.ID, "127.0.0.2"))

	logs, err := repos.Log.ListUserLogs(u.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), logs.Total)
	require.NotNil(t, logs.Items[0].User)
	assert.Equal(t, "ding", logs.Items[0].User.Name)

	all, err := repos.Log.ListUserLogs(0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

func TestListsHideDeletedParents(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	alice := &model.User{Name: "alice", Email: "alice@example.com"}
	bob := &model.User{Name: "bob", Email: "bob@example.com"}
	require.NoError(t, repository.Insert(db, alice))
	require.NoError(t, repository.Insert(db, bob))
	kept := &model.Movie{Title: "保留", Star: 3}
	gone := &model.Movie{Title: "下架", Star: 3}
	require.NoError(t, repository.Insert(db, kept))
	require.NoError(t, repository.Insert(db, gone))

	for _, m := range []*model.Movie{kept, gone} {
		require.NoError(t, repository.Insert(db, &model.MovieCol{UserID: alice.ID, MovieID: m.ID}))
		require.NoError(t, repository.Insert(db, &model.Comment{Content: "好看", UserID: alice.ID, MovieID: m.ID}))
	}
	require.NoError(t, repository.Insert(db, &model.MovieCol{UserID: bob.ID, MovieID: kept.ID}))
	require.NoError(t, repository.Insert(db, &model.Comment{Content: "一般", UserID: bob.ID, MovieID: kept.ID}))

	require.NoError(t, repository.SoftDelete(db, gone))
	require.NoError(t, repository.SoftDelete(db, bob))

	favs, err := repos.MovieCol.ListByUser(alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), favs.Total)
	require.Len(t, favs.Items, 1)
	assert.Equal(t, "保留", favs.Items[0].Movie.Title)

	mine, err := repos.Comment.ListByUser(alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, kept.ID, mine.Items[0].MovieID)

	// 已删除会员的评论和收藏不计入
	onMovie, err := repos.Comment.ListByMovie(kept.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), onMovie.Total)
	require.NotNil(t, onMovie.Items[0].User)
	assert.Equal(t, "alice", onMovie.Items[0].User.Name)

	n, err := repos.MovieCol.CountByMovie(kept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCountAdmins(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)

	require.NoError(t, repository.Insert(db, &model.User{Name: "member", Email: "m@example.com", Role: model.RoleUser}))
	require.NoError(t, repository.Insert(db, &model.User{Name: "tags", Email: "t@example.com", Role: model.RoleTagAdmin}))
	super := &model.User{Name: "root", Email: "r@example.com", Role: model.RoleSuperAdmin}
	require.NoError(t, repository.Insert(db, super))

	n, err := repos.User.CountAdmins()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repository.SoftDelete(db, super))
	n, err = repos.User.CountAdmins()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
