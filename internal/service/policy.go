package service

import (
	"fmt"

	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/storage"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Tags        *Lifecycle[model.Tag]
	Movies      *Lifecycle[model.Movie]
	Previews    *Lifecycle[model.Preview]
	Users       *Lifecycle[model.User]
	Permissions *Lifecycle[model.Permission]
	Roles       *Lifecycle[model.Role]
	Comments    *Lifecycle[model.Comment]
	MovieCols   *Lifecycle[model.MovieCol]

	Auth      *AuthService
	Favorites *FavoriteService
	Catalog   *CatalogService
	Storage   storage.Store
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, store storage.Store) *Services {
	db := repos.DB
	catalog := NewCatalogService(repos)

	s := &Services{
		Tags:        NewLifecycle(db, store, tagPolicy(repos.Tag, catalog)),
		Movies:      NewLifecycle(db, store, moviePolicy(catalog)),
		Previews:    NewLifecycle(db, store, previewPolicy()),
		Users:       NewLifecycle(db, store, userPolicy()),
		Permissions: NewLifecycle(db, store, permissionPolicy()),
		Roles:       NewLifecycle(db, store, rolePolicy()),
		Comments:    NewLifecycle(db, store, commentPolicy()),
		MovieCols:   NewLifecycle(db, store, movieColPolicy()),
		Catalog:     catalog,
		Storage:     store,
	}
	catalog.comments = s.Comments
	s.Auth = NewAuthService(repos, s.Users)
	s.Favorites = NewFavoriteService(repos, s.MovieCols)
	return s
}

func exists[T any](tx *gorm.DB, exclude uint, query string, args ...interface{}) (bool, error) {
	return repository.ExistsActive[T](tx, exclude, query, args...)
}

func tagPolicy(tags *repository.TagRepository, catalog *CatalogService) Policy[model.Tag] {
	return Policy[model.Tag]{
		Name: "标签",
		Conflict: func(tx *gorm.DB, t *model.Tag, exclude uint) (string, error) {
			dup, err := exists[model.Tag](tx, exclude, "name = ?", t.Name)
			if err != nil || !dup {
				return "", err
			}
			return "标签已经存在", nil
		},
		Subject: func(t *model.Tag) string { return t.Name },
		AfterWrite: func(tx *gorm.DB, action Action, t *model.Tag) error {
			if action != ActionDelete {
				return nil
			}
			return repository.DetachMovies(tx, t.ID)
		},
		// 搜索结果缓存中带有标签名，改名和删除都要清空
		Committed: func(Action, *model.Tag) {
			tags.InvalidateCache()
			catalog.ClearSearchCache()
		},
	}
}

func moviePolicy(catalog *CatalogService) Policy[model.Movie] {
	return Policy[model.Movie]{
		Name: "电影",
		Conflict: func(tx *gorm.DB, m *model.Movie, exclude uint) (string, error) {
			dup, err := exists[model.Movie](tx, exclude, "title = ?", m.Title)
			if err != nil {
				return "", err
			}
			if dup {
				return "片名已经存在", nil
			}
			if m.TagID != nil {
				ok, err := exists[model.Tag](tx, 0, "id = ?", *m.TagID)
				if err != nil {
					return "", err
				}
				if !ok {
					return "标签不存在", nil
				}
			}
			return "", nil
		},
		Media: []MediaField[model.Movie]{
			{
				Field: "url",
				Dir:   storage.DirMovie,
				Get:   func(m *model.Movie) string { return m.URL },
				Set:   func(m *model.Movie, key string) { m.URL = key },
			},
			{
				Field: "logo",
				Dir:   storage.DirMovie,
				Get:   func(m *model.Movie) string { return m.Logo },
				Set:   func(m *model.Movie, key string) { m.Logo = key },
			},
		},
		Subject: func(m *model.Movie) string { return m.Title },
		Committed: func(Action, *model.Movie) {
			catalog.ClearSearchCache()
		},
	}
}

func previewPolicy() Policy[model.Preview] {
	return Policy[model.Preview]{
		Name: "电影预告",
		Conflict: func(tx *gorm.DB, p *model.Preview, exclude uint) (string, error) {
			dup, err := exists[model.Preview](tx, exclude, "title = ?", p.Title)
			if err != nil || !dup {
				return "", err
			}
			return "预告标题已经存在", nil
		},
		Media: []MediaField[model.Preview]{
			{
				Field: "logo",
				Dir:   storage.DirPreview,
				Get:   func(p *model.Preview) string { return p.Logo },
				Set:   func(p *model.Preview, key string) { p.Logo = key },
			},
		},
		Subject: func(p *model.Preview) string { return p.Title },
	}
}

func userPolicy() Policy[model.User] {
	return Policy[model.User]{
		Name: "用户",
		Conflict: func(tx *gorm.DB, u *model.User, exclude uint) (string, error) {
			checks := []struct {
				column, value, msg string
			}{
				{"name", u.Name, "昵称已经存在"},
				{"email", u.Email, "邮箱已经存在"},
				{"phone", u.Phone, "手机号已经存在"},
			}
			for _, c := range checks {
				if c.value == "" {
					continue
				}
				dup, err := exists[model.User](tx, exclude, c.column+" = ?", c.value)
				if err != nil {
					return "", err
				}
				if dup {
					return c.msg, nil
				}
			}
			return "", nil
		},
		Media: []MediaField[model.User]{
			{
				Field: "avatar",
				Dir:   storage.DirAvatar,
				Get:   func(u *model.User) string { return u.Avatar },
				Set:   func(u *model.User, key string) { u.Avatar = key },
			},
		},
		Subject: func(u *model.User) string { return u.Name },
	}
}

func permissionPolicy() Policy[model.Permission] {
	return Policy[model.Permission]{
		Name: "权限",
		Conflict: func(tx *gorm.DB, p *model.Permission, exclude uint) (string, error) {
			dup, err := exists[model.Permission](tx, exclude, "name = ?", p.Name)
			if err != nil {
				return "", err
			}
			if dup {
				return "权限名称已经存在", nil
			}
			dup, err = exists[model.Permission](tx, exclude, "url = ?", p.URL)
			if err != nil || !dup {
				return "", err
			}
			return "权限地址已经存在", nil
		},
		Subject: func(p *model.Permission) string { return p.Name },
	}
}

func rolePolicy() Policy[model.Role] {
	return Policy[model.Role]{
		Name: "角色",
		Conflict: func(tx *gorm.DB, r *model.Role, exclude uint) (string, error) {
			dup, err := exists[model.Role](tx, exclude, "name = ?", r.Name)
			if err != nil || !dup {
				return "", err
			}
			return "角色已经存在", nil
		},
		Subject: func(r *model.Role) string { return r.Name },
		AfterWrite: func(tx *gorm.DB, action Action, r *model.Role) error {
			if action == ActionDelete {
				return nil
			}
			return repository.ReplacePermissions(tx, r, r.PermissionIDs())
		},
	}
}

func commentPolicy() Policy[model.Comment] {
	return Policy[model.Comment]{
		Name: "评论",
		AfterWrite: func(tx *gorm.DB, action Action, c *model.Comment) error {
			if action != ActionAdd {
				return nil
			}
			return repository.IncrementCommentNum(tx, c.MovieID)
		},
	}
}

func movieColPolicy() Policy[model.MovieCol] {
	return Policy[model.MovieCol]{
		Name: "收藏",
		Conflict: func(tx *gorm.DB, c *model.MovieCol, exclude uint) (string, error) {
			dup, err := exists[model.MovieCol](tx, exclude, "user_id = ? AND movie_id = ?", c.UserID, c.MovieID)
			if err != nil || !dup {
				return "", err
			}
			return "已经收藏", nil
		},
		Subject: func(c *model.MovieCol) string { return fmt.Sprintf("电影 %d", c.MovieID) },
	}
}
