package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/user/moviesite/internal/model"
	"github.com/user/moviesite/internal/repository"
	"github.com/user/moviesite/internal/storage"
	"github.com/user/moviesite/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Action 写操作类型
type Action string

const (
	ActionAdd    Action = "添加"
	ActionUpdate Action = "修改"
	ActionDelete Action = "删除"
)

// Actor 操作人，非空时在同一事务中写入操作日志
type Actor struct {
	UserID uint
	IP     string
}

// Input 一次写操作的输入
// Apply 把表单字段写入实体，Files 以表单字段名索引上传的文件
type Input[T any] struct {
	Apply func(*T)
	Files map[string]*multipart.FileHeader
	Actor *Actor
}

// MediaField 描述实体上的一个文件字段
type MediaField[T any] struct {
	Field string
	Dir   string
	Get   func(*T) string
	Set   func(*T, string)
}

// Policy 实体的业务规则
type Policy[T any] struct {
	// Name 实体的中文名，用于提示消息和操作日志
	Name string
	// Conflict 返回非空消息表示违反业务规则，excludeID 为更新时的自身 ID
	Conflict func(tx *gorm.DB, e *T, excludeID uint) (string, error)
	Media    []MediaField[T]
	// Subject 操作日志中实体的描述，通常是名称或标题
	Subject func(*T) string
	// Message 自定义成功提示，为空时使用 "<动作><实体>成功"
	Message func(action Action, e *T) string
	// AfterWrite 在同一事务中执行的附加写入
	AfterWrite func(tx *gorm.DB, action Action, e *T) error
	// Committed 事务提交后执行，用于清理缓存
	Committed func(action Action, e *T)
}

// Lifecycle 实体的添加、修改、软删除流程，每次操作在一个事务内完成
type Lifecycle[T any] struct {
	db     *gorm.DB
	store  storage.Store
	policy Policy[T]
}

// NewLifecycle 创建实体生命周期，*T 必须嵌入 model.Base
func NewLifecycle[T any](db *gorm.DB, store storage.Store, policy Policy[T]) *Lifecycle[T] {
	if _, ok := any(new(T)).(model.Entity); !ok {
		panic(fmt.Sprintf("lifecycle: %T does not embed model.Base", new(T)))
	}
	return &Lifecycle[T]{db: db, store: store, policy: policy}
}

// Policy 返回实体的业务规则
func (l *Lifecycle[T]) Policy() Policy[T] {
	return l.policy
}

// Add 添加实体
func (l *Lifecycle[T]) Add(ctx context.Context, e *T, in Input[T]) (string, error) {
	return l.write(ctx, ActionAdd, e, in)
}

// Update 修改实体，唯一性检查排除自身
// 失败时 e 恢复为调用前的内容
func (l *Lifecycle[T]) Update(ctx context.Context, e *T, in Input[T]) (string, error) {
	return l.write(ctx, ActionUpdate, e, in)
}

// Delete 软删除实体，记录保留，status 置为 false
func (l *Lifecycle[T]) Delete(ctx context.Context, e *T, actor *Actor) (string, error) {
	entity := any(e).(model.Entity)

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.SoftDelete(tx, entity); err != nil {
			return fmt.Errorf("soft delete %s: %w", l.policy.Name, err)
		}
		if l.policy.AfterWrite != nil {
			if err := l.policy.AfterWrite(tx, ActionDelete, e); err != nil {
				return err
			}
		}
		return l.recordOp(tx, actor, ActionDelete, e)
	})
	if err != nil {
		entity.GetBase().Status = true
		logger.Warn("删除失败，事务已回滚", zap.String("entity", l.policy.Name), zap.Error(err))
		return "", err
	}

	if l.policy.Committed != nil {
		l.policy.Committed(ActionDelete, e)
	}
	return l.message(ActionDelete, e), nil
}

func (l *Lifecycle[T]) write(ctx context.Context, action Action, e *T, in Input[T]) (string, error) {
	base := any(e).(model.Entity).GetBase()
	snapshot := *e
	var stored, replaced []string

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Apply != nil {
			in.Apply(e)
		}

		if l.policy.Conflict != nil {
			var exclude uint
			if action == ActionUpdate {
				exclude = base.ID
			}
			msg, err := l.policy.Conflict(tx, e, exclude)
			if err != nil {
				return err
			}
			if msg != "" {
				return &ConflictError{Msg: msg}
			}
		}

		for _, m := range l.policy.Media {
			fh := in.Files[m.Field]
			if fh == nil {
				continue
			}
			key, err := l.store.Save(ctx, m.Dir, fh)
			if err != nil {
				return fmt.Errorf("save %s: %w", m.Field, err)
			}
			stored = append(stored, key)
			if old := m.Get(e); old != "" {
				replaced = append(replaced, old)
			}
			m.Set(e, key)
		}

		var err error
		if action == ActionAdd {
			err = repository.Insert(tx, any(e).(model.Entity))
		} else {
			err = repository.Save(tx, any(e).(model.Entity))
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", action, l.policy.Name, err)
		}

		if l.policy.AfterWrite != nil {
			if err := l.policy.AfterWrite(tx, action, e); err != nil {
				return err
			}
		}
		return l.recordOp(tx, in.Actor, action, e)
	})
	if err != nil {
		*e = snapshot
		l.removeFiles(stored)
		if !IsConflict(err) {
			logger.Warn("写入失败，事务已回滚",
				zap.String("entity", l.policy.Name),
				zap.String("action", string(action)),
				zap.Error(err),
			)
		}
		return "", err
	}

	l.removeFiles(replaced)
	if l.policy.Committed != nil {
		l.policy.Committed(action, e)
	}
	return l.message(action, e), nil
}

func (l *Lifecycle[T]) recordOp(tx *gorm.DB, actor *Actor, action Action, e *T) error {
	if actor == nil {
		return nil
	}
	if err := repository.AddOpLog(tx, actor.UserID, actor.IP, l.reason(action, e)); err != nil {
		return fmt.Errorf("record op log: %w", err)
	}
	return nil
}

// reason 操作日志内容，如 "添加标签：科幻"
func (l *Lifecycle[T]) reason(action Action, e *T) string {
	reason := string(action) + l.policy.Name
	if l.policy.Subject != nil {
		if subject := l.policy.Subject(e); subject != "" {
			reason += "：" + subject
		}
	}
	return reason
}

func (l *Lifecycle[T]) message(action Action, e *T) string {
	if l.policy.Message != nil {
		if msg := l.policy.Message(action, e); msg != "" {
			return msg
		}
	}
	return string(action) + l.policy.Name + "成功"
}

// removeFiles 事务外清理文件，失败只记录日志
func (l *Lifecycle[T]) removeFiles(keys []string) {
	for _, key := range keys {
		if err := l.store.Remove(context.Background(), key); err != nil {
			logger.Error("清理文件失败", zap.String("key", key), zap.Error(err))
		}
	}
}
