package domain

import "context"

// UserIdentityRepository 用户身份仓储接口
type UserIdentityRepository interface {
	// GetByID 根据 ID 获取身份
	GetByID(ctx context.Context, id int64) (*UserIdentity, error)

	// GetByKindIdentifier 根据 (kind, identifier) 获取身份
	// 不存在时返回 gorm.ErrRecordNotFound
	GetByKindIdentifier(ctx context.Context, kind UserKind, identifier string) (*UserIdentity, error)

	// Create 创建身份
	// 并发创建撞上唯一索引时视为已存在，返回先落库的那条记录
	Create(ctx context.Context, identity *UserIdentity) (*UserIdentity, error)

	// CountByKind 统计指定类型的身份数量
	CountByKind(ctx context.Context, kind UserKind) (int64, error)

	// CountDrained 统计名下没有任何笔记的匿名身份数量
	CountDrained(ctx context.Context) (int64, error)
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据 ID 获取笔记
	GetByID(ctx context.Context, id int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// ListByOwner 按写入顺序获取某身份名下的全部笔记
	ListByOwner(ctx context.Context, owner int64) ([]*Note, error)

	// CountByOwner 获取某身份名下的笔记数量
	CountByOwner(ctx context.Context, owner int64) (int64, error)

	// ReparentAll 将 fromOwner 名下的全部笔记批量转移给 toOwner
	// 返回转移的笔记数量
	ReparentAll(ctx context.Context, fromOwner, toOwner int64) (int64, error)
}
