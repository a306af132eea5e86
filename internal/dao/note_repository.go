package dao

import (
	"context"
	"time"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/model"
	"github.com/jamwt/anon-notes-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(db *gorm.DB) domain.NoteRepository {
	return &noteRepository{db: db}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		Owner:     m.Owner,
		Note:      m.Note,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// GetByID 根据 ID 获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := &model.Note{
		Owner:     note.Owner,
		Note:      note.Note,
		CreatedAt: timex.Now(),
		UpdatedAt: timex.Now(),
	}

	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByOwner 按写入顺序获取某身份名下的全部笔记
func (r *noteRepository) ListByOwner(ctx context.Context, owner int64) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// CountByOwner 获取某身份名下的笔记数量
func (r *noteRepository) CountByOwner(ctx context.Context, owner int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("owner = ?", owner).
		Count(&count).Error
	return count, err
}

// ReparentAll 将 fromOwner 名下的全部笔记批量转移给 toOwner
// 单条 UPDATE 完成转移，转移本身在语句级别是原子的
func (r *noteRepository) ReparentAll(ctx context.Context, fromOwner, toOwner int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("owner = ?", fromOwner).
		Updates(map[string]interface{}{
			"owner":      toOwner,
			"updated_at": timex.Now(),
		})
	return result.RowsAffected, result.Error
}
