package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/model"
	"github.com/jamwt/anon-notes-service/pkg/timex"

	"gorm.io/gorm"
)

// userIdentityRepository 实现 domain.UserIdentityRepository 接口
type userIdentityRepository struct {
	db *gorm.DB
}

// NewUserIdentityRepository 创建 UserIdentityRepository 实例
func NewUserIdentityRepository(db *gorm.DB) domain.UserIdentityRepository {
	return &userIdentityRepository{db: db}
}

// toDomain 将数据库模型转换为领域模型
func (r *userIdentityRepository) toDomain(m *model.UserIdentity) *domain.UserIdentity {
	if m == nil {
		return nil
	}
	return &domain.UserIdentity{
		ID:         m.ID,
		Kind:       domain.UserKind(m.Kind),
		Identifier: m.Identifier,
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

// GetByID 根据 ID 获取身份
func (r *userIdentityRepository) GetByID(ctx context.Context, id int64) (*domain.UserIdentity, error) {
	var m model.UserIdentity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByKindIdentifier 根据 (kind, identifier) 获取身份
func (r *userIdentityRepository) GetByKindIdentifier(ctx context.Context, kind domain.UserKind, identifier string) (*domain.UserIdentity, error) {
	var m model.UserIdentity
	err := r.db.WithContext(ctx).
		Where("kind = ? AND identifier = ?", string(kind), identifier).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建身份
// 撞上 (kind, identifier) 唯一索引时说明并发创建已有一方胜出，
// 此时改为读取并返回已存在的记录，由数据库兜底保证唯一性
func (r *userIdentityRepository) Create(ctx context.Context, identity *domain.UserIdentity) (*domain.UserIdentity, error) {
	m := &model.UserIdentity{
		Kind:       string(identity.Kind),
		Identifier: identity.Identifier,
		CreatedAt:  timex.Now(),
		UpdatedAt:  timex.Now(),
	}

	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil {
		if isDuplicateKeyErr(err) {
			return r.GetByKindIdentifier(ctx, identity.Kind, identity.Identifier)
		}
		return nil, err
	}
	return r.toDomain(m), nil
}

// CountByKind 统计指定类型的身份数量
func (r *userIdentityRepository) CountByKind(ctx context.Context, kind domain.UserKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserIdentity{}).
		Where("kind = ?", string(kind)).
		Count(&count).Error
	return count, err
}

// CountDrained 统计名下没有任何笔记的匿名身份数量
func (r *userIdentityRepository) CountDrained(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserIdentity{}).
		Where("kind = ?", string(domain.UserKindAnon)).
		Where("id NOT IN (?)", r.db.Model(&model.Note{}).Select("owner")).
		Count(&count).Error
	return count, err
}

// isDuplicateKeyErr 判断是否为唯一索引冲突
// TranslateError 已覆盖主流驱动，字符串匹配兜底 sqlite 方言差异
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
