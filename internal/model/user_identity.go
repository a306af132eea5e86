package model

import (
	"github.com/jamwt/anon-notes-service/pkg/timex"
)

// UserIdentity 用户身份表模型
// (kind, identifier) 上的唯一索引是身份唯一性的最终保障：
// 并发的首次创建即使都通过了存在性检查，也只会有一行落库
type UserIdentity struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Kind       string     `gorm:"column:kind;size:8;not null;uniqueIndex:uk_kind_identifier" json:"kind"`
	Identifier string     `gorm:"column:identifier;size:191;not null;uniqueIndex:uk_kind_identifier" json:"identifier"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}
