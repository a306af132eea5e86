package model

import (
	"github.com/jamwt/anon-notes-service/pkg/timex"
)

// Note 笔记表模型
// 自增主键即写入顺序，列表按主键升序返回
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Owner     int64      `gorm:"column:owner;not null;index:idx_owner" json:"owner"`
	Note      string     `gorm:"column:note;type:text;not null" json:"note"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}
