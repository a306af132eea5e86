package domain

import "time"

// Note 笔记领域模型
// Owner 永远指向一条 UserIdentity 记录，只会被重定向，不会置空
type Note struct {
	ID        int64
	Owner     int64
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
