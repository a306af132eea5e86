// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/jamwt/anon-notes-service/pkg/timex"

// NoteCreateRequest 创建笔记请求参数
type NoteCreateRequest struct {
	Note string `json:"note" form:"note" binding:"required"` // 笔记内容
}

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        int64      `json:"id"`        // 笔记唯一标识
	Note      string     `json:"note"`      // 笔记内容
	CreatedAt timex.Time `json:"createdAt"` // 创建时间
}
