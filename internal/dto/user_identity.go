package dto

import "github.com/jamwt/anon-notes-service/pkg/timex"

// UserIdentityDTO 用户身份数据传输对象
// identifier 不下发：匿名身份的 identifier 即会话 Token，认证身份的是主体标识
type UserIdentityDTO struct {
	ID        int64      `json:"id"`        // 身份唯一标识
	Kind      string     `json:"kind"`      // 身份类型：anon / auth
	CreatedAt timex.Time `json:"createdAt"` // 创建时间
}
