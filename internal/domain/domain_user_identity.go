// Package domain 定义领域模型和接口
package domain

import "time"

// UserKind 用户身份类型
type UserKind string

const (
	// UserKindAnon 匿名身份，identifier 为客户端会话 Token
	UserKindAnon UserKind = "anon"
	// UserKindAuth 认证身份，identifier 为认证主体的稳定标识
	UserKindAuth UserKind = "auth"
)

// Valid 判断身份类型是否合法
func (k UserKind) Valid() bool {
	return k == UserKindAnon || k == UserKindAuth
}

// UserIdentity 用户身份领域模型
// 同一个 (kind, identifier) 至多存在一条记录；
// 记录一经创建不会被删除，匿名身份在升级后保留为空壳
type UserIdentity struct {
	ID         int64
	Kind       UserKind
	Identifier string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAnon 是否为匿名身份
func (u *UserIdentity) IsAnon() bool {
	return u.Kind == UserKindAnon
}
