package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// SessionTokenHeader 会话 Token 请求头名称
	SessionTokenHeader = "X-Session-Token"
	// SessionTokenKey Context 中存储会话 Token 的键
	SessionTokenKey = "session_token"
)

// SessionToken 提取客户端会话 Token 注入 gin.Context
// Token 不透明且由客户端持有，这里不做校验，是否存在对应身份由业务层判定
func SessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(SessionTokenHeader); token != "" {
			c.Set(SessionTokenKey, token)
		}
		c.Next()
	}
}

// GetSessionToken 从 gin.Context 获取会话 Token
func GetSessionToken(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, exists := c.Get(SessionTokenKey); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
