package middleware

import (
	"strings"

	"github.com/jamwt/anon-notes-service/pkg/app"
	"github.com/jamwt/anon-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
)

const (
	// AuthPrincipalKey Context 中存储认证主体标识的键
	AuthPrincipalKey = "auth_principal"
	// AuthClaimsKey Context 中存储认证声明的键
	AuthClaimsKey = "auth_claims"
)

// AuthContextWithManager 可选认证中间件（使用注入的 Token 管理器）
// 没有 Authorization 头时直接放行，请求以匿名会话身份继续；
// 带了 Bearer Token 但解析失败时拒绝请求，不降级为匿名
func AuthContextWithManager(tokenManager app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := header
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
		if token == "" {
			app.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		claims, err := tokenManager.Parse(token)
		if err != nil {
			app.NewResponse(c).ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Set(AuthPrincipalKey, claims.Subject)
		c.Set(AuthClaimsKey, claims)

		c.Next()
	}
}

// GetAuthPrincipal 从 gin.Context 获取认证主体标识
// 未认证的请求返回空串
func GetAuthPrincipal(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, exists := c.Get(AuthPrincipalKey); exists {
		if principal, ok := v.(string); ok {
			return principal
		}
	}
	return ""
}
