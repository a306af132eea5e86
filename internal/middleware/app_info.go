package middleware

import (
	"github.com/jamwt/anon-notes-service/global"
	"github.com/jamwt/anon-notes-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfo 注入应用元信息（版本由构建时变量传入）
func AppInfo(version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", global.Name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
