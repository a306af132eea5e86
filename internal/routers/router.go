package routers

import (
	"time"

	"github.com/jamwt/anon-notes-service/internal/app"
	"github.com/jamwt/anon-notes-service/internal/middleware"
	"github.com/jamwt/anon-notes-service/internal/routers/api_router"
	"github.com/jamwt/anon-notes-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// 会话准入接口限流，防止刷验证配额
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/session",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建公共 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(appContainer.Version().Version))
		if cfg.Tracer.Enabled {
			api.Use(middleware.TraceMiddleware(cfg.Tracer.Header)) // Trace ID 中间件
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.SessionToken())
		api.Use(middleware.AuthContextWithManager(appContainer.TokenManager))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		sessionHandler := api_router.NewSessionHandler(appContainer)
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		// 会话：发放 Token 与人机验证准入
		api.GET("/session", sessionHandler.Mint)
		api.POST("/session/captcha", sessionHandler.LoginAnonWithCaptcha)

		// 用户：身份升级与当前身份查询
		api.POST("/user/upgrade", userHandler.Upgrade)
		api.GET("/user", userHandler.Current)

		// 笔记
		api.POST("/note", noteHandler.Create)
		api.GET("/notes", noteHandler.List)

		api.GET("/health", healthHandler.Check)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
