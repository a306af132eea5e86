// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"
	"time"

	"github.com/jamwt/anon-notes-service/internal/dao"
	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/service"
	pkgapp "github.com/jamwt/anon-notes-service/pkg/app"
	"github.com/jamwt/anon-notes-service/pkg/captcha"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB

	// Repository 层
	UserIdentityRepo domain.UserIdentityRepository
	NoteRepo         domain.NoteRepository

	// Service 层
	SessionService  service.SessionService
	CaptchaService  service.CaptchaService
	IdentityService service.IdentityService
	NoteService     service.NoteService

	// 基础设施组件
	TokenManager    pkgapp.TokenManager
	CaptchaVerifier captcha.Verifier

	// 启动时间，用于健康检查汇报运行时长
	StartTime time.Time
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    pkgapp.DefaultTokenIssuer,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化外部人机验证客户端
	a.CaptchaVerifier = captcha.NewClient(cfg.Captcha)

	// 初始化 Repository 层
	a.UserIdentityRepo = dao.NewUserIdentityRepository(db)
	a.NoteRepo = dao.NewNoteRepository(db)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		Note: service.NoteServiceConfig{
			MaxLength: cfg.App.NoteMaxLength,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.SessionService = service.NewSessionService(a.UserIdentityRepo, logger)
	a.CaptchaService = service.NewCaptchaService(a.UserIdentityRepo, a.CaptchaVerifier, logger)
	a.IdentityService = service.NewIdentityService(a.UserIdentityRepo, a.NoteRepo, logger)
	a.NoteService = service.NewNoteService(a.NoteRepo, logger, svcConfig)

	logger.Info("App container initialized successfully")

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
