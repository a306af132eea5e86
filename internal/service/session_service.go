// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/pkg/code"
	"github.com/jamwt/anon-notes-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionService 定义会话解析服务接口
type SessionService interface {
	// Mint 生成一个新的不透明会话 Token
	// 客户端也可以自行生成，服务端不区分来源
	Mint(ctx context.Context) (*dto.SessionDTO, error)

	// Resolve 将请求凭据解析为一个用户身份
	// 认证主体优先于匿名会话；两者都解析不到时返回 ErrorUserNotFound
	Resolve(ctx context.Context, sessionToken string, principal string) (*domain.UserIdentity, error)
}

// sessionService 实现 SessionService 接口
type sessionService struct {
	identityRepo domain.UserIdentityRepository
	logger       *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(identityRepo domain.UserIdentityRepository, logger *zap.Logger) SessionService {
	return &sessionService{
		identityRepo: identityRepo,
		logger:       logger,
	}
}

// Mint 生成一个新的会话 Token
func (s *sessionService) Mint(ctx context.Context) (*dto.SessionDTO, error) {
	return &dto.SessionDTO{SessionToken: uuid.NewString()}, nil
}

// Resolve 将请求凭据解析为一个用户身份
//
// 解析顺序：
//  1. 携带认证主体时优先查认证身份，命中即返回
//  2. 否则回退到匿名会话对应的匿名身份
//  3. 两者都不存在时返回 ErrorUserNotFound
//
// 认证身份尚未落库（还没调用过 upgrade）时同样回退到匿名身份，
// 保证登录后、升级前的窗口期内仍能看到匿名笔记
func (s *sessionService) Resolve(ctx context.Context, sessionToken string, principal string) (*domain.UserIdentity, error) {
	if principal != "" {
		identity, err := s.identityRepo.GetByKindIdentifier(ctx, domain.UserKindAuth, principal)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("resolve auth identity failed",
				zap.String(logger.FieldPrincipal, principal),
				zap.Error(err))
			return nil, code.ErrorDBQuery
		}
	}

	if sessionToken != "" {
		identity, err := s.identityRepo.GetByKindIdentifier(ctx, domain.UserKindAnon, sessionToken)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("resolve anon identity failed",
				zap.String(logger.FieldSessionToken, sessionToken),
				zap.Error(err))
			return nil, code.ErrorDBQuery
		}
	}

	return nil, code.ErrorUserNotFound
}
