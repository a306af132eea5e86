// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/pkg/code"
	"github.com/jamwt/anon-notes-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IdentityService 定义身份升级服务接口
type IdentityService interface {
	// UpgradeAnonUser 将匿名会话归并到认证主体名下
	// 幂等：重复调用不会重复转移笔记；同一主体可陆续吸收多个匿名会话
	UpgradeAnonUser(ctx context.Context, sessionToken string, principal string) (*dto.UpgradeDTO, error)
}

// identityService 实现 IdentityService 接口
type identityService struct {
	identityRepo domain.UserIdentityRepository
	noteRepo     domain.NoteRepository
	logger       *zap.Logger
}

// NewIdentityService 创建 IdentityService 实例
func NewIdentityService(identityRepo domain.UserIdentityRepository, noteRepo domain.NoteRepository, logger *zap.Logger) IdentityService {
	return &identityService{
		identityRepo: identityRepo,
		noteRepo:     noteRepo,
		logger:       logger,
	}
}

// UpgradeAnonUser 将匿名会话归并到认证主体名下
//
// 流程：
//  1. 必须携带认证主体，否则返回 ErrorNotAuthenticated
//  2. 认证身份按需创建：首次升级时落库，之后复用
//  3. 会话对应的匿名身份存在时，把它名下的全部笔记批量转移给认证身份
//  4. 匿名身份记录保留为空壳，不删除
//
// 没有匿名身份（会话从未通过验证、或已被转移过）时退化为纯登记：
// 确保认证身份存在，转移数量为 0
func (s *identityService) UpgradeAnonUser(ctx context.Context, sessionToken string, principal string) (*dto.UpgradeDTO, error) {
	if principal == "" {
		return nil, code.ErrorNotAuthenticated
	}

	var anon *domain.UserIdentity
	if sessionToken != "" {
		found, err := s.identityRepo.GetByKindIdentifier(ctx, domain.UserKindAnon, sessionToken)
		if err == nil {
			anon = found
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("lookup anon identity failed",
				zap.String(logger.FieldSessionToken, sessionToken),
				zap.Error(err))
			return nil, code.ErrorDBQuery
		}
	}

	auth, err := s.identityRepo.GetByKindIdentifier(ctx, domain.UserKindAuth, principal)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		auth, err = s.identityRepo.Create(ctx, &domain.UserIdentity{
			Kind:       domain.UserKindAuth,
			Identifier: principal,
		})
	}
	if err != nil {
		s.logger.Error("ensure auth identity failed",
			zap.String(logger.FieldPrincipal, principal),
			zap.Error(err))
		return nil, code.ErrorDBQuery
	}

	var moved int64
	if anon != nil && anon.ID != auth.ID {
		moved, err = s.noteRepo.ReparentAll(ctx, anon.ID, auth.ID)
		if err != nil {
			s.logger.Error("reparent notes failed",
				zap.Int64("fromOwner", anon.ID),
				zap.Int64("toOwner", auth.ID),
				zap.Error(err))
			return nil, code.ErrorDBQuery
		}
	}

	s.logger.Info("anon session upgraded",
		zap.Int64(logger.FieldUserID, auth.ID),
		zap.String(logger.FieldPrincipal, principal),
		zap.Int64(logger.FieldCount, moved))

	return &dto.UpgradeDTO{
		UserID:         auth.ID,
		ReparentedNote: moved,
	}, nil
}
