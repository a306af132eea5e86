// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/pkg/captcha"
	"github.com/jamwt/anon-notes-service/pkg/code"
	"github.com/jamwt/anon-notes-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// CaptchaService 定义匿名身份准入服务接口
type CaptchaService interface {
	// LoginAnonWithCaptcha 人机验证通过后为会话创建匿名身份
	// 幂等：匿名身份已存在时直接成功，不再调用外部校验接口
	LoginAnonWithCaptcha(ctx context.Context, sessionToken string, params *dto.CaptchaVerifyRequest) (*dto.UserIdentityDTO, error)
}

// captchaService 实现 CaptchaService 接口
type captchaService struct {
	identityRepo domain.UserIdentityRepository
	verifier     captcha.Verifier
	logger       *zap.Logger
	group        singleflight.Group
}

// NewCaptchaService 创建 CaptchaService 实例
func NewCaptchaService(identityRepo domain.UserIdentityRepository, verifier captcha.Verifier, logger *zap.Logger) CaptchaService {
	return &captchaService{
		identityRepo: identityRepo,
		verifier:     verifier,
		logger:       logger,
	}
}

// LoginAnonWithCaptcha 人机验证通过后为会话创建匿名身份
//
// 流程：
//  1. 预检：该会话的匿名身份已存在时直接返回，不触发外部校验
//  2. 调用外部校验接口；同一会话的并发请求合并为一次外部调用
//  3. 校验被拒：返回 ErrorVerificationFailed，不写任何数据
//  4. 校验通过：创建匿名身份；并发撞唯一索引时沿用先落库的记录
func (s *captchaService) LoginAnonWithCaptcha(ctx context.Context, sessionToken string, params *dto.CaptchaVerifyRequest) (*dto.UserIdentityDTO, error) {
	if sessionToken == "" {
		return nil, code.ErrorSessionTokenRequired
	}

	// 预检，避免重复消耗外部校验配额
	existing, err := s.identityRepo.GetByKindIdentifier(ctx, domain.UserKindAnon, sessionToken)
	if err == nil {
		return toIdentityDTO(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("anon identity pre-check failed",
			zap.String(logger.FieldSessionToken, sessionToken),
			zap.Error(err))
		return nil, code.ErrorDBQuery
	}

	// 以会话 Token 为 key 合并并发的外部校验与创建
	v, err, _ := s.group.Do(sessionToken, func() (interface{}, error) {
		ok, verr := s.verifier.Verify(ctx, params.CaptchaResponse)
		if verr != nil {
			s.logger.Error("captcha upstream verify failed",
				zap.String(logger.FieldSessionToken, sessionToken),
				zap.Error(verr))
			return nil, code.ErrorVerificationUpstream
		}
		if !ok {
			return nil, code.ErrorVerificationFailed
		}

		identity, cerr := s.identityRepo.Create(ctx, &domain.UserIdentity{
			Kind:       domain.UserKindAnon,
			Identifier: sessionToken,
		})
		if cerr != nil {
			s.logger.Error("create anon identity failed",
				zap.String(logger.FieldSessionToken, sessionToken),
				zap.Error(cerr))
			return nil, code.ErrorDBQuery
		}
		return identity, nil
	})
	if err != nil {
		return nil, err
	}

	identity := v.(*domain.UserIdentity)
	s.logger.Info("anon identity established",
		zap.Int64(logger.FieldUserID, identity.ID),
		zap.String(logger.FieldSessionToken, sessionToken))
	return toIdentityDTO(identity), nil
}
