package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/jamwt/anon-notes-service/internal/app"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/internal/middleware"
	pkgapp "github.com/jamwt/anon-notes-service/pkg/app"
	"github.com/jamwt/anon-notes-service/pkg/code"
	apperrors "github.com/jamwt/anon-notes-service/pkg/errors"
	"go.uber.org/zap"
)

// SessionHandler session API router handler
// SessionHandler 会话 API 路由处理器
type SessionHandler struct {
	*Handler
}

// NewSessionHandler 创建 SessionHandler 实例
func NewSessionHandler(a *app.App) *SessionHandler {
	return &SessionHandler{
		Handler: NewHandler(a),
	}
}

// Mint issues a fresh opaque session token
// @Summary 生成会话 Token
// @Description 为不自行生成会话 Token 的客户端发放一个新的不透明 Token
// @Tags Session
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SessionDTO} "Success"
// @Router /api/session [get]
func (h *SessionHandler) Mint(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	sessionDTO, err := h.App.SessionService.Mint(ctx)
	if err != nil {
		h.logError(ctx, "SessionHandler.Mint", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(sessionDTO))
}

// LoginAnonWithCaptcha establishes an anonymous identity for the session
// @Summary 匿名会话准入
// @Description 校验人机验证结果，通过后为当前会话建立匿名身份。幂等。
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-Token header string true "Session Token"
// @Param params body dto.CaptchaVerifyRequest true "Captcha Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserIdentityDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Verification Failed"
// @Router /api/session/captcha [post]
func (h *SessionHandler) LoginAnonWithCaptcha(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CaptchaVerifyRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.LoginAnonWithCaptcha.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	sessionToken := middleware.GetSessionToken(c)

	identityDTO, err := h.App.CaptchaService.LoginAnonWithCaptcha(ctx, sessionToken, params)
	if err != nil {
		h.logError(ctx, "SessionHandler.LoginAnonWithCaptcha", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(identityDTO))
}
