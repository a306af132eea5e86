package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/jamwt/anon-notes-service/internal/app"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/internal/middleware"
	pkgapp "github.com/jamwt/anon-notes-service/pkg/app"
	"github.com/jamwt/anon-notes-service/pkg/code"
	apperrors "github.com/jamwt/anon-notes-service/pkg/errors"
	"github.com/jamwt/anon-notes-service/pkg/timex"
)

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
// Uses App Container to inject dependencies, supports unified error handling
// 使用 App Container 注入依赖，支持统一错误处理
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(a),
	}
}

// Upgrade merges the anonymous session into the authenticated principal
// @Summary 匿名身份升级
// @Description 将当前会话的匿名身份及其全部笔记归并到认证主体名下。需要认证，幂等。
// @Tags User
// @Produce json
// @Param X-Session-Token header string false "Session Token"
// @Param Authorization header string true "Bearer Token"
// @Success 200 {object} pkgapp.Res{data=dto.UpgradeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Not Authenticated"
// @Router /api/user/upgrade [post]
func (h *UserHandler) Upgrade(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	sessionToken := middleware.GetSessionToken(c)
	principal := middleware.GetAuthPrincipal(c)

	upgradeDTO, err := h.App.IdentityService.UpgradeAnonUser(ctx, sessionToken, principal)
	if err != nil {
		h.logError(ctx, "UserHandler.Upgrade", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(upgradeDTO))
}

// Current returns the identity the request resolves to
// @Summary 当前身份信息
// @Description 返回当前请求解析到的用户身份（认证身份优先于匿名身份）
// @Tags User
// @Produce json
// @Param X-Session-Token header string false "Session Token"
// @Param Authorization header string false "Bearer Token"
// @Success 200 {object} pkgapp.Res{data=dto.UserIdentityDTO} "Success"
// @Failure 400 {object} pkgapp.Res "User Not Found"
// @Router /api/user [get]
func (h *UserHandler) Current(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	identity, err := h.App.SessionService.Resolve(ctx,
		middleware.GetSessionToken(c),
		middleware.GetAuthPrincipal(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Current", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.UserIdentityDTO{
		ID:        identity.ID,
		Kind:      string(identity.Kind),
		CreatedAt: timex.Time(identity.CreatedAt),
	}))
}
