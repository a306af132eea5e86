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

// NoteHandler note API router handler
// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// Create adds a note owned by the resolved identity
// @Summary 创建笔记
// @Description 在当前请求解析到的身份名下创建一条笔记。请求必须能解析到身份。
// @Tags Note
// @Accept json
// @Produce json
// @Param X-Session-Token header string false "Session Token"
// @Param Authorization header string false "Bearer Token"
// @Param params body dto.NoteCreateRequest true "Note Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / User Not Found"
// @Router /api/note [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	// 先解析身份，解析不到时不落任何数据
	identity, err := h.App.SessionService.Resolve(ctx,
		middleware.GetSessionToken(c),
		middleware.GetAuthPrincipal(c))
	if err != nil {
		h.logError(ctx, "NoteHandler.Create.Resolve", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	noteDTO, err := h.App.NoteService.Create(ctx, identity.ID, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(noteDTO))
}

// List returns the resolved identity's notes in insertion order
// @Summary 笔记列表
// @Description 按写入顺序返回当前请求解析到的身份名下的全部笔记
// @Tags Note
// @Produce json
// @Param X-Session-Token header string false "Session Token"
// @Param Authorization header string false "Bearer Token"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "Success"
// @Failure 400 {object} pkgapp.Res "User Not Found"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	identity, err := h.App.SessionService.Resolve(ctx,
		middleware.GetSessionToken(c),
		middleware.GetAuthPrincipal(c))
	if err != nil {
		h.logError(ctx, "NoteHandler.List.Resolve", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	list, count, err := h.App.NoteService.List(ctx, identity.ID)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, count)
}
