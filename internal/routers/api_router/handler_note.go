package api_router

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/ephemeral-notes-service/internal/app"
	"github.com/haierkeys/ephemeral-notes-service/internal/dto"
	pkgapp "github.com/haierkeys/ephemeral-notes-service/pkg/app"
	"github.com/haierkeys/ephemeral-notes-service/pkg/code"
	"github.com/haierkeys/ephemeral-notes-service/pkg/convert"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// toResponseError 将服务层错误转换为统一响应
func (h *NoteHandler) toResponseError(response *pkgapp.Response, err error) {
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		response.ToResponse(codeErr)
		return
	}
	response.ToResponse(code.ErrorServerInternal)
}

// List 获取当前身份的笔记列表
// @Summary 获取笔记列表
// @Description 返回当前身份的全部笔记，按创建时间倒序；首条携带完整 HTML
// @Tags 笔记
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteDTO} "成功"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	identity := pkgapp.GetIdentity(c)
	if identity == "" {
		h.App.Logger().Error("NoteHandler.List err identity empty")
		response.ToResponse(code.ErrorServerInternal)
		return
	}

	notes := h.App.NoteService.List(c.Request.Context(), identity)
	response.ToResponse(code.Success.WithData(notes))
}

// Get 获取单条笔记详情
// @Summary 获取笔记详情
// @Description 根据 ID 获取当前身份名下的单条笔记，携带渲染后的 HTML
// @Tags 笔记
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	identity := pkgapp.GetIdentity(c)
	if identity == "" {
		h.App.Logger().Error("NoteHandler.Get err identity empty")
		response.ToResponse(code.ErrorServerInternal)
		return
	}

	id, err := convert.StrTo(c.Param("id")).Int64()
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	note, err := h.App.NoteService.Get(c.Request.Context(), identity, id)
	if err != nil {
		h.toResponseError(response, err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Search 搜索当前身份的笔记
// @Summary 搜索笔记
// @Description 在当前身份名下按内容子串搜索，结果按创建时间倒序
// @Tags 笔记
// @Produce json
// @Param q query string true "搜索关键字"
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteListItemDTO} "成功"
// @Router /api/notes/search [get]
func (h *NoteHandler) Search(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteSearchRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Search.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	identity := pkgapp.GetIdentity(c)
	if identity == "" {
		h.App.Logger().Error("NoteHandler.Search err identity empty")
		response.ToResponse(code.ErrorServerInternal)
		return
	}

	notes := h.App.NoteService.Search(c.Request.Context(), identity, params.Query)
	response.ToResponse(code.Success.WithData(notes))
}

// Create 创建笔记
// @Summary 创建笔记
// @Description 在当前身份名下创建一条 Markdown 笔记
// @Tags 笔记
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	identity := pkgapp.GetIdentity(c)
	if identity == "" {
		h.App.Logger().Error("NoteHandler.Create err identity empty")
		response.ToResponse(code.ErrorServerInternal)
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), identity, params)
	if err != nil {
		h.toResponseError(response, err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Update 更新笔记内容
// @Summary 更新笔记
// @Description 更新当前身份名下指定笔记的内容
// @Tags 笔记
// @Accept json
// @Produce json
// @Param id path int true "笔记 ID"
// @Param params body dto.NoteUpdateRequest true "更新参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/notes/{id} [post]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	identity := pkgapp.GetIdentity(c)
	if identity == "" {
		h.App.Logger().Error("NoteHandler.Update err identity empty")
		response.ToResponse(code.ErrorServerInternal)
		return
	}

	id, err := convert.StrTo(c.Param("id")).Int64()
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	note, err := h.App.NoteService.Update(c.Request.Context(), identity, id, params)
	if err != nil {
		h.toResponseError(response, err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}
