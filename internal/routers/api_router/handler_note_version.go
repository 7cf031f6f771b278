package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillnotes/quill-notes-service/internal/app"
	"github.com/quillnotes/quill-notes-service/internal/dto"
	pkgapp "github.com/quillnotes/quill-notes-service/pkg/app"
	"github.com/quillnotes/quill-notes-service/pkg/code"
	apperrors "github.com/quillnotes/quill-notes-service/pkg/errors"
)

// NoteVersionHandler 笔记版本 API 路由处理器
// 提供手动建版、版本列表、版本详情、差异对比与版本恢复
type NoteVersionHandler struct {
	*Handler
}

// NewNoteVersionHandler 创建 NoteVersionHandler 实例
func NewNoteVersionHandler(a *app.App) *NoteVersionHandler {
	return &NoteVersionHandler{Handler: NewHandler(a)}
}

// Create 手动创建版本，不经过变化判定
// @Router /api/note/version [post]
func (h *NoteVersionHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VersionCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteVersionHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	version, err := h.App.NoteVersionService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(version))
}

// List 按版本号升序分页获取版本摘要
// @Router /api/note/versions [get]
func (h *NoteVersionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VersionListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteVersionHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, count, err := h.App.NoteVersionService.List(ctx, uid, params.NoteID, pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, int(count))
}

// Get 获取单个版本的完整内容
// @Router /api/note/version [get]
func (h *NoteVersionHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VersionGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteVersionHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	version, err := h.App.NoteVersionService.Get(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(version))
}

// Diff 对比两个版本，版本号 0 表示当前笔记内容
// @Router /api/note/version/diff [get]
func (h *NoteVersionHandler) Diff(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VersionDiffRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteVersionHandler.Diff.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.NoteVersionService.Diff(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Restore 恢复到历史版本，写回笔记并追加新版本
// @Router /api/note/version/restore [put]
func (h *NoteVersionHandler) Restore(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VersionRestoreRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteVersionHandler.Restore.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	version, err := h.App.NoteVersionService.Restore(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteVersionHandler.Restore", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(version))
}
