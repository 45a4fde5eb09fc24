package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/service"
	pkgerrors "staffhub/backend/pkg/errors"
	"staffhub/backend/pkg/response"
)

// 文件夹附件上传大小上限（20MB）
const maxFolderFileSize = 20 << 20

// FolderHandler 文件夹/清单/附件模块 HTTP 处理器
type FolderHandler struct {
	folderSvc service.FolderService
	fileSvc   service.FolderFileService
}

// NewFolderHandler 创建 FolderHandler
func NewFolderHandler(folderSvc service.FolderService, fileSvc service.FolderFileService) *FolderHandler {
	return &FolderHandler{folderSvc: folderSvc, fileSvc: fileSvc}
}

// ────────────────────── CreateFolder ──────────────────────

// POST /api/v1/folders
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	folder, err := h.folderSvc.Create(c.Request.Context(), empID, role, &req)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.Created(c, folder)
}

// ────────────────────── ListFolders ──────────────────────

// GET /api/v1/folders（search 非空时全项目模糊检索，否则按 parent_id 列子级）
func (h *FolderHandler) ListFolders(c *gin.Context) {
	var req dto.FolderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	folders, err := h.folderSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, gin.H{"list": folders})
}

// ────────────────────── GetFolder ──────────────────────

// GET /api/v1/folders/:id
func (h *FolderHandler) GetFolder(c *gin.Context) {
	folder, err := h.folderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, folder)
}

// ────────────────────── GetFolderSubtree ──────────────────────

// GET /api/v1/folders/:id/subtree
func (h *FolderHandler) GetFolderSubtree(c *gin.Context) {
	folders, err := h.folderSvc.Subtree(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, gin.H{"list": folders})
}

// ────────────────────── UpdateFolder ──────────────────────

// PUT /api/v1/folders/:id
func (h *FolderHandler) UpdateFolder(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	folder, err := h.folderSvc.Update(c.Request.Context(), role, c.Param("id"), &req)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, folder)
}

// ────────────────────── MoveFolder ──────────────────────

// POST /api/v1/folders/:id/move
func (h *FolderHandler) MoveFolder(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.MoveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	folder, err := h.folderSvc.Move(c.Request.Context(), role, c.Param("id"), &req)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, folder)
}

// ────────────────────── SoftDeleteFolder ──────────────────────

// POST /api/v1/folders/:id/trash
func (h *FolderHandler) SoftDeleteFolder(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.folderSvc.SoftDelete(c.Request.Context(), role, c.Param("id")); err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── RestoreFolder ──────────────────────

// POST /api/v1/folders/:id/restore
func (h *FolderHandler) RestoreFolder(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	folder, err := h.folderSvc.Restore(c.Request.Context(), role, c.Param("id"))
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, folder)
}

// ────────────────────── DeleteFolder ──────────────────────

// DELETE /api/v1/folders/:id（硬删除，仅 HR/管理员）
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.folderSvc.Delete(c.Request.Context(), role, c.Param("id")); err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── CreateList ──────────────────────

// POST /api/v1/folders/:id/lists
func (h *FolderHandler) CreateList(c *gin.Context) {
	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.folderSvc.CreateList(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.Created(c, list)
}

// ────────────────────── ListLists ──────────────────────

// GET /api/v1/folders/:id/lists
func (h *FolderHandler) ListLists(c *gin.Context) {
	lists, err := h.folderSvc.ListLists(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, gin.H{"list": lists})
}

// ────────────────────── UpdateList ──────────────────────

// PUT /api/v1/folders/lists/:list_id
func (h *FolderHandler) UpdateList(c *gin.Context) {
	var req dto.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.folderSvc.UpdateList(c.Request.Context(), c.Param("list_id"), &req)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, list)
}

// ────────────────────── DeleteList ──────────────────────

// DELETE /api/v1/folders/lists/:list_id
func (h *FolderHandler) DeleteList(c *gin.Context) {
	if err := h.folderSvc.DeleteList(c.Request.Context(), c.Param("list_id")); err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── UploadFile ──────────────────────

// POST /api/v1/folders/:id/files（multipart 表单，字段 file + name）
func (h *FolderHandler) UploadFile(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}
	if fileHeader.Size > maxFolderFileSize {
		response.BadRequest(c, 19001, "文件超过大小上限")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "无法读取上传文件")
		return
	}
	defer file.Close()

	resp, err := h.fileSvc.Upload(
		c.Request.Context(), empID, c.Param("id"),
		c.PostForm("name"), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), file, fileHeader.Size,
	)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.Created(c, resp)
}

// ────────────────────── ListFiles ──────────────────────

// GET /api/v1/folders/:id/files
func (h *FolderHandler) ListFiles(c *gin.Context) {
	files, err := h.fileSvc.ListByFolder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, gin.H{"list": files})
}

// ────────────────────── GetFile ──────────────────────

// GET /api/v1/folders/files/:file_id
func (h *FolderHandler) GetFile(c *gin.Context) {
	file, err := h.fileSvc.GetByID(c.Request.Context(), c.Param("file_id"))
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, file)
}

// ────────────────────── UpdateFile ──────────────────────

// PUT /api/v1/folders/files/:file_id（重命名或在同项目内移动）
func (h *FolderHandler) UpdateFile(c *gin.Context) {
	var req dto.UpdateFolderFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	file, err := h.fileSvc.Update(c.Request.Context(), c.Param("file_id"), &req)
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, file)
}

// ────────────────────── GetFileDownloadURL ──────────────────────

// GET /api/v1/folders/files/:file_id/download-url
func (h *FolderHandler) GetFileDownloadURL(c *gin.Context) {
	url, err := h.fileSvc.DownloadURL(c.Request.Context(), c.Param("file_id"))
	if err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, gin.H{"url": url})
}

// ────────────────────── DeleteFile ──────────────────────

// DELETE /api/v1/folders/files/:file_id
func (h *FolderHandler) DeleteFile(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.fileSvc.Delete(c.Request.Context(), role, c.Param("file_id")); err != nil {
		h.handleFolderError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleFolderError 统一处理文件夹模块业务错误
func (h *FolderHandler) handleFolderError(c *gin.Context, err error) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		writeFieldError(c, fe, 18001)
		return
	}
	switch {
	case errors.Is(err, service.ErrFolderNotFound):
		response.NotFound(c, 18002, "文件夹不存在")
	case errors.Is(err, service.ErrFolderTitleExists):
		response.Conflict(c, 18003, "同级下已存在同名文件夹")
	case errors.Is(err, service.ErrFolderCrossProject):
		response.BadRequest(c, 18004, "不能移动到其他项目的文件夹下")
	case errors.Is(err, service.ErrFolderMoveCycle):
		response.BadRequest(c, 18005, "不能移动到自身或自身的子孙节点下")
	case errors.Is(err, service.ErrListNotFound):
		response.NotFound(c, 18006, "清单不存在")
	case errors.Is(err, service.ErrFolderFileNotFound):
		response.NotFound(c, 19004, "附件不存在")
	case errors.Is(err, service.ErrStorageUnavailable):
		response.ErrorWithDetails(c, 503, 19003, "对象存储未启用", nil)
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 16002, "项目不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/folder_handler.go
