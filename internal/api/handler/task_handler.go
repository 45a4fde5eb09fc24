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

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// ────────────────────── CreateTask ──────────────────────

// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), empID, role, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.Created(c, task)
}

// ────────────────────── ListTasks ──────────────────────

// GET /api/v1/tasks（普通员工仅可见指派给本人的任务）
func (h *TaskHandler) ListTasks(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tasks, err := h.taskSvc.List(c.Request.Context(), empID, role, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, gin.H{"list": tasks})
}

// ────────────────────── GetTask ──────────────────────

// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.GetByID(c.Request.Context(), empID, role, c.Param("id"))
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// ────────────────────── UpdateTask ──────────────────────

// PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), empID, role, c.Param("id"), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// ────────────────────── StartTask ──────────────────────

// POST /api/v1/tasks/:id/start
func (h *TaskHandler) StartTask(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Start(c.Request.Context(), empID, c.Param("id"))
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// ────────────────────── SubmitTask ──────────────────────

// POST /api/v1/tasks/:id/submit
func (h *TaskHandler) SubmitTask(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.SubmitTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Submit(c.Request.Context(), empID, c.Param("id"), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// ────────────────────── ApproveTask ──────────────────────

// POST /api/v1/tasks/:id/approve
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	h.review(c, h.taskSvc.Approve)
}

// ────────────────────── RejectTask ──────────────────────

// POST /api/v1/tasks/:id/reject
func (h *TaskHandler) RejectTask(c *gin.Context) {
	h.review(c, h.taskSvc.Reject)
}

// review 评审类操作的公共流程（通过/驳回）
func (h *TaskHandler) review(c *gin.Context, fn func(ctx context.Context, callerEmpID string, callerRole model.Role, id string, req *dto.ReviewTaskRequest) (*dto.TaskResponse, error)) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.ReviewTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := fn(c.Request.Context(), empID, role, c.Param("id"), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// ────────────────────── CancelTask ──────────────────────

// POST /api/v1/tasks/:id/cancel
func (h *TaskHandler) CancelTask(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Cancel(c.Request.Context(), empID, role, c.Param("id"))
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, task)
}

// ────────────────────── CreateComment ──────────────────────

// POST /api/v1/tasks/:id/comments
func (h *TaskHandler) CreateComment(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	comment, err := h.taskSvc.CreateComment(c.Request.Context(), empID, c.Param("id"), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.Created(c, comment)
}

// ────────────────────── ListComments ──────────────────────

// GET /api/v1/tasks/:id/comments
func (h *TaskHandler) ListComments(c *gin.Context) {
	comments, err := h.taskSvc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, gin.H{"list": comments})
}

// ────────────────────── UpdateComment ──────────────────────

// PUT /api/v1/tasks/comments/:comment_id
func (h *TaskHandler) UpdateComment(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	comment, err := h.taskSvc.UpdateComment(c.Request.Context(), empID, c.Param("comment_id"), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, comment)
}

// ────────────────────── DeleteComment ──────────────────────

// DELETE /api/v1/tasks/comments/:comment_id
func (h *TaskHandler) DeleteComment(c *gin.Context) {
	empID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.taskSvc.DeleteComment(c.Request.Context(), empID, role, c.Param("comment_id")); err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTaskError 统一处理任务模块业务错误
func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		writeFieldError(c, fe, 17001)
		return
	}
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 17002, "任务不存在")
	case errors.Is(err, service.ErrTaskTitleExists):
		response.Conflict(c, 17003, "同项目内已存在同名任务")
	case errors.Is(err, service.ErrTaskNotAssignee):
		response.Forbidden(c, 17004, "只有任务负责人可执行该操作")
	case errors.Is(err, service.ErrTaskBadTransition):
		response.BadRequest(c, 17005, "当前状态不允许该流转")
	case errors.Is(err, service.ErrTaskSelfReview):
		response.Forbidden(c, 17006, "不能评审本人提交的任务")
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, 17007, "评论不存在")
	case errors.Is(err, service.ErrCommentNotAuthor):
		response.Forbidden(c, 17008, "只能修改本人的评论")
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 16002, "项目不存在")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12002, "员工不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/task_handler.go
