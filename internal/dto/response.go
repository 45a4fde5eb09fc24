package dto

// ── 通用响应 ──

// PageResponse 分页响应包装
type PageResponse struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    interface{} `json:"items"`
}

// IDResponse 仅返回主键的响应
type IDResponse struct {
	ID string `json:"id"`
}

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 登录身份响应（脱敏）
type UserResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
}

// [自证通过] internal/dto/response.go
