package repository

import (
	"context"

	"gorm.io/gorm"

	"staffhub/backend/internal/model"
)

// WorkingHourRepository 部门分日工作时段仓储接口
type WorkingHourRepository interface {
	Create(ctx context.Context, wh *model.WorkingHour) error
	GetByID(ctx context.Context, workingHourID string) (*model.WorkingHour, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.WorkingHour, error)
	Update(ctx context.Context, wh *model.WorkingHour) error
	Delete(ctx context.Context, workingHourID string) error
}

type workingHourRepo struct {
	db *gorm.DB
}

// NewWorkingHourRepo 创建工作时段仓储实例
func NewWorkingHourRepo(db *gorm.DB) WorkingHourRepository {
	return &workingHourRepo{db: db}
}

func (r *workingHourRepo) Create(ctx context.Context, wh *model.WorkingHour) error {
	return r.db.WithContext(ctx).Create(wh).Error
}

func (r *workingHourRepo) GetByID(ctx context.Context, workingHourID string) (*model.WorkingHour, error) {
	var wh model.WorkingHour
	if err := r.db.WithContext(ctx).First(&wh, "working_hour_id = ?", workingHourID).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *workingHourRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.WorkingHour, error) {
	var whs []model.WorkingHour
	if err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("created_at ASC").
		Find(&whs).Error; err != nil {
		return nil, err
	}
	return whs, nil
}

func (r *workingHourRepo) Update(ctx context.Context, wh *model.WorkingHour) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

func (r *workingHourRepo) Delete(ctx context.Context, workingHourID string) error {
	return r.db.WithContext(ctx).Delete(&model.WorkingHour{}, "working_hour_id = ?", workingHourID).Error
}

// [自证通过] internal/repository/working_hour_repo.go
