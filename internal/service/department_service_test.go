package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"staffhub/backend/internal/dto"
)

// ── 测试辅助 ──

func setupTestDepartmentService() (DepartmentService, *testEnv) {
	env := newTestEnv()
	svc := NewDepartmentService(env.repo, zap.NewNop())
	return svc, env
}

func strPtr(s string) *string { return &s }

// ── Create 测试 ──

func TestDepartmentService_Create_GeneratesCode(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	result, err := svc.Create(context.Background(),
		&dto.CreateDepartmentRequest{Name: "Engineering"}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.DepartmentCode != "ENG001" {
		t.Errorf("期望编码=ENG001，实际=%s", result.DepartmentCode)
	}
	if result.WorkingStartTime != "09:00" || result.WorkingEndTime != "17:00" {
		t.Errorf("期望默认工作窗口 09:00-17:00，实际=%s-%s",
			result.WorkingStartTime, result.WorkingEndTime)
	}
}

func TestDepartmentService_Create_SequenceIncrements(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	first, err := svc.Create(context.Background(),
		&dto.CreateDepartmentRequest{Name: "Engineering"}, "admin-001")
	if err != nil {
		t.Fatalf("第一次 Create 应成功: %v", err)
	}
	second, err := svc.Create(context.Background(),
		&dto.CreateDepartmentRequest{Name: "Marketing"}, "admin-001")
	if err != nil {
		t.Fatalf("第二次 Create 应成功: %v", err)
	}
	if first.DepartmentCode != "ENG001" {
		t.Errorf("期望第一个编码=ENG001，实际=%s", first.DepartmentCode)
	}
	if second.DepartmentCode != "MAR002" {
		t.Errorf("期望第二个编码=MAR002（序号全局递增），实际=%s", second.DepartmentCode)
	}
}

func TestDepartmentService_Create_DuplicateName(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	if _, err := svc.Create(context.Background(),
		&dto.CreateDepartmentRequest{Name: "Engineering"}, "admin-001"); err != nil {
		t.Fatalf("第一次 Create 应成功: %v", err)
	}
	_, err := svc.Create(context.Background(),
		&dto.CreateDepartmentRequest{Name: "engineering"}, "admin-001")
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

func TestDepartmentService_Create_ShiftTooLong(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	_, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:             "Engineering",
		WorkingStartTime: "08:00",
		WorkingEndTime:   "18:00",
	}, "admin-001")
	if !errors.Is(err, ErrShiftTooLong) {
		t.Errorf("期望 ErrShiftTooLong，实际: %v", err)
	}
}

func TestDepartmentService_Create_OvernightShiftAllowed(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	// 22:00-06:00 跨午夜折算 8 小时，恰好在上限内
	result, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:             "Nightops",
		WorkingStartTime: "22:00",
		WorkingEndTime:   "06:00",
	}, "admin-001")
	if err != nil {
		t.Fatalf("跨午夜班次应被接受: %v", err)
	}
	if result.WorkingStartTime != "22:00" {
		t.Errorf("期望开始时间=22:00，实际=%s", result.WorkingStartTime)
	}
}

func TestDepartmentService_Create_BadClockFormat(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	_, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:             "Engineering",
		WorkingStartTime: "25:00",
		WorkingEndTime:   "17:00",
	}, "admin-001")
	if !errors.Is(err, ErrInvalidShiftWindow) {
		t.Errorf("期望 ErrInvalidShiftWindow，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestDepartmentService_Update_RenameRewritesCodes(t *testing.T) {
	svc, env := setupTestDepartmentService()
	env.addDepartment("dept-001", "Engineering")
	deptID := "dept-001"
	emp := env.addEmployee("emp-001", "employee", &deptID)
	code := "ENG-202501-001"
	emp.EmployeeCode = &code

	result, err := svc.Update(context.Background(), "dept-001",
		&dto.UpdateDepartmentRequest{Name: strPtr("Marketing")}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.DepartmentCode != "MAR001" {
		t.Errorf("期望部门编码重写为 MAR001，实际=%s", result.DepartmentCode)
	}
	if *emp.EmployeeCode != "MAR-202501-001" {
		t.Errorf("期望成员编码前缀级联改写为 MAR-202501-001，实际=%s", *emp.EmployeeCode)
	}
}

func TestDepartmentService_Update_RenameToExistingName(t *testing.T) {
	svc, env := setupTestDepartmentService()
	env.addDepartment("dept-001", "Engineering")
	env.addDepartment("dept-002", "Marketing")

	_, err := svc.Update(context.Background(), "dept-001",
		&dto.UpdateDepartmentRequest{Name: strPtr("Marketing")}, "admin-001")
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

func TestDepartmentService_Update_HoursPropagateToMembers(t *testing.T) {
	svc, env := setupTestDepartmentService()
	env.addDepartment("dept-001", "Engineering")
	deptID := "dept-001"
	emp := env.addEmployee("emp-001", "employee", &deptID)
	// 成员携带个性化窗口，推送后应被统一覆盖
	emp.WorkingStartTime = "10:00"
	emp.WorkingEndTime = "18:00"

	_, err := svc.Update(context.Background(), "dept-001", &dto.UpdateDepartmentRequest{
		WorkingStartTime: strPtr("08:00"),
		WorkingEndTime:   strPtr("16:00"),
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if emp.WorkingStartTime != "08:00" || emp.WorkingEndTime != "16:00" {
		t.Errorf("期望成员窗口被覆盖为 08:00-16:00，实际=%s-%s",
			emp.WorkingStartTime, emp.WorkingEndTime)
	}
}

func TestDepartmentService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	_, err := svc.Update(context.Background(), "missing",
		&dto.UpdateDepartmentRequest{Name: strPtr("Marketing")}, "admin-001")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestDepartmentService_Delete_BlockedWhenHasMembers(t *testing.T) {
	svc, env := setupTestDepartmentService()
	env.addDepartment("dept-001", "Engineering")
	deptID := "dept-001"
	env.addEmployee("emp-001", "employee", &deptID)

	err := svc.Delete(context.Background(), "dept-001")
	if !errors.Is(err, ErrDepartmentHasMembers) {
		t.Errorf("期望 ErrDepartmentHasMembers，实际: %v", err)
	}
}

func TestDepartmentService_Delete_Success(t *testing.T) {
	svc, env := setupTestDepartmentService()
	env.addDepartment("dept-001", "Engineering")

	if err := svc.Delete(context.Background(), "dept-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := env.depts.depts["dept-001"]; ok {
		t.Error("部门应已被删除")
	}
}

// ── 分日工作时段测试 ──

func TestDepartmentService_CreateWorkingHour_ZeroWindow(t *testing.T) {
	svc, env := setupTestDepartmentService()
	env.addDepartment("dept-001", "Engineering")

	_, err := svc.CreateWorkingHour(context.Background(), &dto.CreateWorkingHourRequest{
		DepartmentID: "dept-001",
		DaysOfWeek:   []string{"monday"},
		StartTime:    "09:00",
		EndTime:      "09:00",
	})
	if !errors.Is(err, ErrInvalidShiftWindow) {
		t.Errorf("期望零时长窗口返回 ErrInvalidShiftWindow，实际: %v", err)
	}
}

func TestDepartmentService_CreateWorkingHour_Success(t *testing.T) {
	svc, env := setupTestDepartmentService()
	env.addDepartment("dept-001", "Engineering")

	wh, err := svc.CreateWorkingHour(context.Background(), &dto.CreateWorkingHourRequest{
		DepartmentID: "dept-001",
		DaysOfWeek:   []string{"saturday", "sunday"},
		StartTime:    "10:00",
		EndTime:      "14:00",
	})
	if err != nil {
		t.Fatalf("CreateWorkingHour 应成功: %v", err)
	}
	if len(wh.DaysOfWeek) != 2 {
		t.Errorf("期望保留 2 个工作日，实际=%d", len(wh.DaysOfWeek))
	}
}

// [自证通过] internal/service/department_service_test.go
