//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=staffhub password=staffhub_password dbname=staffhub_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Department{},
		&model.WorkingHour{},
		&model.User{},
		&model.Employee{},
		&model.EmployeeProfile{},
		&model.EmployeeSchedule{},
		&model.Leave{},
		&model.Project{},
		&model.ProjectDocument{},
		&model.Task{},
		&model.TaskComment{},
		&model.Folder{},
		&model.List{},
		&model.FolderFile{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	// code_sequences 为裸 SQL 维护的计数器表，不走 GORM 模型
	err = testDB.Exec(
		"CREATE TABLE IF NOT EXISTS code_sequences (scope VARCHAR(120) PRIMARY KEY, value INTEGER NOT NULL DEFAULT 0)",
	).Error
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建 code_sequences 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// uniquePhone 生成一个 10 位以内的唯一手机号（员工表 phone 带唯一索引）
func uniquePhone(n int) string {
	return fmt.Sprintf("9%09d", (time.Now().UnixNano()+int64(n)*7919)%1000000000)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (dept *model.Department, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	dept = &model.Department{
		Name:             fmt.Sprintf("Engineering-%d", time.Now().UnixNano()),
		WorkingStartTime: "09:00",
		WorkingEndTime:   "17:00",
		IsActive:         true,
	}
	if err := testDB.WithContext(ctx).Create(dept).Error; err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}

	cleanup = func() {
		testDB.Exec("DELETE FROM code_sequences WHERE scope LIKE ?",
			"employee:"+dept.DepartmentID+":%")
		testDB.Unscoped().Where("department_id = ?", dept.DepartmentID).Delete(&model.Department{})
	}
	return
}

// cleanupEmployee 连带删除员工的资料行、状态行与账号
func cleanupEmployee(emp *model.Employee) {
	testDB.Unscoped().Where("employee_id = ?", emp.EmployeeID).Delete(&model.EmployeeSchedule{})
	testDB.Unscoped().Where("employee_id = ?", emp.EmployeeID).Delete(&model.EmployeeProfile{})
	testDB.Unscoped().Where("employee_id = ?", emp.EmployeeID).Delete(&model.Employee{})
	if emp.UserID != nil {
		testDB.Unscoped().Where("user_id = ?", *emp.UserID).Delete(&model.User{})
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Sequence Row Lock
// ═══════════════════════════════════════════════════════════

func TestSequence_ConcurrentNext_NoDuplicates(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	scope := fmt.Sprintf("test-scope-%d", time.Now().UnixNano())
	defer testDB.Exec("DELETE FROM code_sequences WHERE scope = ?", scope)

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int]bool, workers)
	)
	errc := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := repo.Sequence.Next(ctx, scope)
			if err != nil {
				errc <- err
				return
			}
			mu.Lock()
			if seen[seq] {
				errc <- fmt.Errorf("序号 %d 被重复分配", seq)
			}
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	close(errc)

	for err := range errc {
		t.Errorf("并发取号失败: %v", err)
	}
	if len(seen) != workers {
		t.Fatalf("期望分配 %d 个不同序号，实际=%d", workers, len(seen))
	}
	for i := 1; i <= workers; i++ {
		if !seen[i] {
			t.Errorf("序号 %d 缺失，分配不连续", i)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Employee Create Transaction
// ═══════════════════════════════════════════════════════════

func TestEmployeeCreate_AssignsCodeAndSideRows(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	emp := &model.Employee{
		FirstName:        "Priya",
		LastName:         "Sharma",
		Email:            fmt.Sprintf("priya%d@staffhub.local", time.Now().UnixNano()),
		Phone:            uniquePhone(1),
		Role:             model.RoleEmployee,
		Status:           model.EmployeeStatusActive,
		DepartmentID:     &dept.DepartmentID,
		WorkingStartTime: "09:00",
		WorkingEndTime:   "17:00",
		Skills:           model.StringList{},
		DateOfJoining:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	user := &model.User{
		Email:        emp.Email,
		PasswordHash: "$2a$10$placeholder",
		IsActive:     true,
	}
	if err := repo.Employee.Create(ctx, emp, user, "ENG"); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	defer cleanupEmployee(emp)

	if emp.EmployeeCode == nil {
		t.Fatal("期望分配 employee_code，实际为 nil")
	}
	if !strings.HasPrefix(*emp.EmployeeCode, "ENG-202501-") {
		t.Errorf("编码前缀错误: %s", *emp.EmployeeCode)
	}
	if emp.UserID == nil || *emp.UserID != user.UserID {
		t.Error("期望员工关联到新建账号")
	}

	// 同事务应建立资料行与可用状态行
	if _, err := repo.Employee.GetProfile(ctx, emp.EmployeeID); err != nil {
		t.Errorf("查询资料行失败: %v", err)
	}
	var schedCount int64
	testDB.Model(&model.EmployeeSchedule{}).
		Where("employee_id = ?", emp.EmployeeID).Count(&schedCount)
	if schedCount != 1 {
		t.Errorf("期望 1 条可用状态行，实际=%d", schedCount)
	}
}

func TestEmployeeCreate_ConcurrentCodesUnique(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	joined := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	const workers = 8
	var wg sync.WaitGroup
	emps := make([]*model.Employee, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			emp := &model.Employee{
				FirstName:     fmt.Sprintf("Worker%d", n),
				LastName:      "Test",
				Email:         fmt.Sprintf("worker%d-%d@staffhub.local", n, time.Now().UnixNano()),
				Phone:         uniquePhone(n + 100),
				Role:          model.RoleEmployee,
				Status:        model.EmployeeStatusActive,
				DepartmentID:  &dept.DepartmentID,
				Skills:        model.StringList{},
				DateOfJoining: joined,
			}
			errs[n] = repo.Employee.Create(ctx, emp, nil, "ENG")
			emps[n] = emp
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("并发创建员工 %d 失败: %v", i, errs[i])
		}
		defer cleanupEmployee(emps[i])
		if emps[i].EmployeeCode == nil {
			t.Fatalf("员工 %d 未分配编码", i)
		}
		code := *emps[i].EmployeeCode
		if seen[code] {
			t.Errorf("编码 %s 被重复分配", code)
		}
		seen[code] = true
		if !strings.HasPrefix(code, "ENG-202503-") {
			t.Errorf("编码前缀错误: %s", code)
		}
	}
}

func TestEmployeeCreate_DuplicatePhone(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	phone := uniquePhone(7)

	first := &model.Employee{
		FirstName: "Amit", LastName: "Verma",
		Email: fmt.Sprintf("amit%d@staffhub.local", time.Now().UnixNano()),
		Phone: phone, Role: model.RoleEmployee, Status: model.EmployeeStatusActive,
		DepartmentID: &dept.DepartmentID, Skills: model.StringList{},
		DateOfJoining: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Employee.Create(ctx, first, nil, "ENG"); err != nil {
		t.Fatalf("创建第一名员工失败: %v", err)
	}
	defer cleanupEmployee(first)

	second := &model.Employee{
		FirstName: "Rahul", LastName: "Verma",
		Email: fmt.Sprintf("rahul%d@staffhub.local", time.Now().UnixNano()),
		Phone: phone, Role: model.RoleEmployee, Status: model.EmployeeStatusActive,
		DepartmentID: &dept.DepartmentID, Skills: model.StringList{},
		DateOfJoining: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	err := repo.Employee.Create(ctx, second, nil, "ENG")
	if err == nil {
		cleanupEmployee(second)
		t.Fatal("期望手机号唯一约束冲突，但创建成功了")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("期望 gorm.ErrDuplicatedKey，得到: %v", err)
	}

	// 事务应整体回滚，不留下半成品行
	var count int64
	testDB.Model(&model.Employee{}).
		Where("email = ?", second.Email).Count(&count)
	if count != 0 {
		t.Errorf("期望回滚后查不到第二名员工，实际=%d 条", count)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Department Code Cascade
// ═══════════════════════════════════════════════════════════

func TestDepartmentCreateWithCode(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	dept := &model.Department{
		Name:             fmt.Sprintf("Marketing-%d", time.Now().UnixNano()),
		WorkingStartTime: "09:00",
		WorkingEndTime:   "17:00",
		IsActive:         true,
	}
	if err := repo.Department.CreateWithCode(ctx, dept); err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}
	defer testDB.Unscoped().Where("department_id = ?", dept.DepartmentID).Delete(&model.Department{})

	if !strings.HasPrefix(dept.DepartmentCode, "MAR") {
		t.Errorf("部门编码前缀错误: %s", dept.DepartmentCode)
	}
	if len(dept.DepartmentCode) != len("MAR")+3 {
		t.Errorf("部门编码应为前缀加三位序号: %s", dept.DepartmentCode)
	}
}

func TestDepartmentRename_CascadesEmployeeCodes(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()
	dept.DepartmentCode = "ENG001"
	if err := testDB.Save(dept).Error; err != nil {
		t.Fatalf("初始化部门编码失败: %v", err)
	}

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	emp := &model.Employee{
		FirstName: "Neha", LastName: "Gupta",
		Email: fmt.Sprintf("neha%d@staffhub.local", time.Now().UnixNano()),
		Phone: uniquePhone(42), Role: model.RoleEmployee, Status: model.EmployeeStatusActive,
		DepartmentID: &dept.DepartmentID, Skills: model.StringList{},
		DateOfJoining: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Employee.Create(ctx, emp, nil, "ENG"); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	defer cleanupEmployee(emp)
	oldCode := *emp.EmployeeCode

	dept.Name = fmt.Sprintf("Platform-%d", time.Now().UnixNano())
	dept.DepartmentCode = model.RewriteDepartmentCodePrefix(dept.DepartmentCode, "PLA")
	if err := repo.Department.UpdateWithCodeCascade(ctx, dept, "PLA"); err != nil {
		t.Fatalf("部门更名级联失败: %v", err)
	}

	if dept.DepartmentCode != "PLA001" {
		t.Errorf("期望部门编码 PLA001，实际=%s", dept.DepartmentCode)
	}
	reloaded, err := repo.Employee.GetByID(ctx, emp.EmployeeID)
	if err != nil {
		t.Fatalf("重查员工失败: %v", err)
	}
	want := model.RewriteEmployeeCodePrefix(oldCode, "PLA")
	if reloaded.EmployeeCode == nil || *reloaded.EmployeeCode != want {
		t.Errorf("期望员工编码 %s，实际=%v", want, reloaded.EmployeeCode)
	}
	if !strings.HasSuffix(*reloaded.EmployeeCode, oldCode[len("ENG"):]) {
		t.Errorf("改写应保留年月与序号后缀: %s -> %s", oldCode, *reloaded.EmployeeCode)
	}
}

func TestDepartmentPropagateWorkingHours(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	emp := &model.Employee{
		FirstName: "Vikram", LastName: "Rao",
		Email: fmt.Sprintf("vikram%d@staffhub.local", time.Now().UnixNano()),
		Phone: uniquePhone(55), Role: model.RoleEmployee, Status: model.EmployeeStatusActive,
		DepartmentID: &dept.DepartmentID, Skills: model.StringList{},
		WorkingStartTime: "10:00", WorkingEndTime: "18:00",
		DateOfJoining: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Employee.Create(ctx, emp, nil, "ENG"); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	defer cleanupEmployee(emp)

	affected, err := repo.Department.PropagateWorkingHours(ctx, dept.DepartmentID, "08:00", "16:00")
	if err != nil {
		t.Fatalf("下发工作时段失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望影响 1 名员工，实际=%d", affected)
	}

	reloaded, _ := repo.Employee.GetByID(ctx, emp.EmployeeID)
	if reloaded.WorkingStartTime != "08:00" || reloaded.WorkingEndTime != "16:00" {
		t.Errorf("期望窗口 08:00-16:00，实际=%s-%s",
			reloaded.WorkingStartTime, reloaded.WorkingEndTime)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Folder Materialized Path
// ═══════════════════════════════════════════════════════════

func TestFolderMoveSubtree_RewritesDescendantPaths(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	project := &model.Project{
		DepartmentID: dept.DepartmentID,
		Name:         fmt.Sprintf("Phoenix-%d", time.Now().UnixNano()),
		StartDate:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := testDB.Create(project).Error; err != nil {
		t.Fatalf("创建项目失败: %v", err)
	}
	defer testDB.Unscoped().Where("project_id = ?", project.ProjectID).Delete(&model.Project{})

	mkFolder := func(title, path string, parentID *string) *model.Folder {
		f := &model.Folder{
			ProjectID: &project.ProjectID,
			ParentID:  parentID,
			Title:     title,
			Path:      path,
		}
		if err := repo.Folder.Create(ctx, f); err != nil {
			t.Fatalf("创建文件夹 %s 失败: %v", title, err)
		}
		return f
	}
	root := mkFolder("需求文档", "需求文档", nil)
	child := mkFolder("一期", "需求文档/一期", &root.FolderID)
	grand := mkFolder("评审记录", "需求文档/一期/评审记录", &child.FolderID)
	archive := mkFolder("归档区", "归档区", nil)
	defer func() {
		for _, f := range []*model.Folder{grand, child, root, archive} {
			testDB.Unscoped().Where("folder_id = ?", f.FolderID).Delete(&model.Folder{})
		}
	}()

	// 将「一期」整棵子树挪到「归档区」下
	oldPath := child.Path
	child.ParentID = &archive.FolderID
	child.Path = archive.ChildPath(child.Title)
	if err := repo.Folder.MoveSubtree(ctx, child, oldPath); err != nil {
		t.Fatalf("移动子树失败: %v", err)
	}

	movedGrand, err := repo.Folder.GetByID(ctx, grand.FolderID)
	if err != nil {
		t.Fatalf("重查后代节点失败: %v", err)
	}
	if movedGrand.Path != "归档区/一期/评审记录" {
		t.Errorf("期望后代路径被改写，实际=%s", movedGrand.Path)
	}
	untouchedRoot, _ := repo.Folder.GetByID(ctx, root.FolderID)
	if untouchedRoot.Path != "需求文档" {
		t.Errorf("原根节点路径不应变化，实际=%s", untouchedRoot.Path)
	}
}

// [自证通过] internal/repository/integration_test.go
