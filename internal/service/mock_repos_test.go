package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
)

// ── Mock SequenceRepository ──

type mockSequenceRepo struct {
	counters map[string]int
}

func newMockSequenceRepo() *mockSequenceRepo {
	return &mockSequenceRepo{counters: make(map[string]int)}
}

func (m *mockSequenceRepo) Next(_ context.Context, scope string) (int, error) {
	m.counters[scope]++
	return m.counters[scope], nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%03d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	depts     map[string]*model.Department
	seq       *mockSequenceRepo
	employees *mockEmployeeRepo
}

func newMockDeptRepo(seq *mockSequenceRepo) *mockDeptRepo {
	return &mockDeptRepo{depts: make(map[string]*model.Department), seq: seq}
}

func (m *mockDeptRepo) CreateWithCode(ctx context.Context, dept *model.Department) error {
	n, _ := m.seq.Next(ctx, model.DepartmentCodeScope)
	dept.DepartmentCode = model.FormatDepartmentCode(model.DepartmentPrefix(dept.Name), n)
	if dept.DepartmentID == "" {
		dept.DepartmentID = fmt.Sprintf("dept-%03d", len(m.depts)+1)
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.depts {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context, activeOnly bool) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		if activeOnly && !d.IsActive {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) UpdateWithCodeCascade(_ context.Context, dept *model.Department, newPrefix string) error {
	m.depts[dept.DepartmentID] = dept
	if m.employees == nil {
		return nil
	}
	for _, e := range m.employees.employees {
		if e.DepartmentID == nil || *e.DepartmentID != dept.DepartmentID || e.EmployeeCode == nil {
			continue
		}
		rewritten := model.RewriteEmployeeCodePrefix(*e.EmployeeCode, newPrefix)
		e.EmployeeCode = &rewritten
	}
	return nil
}

func (m *mockDeptRepo) PropagateWorkingHours(_ context.Context, departmentID, start, end string) (int64, error) {
	var n int64
	if m.employees == nil {
		return 0, nil
	}
	for _, e := range m.employees.employees {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			e.WorkingStartTime = start
			e.WorkingEndTime = end
			n++
		}
	}
	return n, nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string) error {
	delete(m.depts, id)
	return nil
}

func (m *mockDeptRepo) CountMembers(_ context.Context, departmentID string) (int64, error) {
	var n int64
	if m.employees == nil {
		return 0, nil
	}
	for _, e := range m.employees.employees {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			n++
		}
	}
	return n, nil
}

// ── Mock WorkingHourRepository ──

type mockWorkingHourRepo struct {
	hours map[string]*model.WorkingHour
}

func newMockWorkingHourRepo() *mockWorkingHourRepo {
	return &mockWorkingHourRepo{hours: make(map[string]*model.WorkingHour)}
}

func (m *mockWorkingHourRepo) Create(_ context.Context, wh *model.WorkingHour) error {
	if wh.WorkingHourID == "" {
		wh.WorkingHourID = fmt.Sprintf("wh-%03d", len(m.hours)+1)
	}
	m.hours[wh.WorkingHourID] = wh
	return nil
}

func (m *mockWorkingHourRepo) GetByID(_ context.Context, id string) (*model.WorkingHour, error) {
	if wh, ok := m.hours[id]; ok {
		return wh, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkingHourRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.WorkingHour, error) {
	var result []model.WorkingHour
	for _, wh := range m.hours {
		if wh.DepartmentID == departmentID {
			result = append(result, *wh)
		}
	}
	return result, nil
}

func (m *mockWorkingHourRepo) Update(_ context.Context, wh *model.WorkingHour) error {
	m.hours[wh.WorkingHourID] = wh
	return nil
}

func (m *mockWorkingHourRepo) Delete(_ context.Context, id string) error {
	delete(m.hours, id)
	return nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	profiles  map[string]*model.EmployeeProfile
	seq       *mockSequenceRepo
	depts     *mockDeptRepo
	schedules *mockScheduleRepo
	users     *mockUserRepo
}

func newMockEmployeeRepo(seq *mockSequenceRepo) *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees: make(map[string]*model.Employee),
		profiles:  make(map[string]*model.EmployeeProfile),
		seq:       seq,
	}
}

func (m *mockEmployeeRepo) Create(ctx context.Context, emp *model.Employee, user *model.User, deptPrefix string) error {
	for _, e := range m.employees {
		if e.Phone == emp.Phone {
			return gorm.ErrDuplicatedKey
		}
	}
	if user != nil {
		user.UserID = fmt.Sprintf("user-emp-%03d", len(m.employees)+1)
		emp.UserID = &user.UserID
		if m.users != nil {
			m.users.users[user.UserID] = user
		}
	}
	if emp.EmployeeID == "" {
		emp.EmployeeID = fmt.Sprintf("emp-%03d", len(m.employees)+1)
	}
	if deptPrefix != "" && emp.DepartmentID != nil && emp.EmployeeCode == nil {
		n, _ := m.seq.Next(ctx, model.EmployeeCodeScope(*emp.DepartmentID, emp.DateOfJoining))
		code := model.FormatEmployeeCode(deptPrefix, emp.DateOfJoining, n)
		emp.EmployeeCode = &code
	}
	m.employees[emp.EmployeeID] = emp
	m.profiles[emp.EmployeeID] = &model.EmployeeProfile{
		ProfileID:  "profile-" + emp.EmployeeID,
		EmployeeID: emp.EmployeeID,
	}
	if m.schedules != nil {
		empID := emp.EmployeeID
		m.schedules.schedules[empID] = &model.EmployeeSchedule{
			ScheduleID:   "sched-" + empID,
			EmployeeID:   &empID,
			Availability: model.AvailabilityAvailable,
		}
	}
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if e.DepartmentID != nil && m.depts != nil {
		if d, ok := m.depts.depts[*e.DepartmentID]; ok {
			e.Department = d
		}
	}
	return e, nil
}

func (m *mockEmployeeRepo) GetByUserID(_ context.Context, userID string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByPhone(_ context.Context, phone string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Phone == phone {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]model.Employee, int64, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if filter.DepartmentID != "" && (e.DepartmentID == nil || *e.DepartmentID != filter.DepartmentID) {
			continue
		}
		if filter.Role != "" && string(e.Role) != filter.Role {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (m *mockEmployeeRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		var a, b string
		if result[i].EmployeeCode != nil {
			a = *result[i].EmployeeCode
		}
		if result[j].EmployeeCode != nil {
			b = *result[j].EmployeeCode
		}
		return a < b
	})
	return result, nil
}

func (m *mockEmployeeRepo) ListByRoles(_ context.Context, roles []model.Role) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if e.Status != model.EmployeeStatusActive {
			continue
		}
		for _, r := range roles {
			if e.Role == r {
				result = append(result, *e)
				break
			}
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) ExistsNameInDepartment(_ context.Context, firstName, lastName, departmentID, excludeID string) (bool, error) {
	for _, e := range m.employees {
		if e.EmployeeID == excludeID {
			continue
		}
		if e.DepartmentID == nil || *e.DepartmentID != departmentID {
			continue
		}
		if strings.EqualFold(e.FirstName, firstName) && strings.EqualFold(e.LastName, lastName) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) GetProfile(_ context.Context, employeeID string) (*model.EmployeeProfile, error) {
	if p, ok := m.profiles[employeeID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) UpdateProfile(_ context.Context, profile *model.EmployeeProfile) error {
	m.profiles[profile.EmployeeID] = profile
	return nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves    map[string]*model.Leave
	employees *mockEmployeeRepo
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[string]*model.Leave)}
}

func (m *mockLeaveRepo) attachEmployee(l *model.Leave) {
	if m.employees != nil {
		if e, ok := m.employees.employees[l.EmployeeID]; ok {
			l.Employee = e
		}
	}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.Leave) error {
	if leave.LeaveID == "" {
		leave.LeaveID = fmt.Sprintf("leave-%03d", len(m.leaves)+1)
	}
	m.leaves[leave.LeaveID] = leave
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id string) (*model.Leave, error) {
	l, ok := m.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.attachEmployee(l)
	return l, nil
}

func (m *mockLeaveRepo) ListByEmployee(_ context.Context, employeeID string, since time.Time) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if l.EmployeeID != employeeID {
			continue
		}
		if !since.IsZero() && l.StartDate.Before(since) {
			continue
		}
		m.attachEmployee(l)
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLeaveRepo) ListAll(_ context.Context, status string) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if status != "" && l.Status != status {
			continue
		}
		m.attachEmployee(l)
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLeaveRepo) ListApproved(_ context.Context) ([]model.Leave, error) {
	return m.ListAll(context.Background(), model.LeaveStatusApproved)
}

func (m *mockLeaveRepo) HasApprovedLeaveOn(_ context.Context, employeeID string, day time.Time) (bool, error) {
	for _, l := range m.leaves {
		if l.EmployeeID == employeeID && l.Status == model.LeaveStatusApproved && l.Covers(day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeaveRepo) Update(_ context.Context, leave *model.Leave) error {
	m.leaves[leave.LeaveID] = leave
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.EmployeeSchedule
	employees *mockEmployeeRepo
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.EmployeeSchedule)}
}

func (m *mockScheduleRepo) attachEmployee(s *model.EmployeeSchedule) {
	if s.EmployeeID != nil && m.employees != nil {
		if e, ok := m.employees.employees[*s.EmployeeID]; ok {
			s.Employee = e
		}
	}
}

func (m *mockScheduleRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.EmployeeSchedule, error) {
	s, ok := m.schedules[employeeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.attachEmployee(s)
	return s, nil
}

func (m *mockScheduleRepo) GetOrCreate(_ context.Context, employeeID string) (*model.EmployeeSchedule, error) {
	if s, ok := m.schedules[employeeID]; ok {
		return s, nil
	}
	id := employeeID
	s := &model.EmployeeSchedule{
		ScheduleID:   "sched-" + employeeID,
		EmployeeID:   &id,
		Availability: model.AvailabilityAvailable,
	}
	m.schedules[employeeID] = s
	return s, nil
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.EmployeeSchedule, error) {
	var result []model.EmployeeSchedule
	for _, s := range m.schedules {
		m.attachEmployee(s)
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockScheduleRepo) UpdateAvailability(_ context.Context, scheduleID, availability string) error {
	for _, s := range m.schedules {
		if s.ScheduleID == scheduleID {
			s.Availability = availability
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects  map[string]*model.Project
	members   map[string][]string
	docs      map[string]*model.ProjectDocument
	employees *mockEmployeeRepo
}

func (m *mockProjectRepo) attachParticipants(p *model.Project) {
	if m.employees == nil {
		return
	}
	if p.ManagerID != nil {
		if e, ok := m.employees.employees[*p.ManagerID]; ok {
			p.Manager = e
		}
	}
	if p.TeamLeadID != nil {
		if e, ok := m.employees.employees[*p.TeamLeadID]; ok {
			p.TeamLead = e
		}
	}
	p.Members = nil
	for _, id := range m.members[p.ProjectID] {
		if e, ok := m.employees.employees[id]; ok {
			p.Members = append(p.Members, *e)
		}
	}
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{
		projects: make(map[string]*model.Project),
		members:  make(map[string][]string),
		docs:     make(map[string]*model.ProjectDocument),
	}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project, memberIDs []string) error {
	if project.ProjectID == "" {
		project.ProjectID = fmt.Sprintf("proj-%03d", len(m.projects)+1)
	}
	m.projects[project.ProjectID] = project
	m.members[project.ProjectID] = memberIDs
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		m.attachParticipants(p)
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) GetByName(_ context.Context, name string) (*model.Project, error) {
	for _, p := range m.projects {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context, vis repository.ProjectVisibility) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if vis.All {
			result = append(result, *p)
			continue
		}
		if p.ManagerID != nil && *p.ManagerID == vis.EmployeeID {
			result = append(result, *p)
			continue
		}
		if p.TeamLeadID != nil && *p.TeamLeadID == vis.EmployeeID {
			result = append(result, *p)
			continue
		}
		for _, id := range m.members[p.ProjectID] {
			if id == vis.EmployeeID {
				result = append(result, *p)
				break
			}
		}
	}
	return result, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) ReplaceMembers(_ context.Context, project *model.Project, memberIDs []string) error {
	m.members[project.ProjectID] = memberIDs
	return nil
}

func (m *mockProjectRepo) IsMember(_ context.Context, projectID, employeeID string) (bool, error) {
	for _, id := range m.members[projectID] {
		if id == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	delete(m.members, id)
	return nil
}

func (m *mockProjectRepo) AddDocument(_ context.Context, doc *model.ProjectDocument) error {
	if doc.DocumentID == "" {
		doc.DocumentID = fmt.Sprintf("doc-%03d", len(m.docs)+1)
	}
	m.docs[doc.DocumentID] = doc
	return nil
}

func (m *mockProjectRepo) GetDocument(_ context.Context, id string) (*model.ProjectDocument, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) ListDocuments(_ context.Context, projectID string) ([]model.ProjectDocument, error) {
	var result []model.ProjectDocument
	for _, d := range m.docs {
		if d.ProjectID != nil && *d.ProjectID == projectID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) DeleteDocument(_ context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks     map[string]*model.Task
	employees *mockEmployeeRepo
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) attachAssignee(t *model.Task) {
	if t.AssignedTo != nil && m.employees != nil {
		if e, ok := m.employees.employees[*t.AssignedTo]; ok {
			t.Assignee = e
		}
	}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		task.TaskID = fmt.Sprintf("task-%03d", len(m.tasks)+1)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.attachAssignee(t)
	return t, nil
}

func (m *mockTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if !t.IsActive {
			continue
		}
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != filter.AssignedTo) {
			continue
		}
		m.attachAssignee(t)
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTaskRepo) ExistsTitleInProject(_ context.Context, projectID, title, excludeID string) (bool, error) {
	for _, t := range m.tasks {
		if t.TaskID == excludeID {
			continue
		}
		if t.ProjectID == projectID && strings.EqualFold(t.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) MarkOverdue(_ context.Context, now time.Time) ([]model.Task, error) {
	var affected []model.Task
	for _, t := range m.tasks {
		if !t.IsActive || !t.DueDate.Before(now) {
			continue
		}
		if t.Status != model.TaskStatusTodo && t.Status != model.TaskStatusInProgress {
			continue
		}
		t.Status = model.TaskStatusOverdue
		m.attachAssignee(t)
		affected = append(affected, *t)
	}
	return affected, nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

// ── Mock TaskCommentRepository ──

type mockCommentRepo struct {
	comments  map[string]*model.TaskComment
	mentions  map[string][]string
	employees *mockEmployeeRepo
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{
		comments: make(map[string]*model.TaskComment),
		mentions: make(map[string][]string),
	}
}

func (m *mockCommentRepo) attach(c *model.TaskComment) {
	if m.employees == nil {
		return
	}
	if a, ok := m.employees.employees[c.AuthorID]; ok {
		c.Author = a
	}
	c.Mentions = nil
	for _, id := range m.mentions[c.CommentID] {
		if e, ok := m.employees.employees[id]; ok {
			c.Mentions = append(c.Mentions, *e)
		}
	}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.TaskComment, mentionIDs []string) error {
	if comment.CommentID == "" {
		comment.CommentID = fmt.Sprintf("comment-%03d", len(m.comments)+1)
	}
	m.comments[comment.CommentID] = comment
	m.mentions[comment.CommentID] = mentionIDs
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id string) (*model.TaskComment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.attach(c)
	return c, nil
}

func (m *mockCommentRepo) ListByTask(_ context.Context, taskID string) ([]model.TaskComment, error) {
	var result []model.TaskComment
	for _, c := range m.comments {
		if c.TaskID == taskID {
			m.attach(c)
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCommentRepo) Update(_ context.Context, comment *model.TaskComment, mentionIDs []string) error {
	m.comments[comment.CommentID] = comment
	m.mentions[comment.CommentID] = mentionIDs
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id string) error {
	delete(m.comments, id)
	delete(m.mentions, id)
	return nil
}

// ── Mock FolderRepository ──

type mockFolderRepo struct {
	folders map[string]*model.Folder
}

func newMockFolderRepo() *mockFolderRepo {
	return &mockFolderRepo{folders: make(map[string]*model.Folder)}
}

func (m *mockFolderRepo) Create(_ context.Context, folder *model.Folder) error {
	if folder.FolderID == "" {
		folder.FolderID = fmt.Sprintf("folder-%03d", len(m.folders)+1)
	}
	m.folders[folder.FolderID] = folder
	return nil
}

func (m *mockFolderRepo) GetByID(_ context.Context, id string) (*model.Folder, error) {
	if f, ok := m.folders[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFolderRepo) ListChildren(_ context.Context, projectID string, parentID *string, includeDeleted bool) ([]model.Folder, error) {
	var result []model.Folder
	for _, f := range m.folders {
		if f.ProjectID == nil || *f.ProjectID != projectID {
			continue
		}
		if parentID == nil && f.ParentID != nil {
			continue
		}
		if parentID != nil && (f.ParentID == nil || *f.ParentID != *parentID) {
			continue
		}
		if !includeDeleted && f.IsDeleted {
			continue
		}
		result = append(result, *f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockFolderRepo) ListSubtree(_ context.Context, folder *model.Folder) ([]model.Folder, error) {
	var result []model.Folder
	for _, f := range m.folders {
		if folder.IsAncestorOf(f) {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

func (m *mockFolderRepo) Search(_ context.Context, projectID, keyword string) ([]model.Folder, error) {
	var result []model.Folder
	for _, f := range m.folders {
		if f.ProjectID == nil || *f.ProjectID != projectID || f.IsDeleted {
			continue
		}
		if strings.Contains(strings.ToLower(f.Title), strings.ToLower(keyword)) {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFolderRepo) ExistsSiblingTitle(_ context.Context, projectID string, parentID *string, title, excludeID string) (bool, error) {
	for _, f := range m.folders {
		if f.FolderID == excludeID {
			continue
		}
		if f.ProjectID == nil || *f.ProjectID != projectID {
			continue
		}
		if parentID == nil && f.ParentID != nil {
			continue
		}
		if parentID != nil && (f.ParentID == nil || *f.ParentID != *parentID) {
			continue
		}
		if strings.EqualFold(f.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFolderRepo) Update(_ context.Context, folder *model.Folder) error {
	m.folders[folder.FolderID] = folder
	return nil
}

func (m *mockFolderRepo) MoveSubtree(_ context.Context, folder *model.Folder, oldPath string) error {
	m.folders[folder.FolderID] = folder
	prefix := oldPath + "/"
	for _, f := range m.folders {
		if f.FolderID == folder.FolderID {
			continue
		}
		if f.ProjectID != nil && folder.ProjectID != nil && *f.ProjectID == *folder.ProjectID &&
			strings.HasPrefix(f.Path, prefix) {
			f.Path = folder.Path + strings.TrimPrefix(f.Path, oldPath)
		}
	}
	return nil
}

func (m *mockFolderRepo) Delete(_ context.Context, id string) error {
	delete(m.folders, id)
	return nil
}

// ── Mock ListRepository ──

type mockListRepo struct {
	lists map[string]*model.List
}

func newMockListRepo() *mockListRepo {
	return &mockListRepo{lists: make(map[string]*model.List)}
}

func (m *mockListRepo) Create(_ context.Context, list *model.List) error {
	if list.ListID == "" {
		list.ListID = fmt.Sprintf("list-%03d", len(m.lists)+1)
	}
	m.lists[list.ListID] = list
	return nil
}

func (m *mockListRepo) GetByID(_ context.Context, id string) (*model.List, error) {
	if l, ok := m.lists[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockListRepo) ListByFolder(_ context.Context, folderID string) ([]model.List, error) {
	var result []model.List
	for _, l := range m.lists {
		if l.FolderID == folderID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockListRepo) Update(_ context.Context, list *model.List) error {
	m.lists[list.ListID] = list
	return nil
}

func (m *mockListRepo) Delete(_ context.Context, id string) error {
	delete(m.lists, id)
	return nil
}

// ── Mock FolderFileRepository ──

type mockFolderFileRepo struct {
	files map[string]*model.FolderFile
}

func newMockFolderFileRepo() *mockFolderFileRepo {
	return &mockFolderFileRepo{files: make(map[string]*model.FolderFile)}
}

func (m *mockFolderFileRepo) Create(_ context.Context, file *model.FolderFile) error {
	if file.FileID == "" {
		file.FileID = fmt.Sprintf("file-%03d", len(m.files)+1)
	}
	m.files[file.FileID] = file
	return nil
}

func (m *mockFolderFileRepo) GetByID(_ context.Context, id string) (*model.FolderFile, error) {
	if f, ok := m.files[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFolderFileRepo) ListByFolder(_ context.Context, folderID string) ([]model.FolderFile, error) {
	var result []model.FolderFile
	for _, f := range m.files {
		if f.FolderID == folderID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFolderFileRepo) Update(_ context.Context, file *model.FolderFile) error {
	m.files[file.FileID] = file
	return nil
}

func (m *mockFolderFileRepo) Delete(_ context.Context, id string) error {
	delete(m.files, id)
	return nil
}

// ── Mock Notifier ──

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type mockNotifier struct {
	sent []sentMail
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{}
}

func (m *mockNotifier) NotifyMail(_ context.Context, to []string, subject, body string) {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
}

// ── 测试环境组装 ──

// testEnv 汇集全部 Mock 仓储，便于各测试按需取用
type testEnv struct {
	seq       *mockSequenceRepo
	users     *mockUserRepo
	depts     *mockDeptRepo
	hours     *mockWorkingHourRepo
	employees *mockEmployeeRepo
	leaves    *mockLeaveRepo
	schedules *mockScheduleRepo
	projects  *mockProjectRepo
	tasks     *mockTaskRepo
	comments  *mockCommentRepo
	folders   *mockFolderRepo
	lists     *mockListRepo
	files     *mockFolderFileRepo
	notifier  *mockNotifier
	repo      *repository.Repository
}

func newTestEnv() *testEnv {
	seq := newMockSequenceRepo()
	env := &testEnv{
		seq:       seq,
		users:     newMockUserRepo(),
		depts:     newMockDeptRepo(seq),
		hours:     newMockWorkingHourRepo(),
		employees: newMockEmployeeRepo(seq),
		leaves:    newMockLeaveRepo(),
		schedules: newMockScheduleRepo(),
		projects:  newMockProjectRepo(),
		tasks:     newMockTaskRepo(),
		comments:  newMockCommentRepo(),
		folders:   newMockFolderRepo(),
		lists:     newMockListRepo(),
		files:     newMockFolderFileRepo(),
		notifier:  newMockNotifier(),
	}
	env.depts.employees = env.employees
	env.employees.depts = env.depts
	env.employees.schedules = env.schedules
	env.employees.users = env.users
	env.leaves.employees = env.employees
	env.schedules.employees = env.employees
	env.tasks.employees = env.employees
	env.projects.employees = env.employees
	env.comments.employees = env.employees
	env.repo = &repository.Repository{
		User:        env.users,
		Department:  env.depts,
		WorkingHour: env.hours,
		Employee:    env.employees,
		Leave:       env.leaves,
		Schedule:    env.schedules,
		Project:     env.projects,
		Task:        env.tasks,
		Comment:     env.comments,
		Folder:      env.folders,
		List:        env.lists,
		FolderFile:  env.files,
		Sequence:    env.seq,
	}
	return env
}

// addEmployee 向 Mock 仓储直接插入一名员工（绕过编码分配）
func (env *testEnv) addEmployee(id string, role model.Role, deptID *string) *model.Employee {
	e := &model.Employee{
		EmployeeID:       id,
		FirstName:        "测试",
		LastName:         id,
		Email:            id + "@staffhub.local",
		Role:             role,
		Status:           model.EmployeeStatusActive,
		Phone:            fmt.Sprintf("98%08d", len(env.employees.employees)+1),
		DepartmentID:     deptID,
		WorkingStartTime: "09:00",
		WorkingEndTime:   "17:00",
		DateOfJoining:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	env.employees.employees[id] = e
	empID := id
	env.schedules.schedules[id] = &model.EmployeeSchedule{
		ScheduleID:   "sched-" + id,
		EmployeeID:   &empID,
		Availability: model.AvailabilityAvailable,
	}
	return e
}

// addDepartment 向 Mock 仓储直接插入一个部门
func (env *testEnv) addDepartment(id, name string) *model.Department {
	d := &model.Department{
		DepartmentID:     id,
		Name:             name,
		DepartmentCode:   model.FormatDepartmentCode(model.DepartmentPrefix(name), 1),
		WorkingStartTime: "09:00",
		WorkingEndTime:   "17:00",
		IsActive:         true,
	}
	env.depts.depts[id] = d
	return d
}

// [自证通过] internal/service/mock_repos_test.go
