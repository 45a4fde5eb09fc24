package model

import (
	"strings"
	"time"
)

// Folder 文件夹表 — 对应 folders（项目内物化路径树）
// path 为根到自身的标题斜杠串联，纯派生字段，仅随保存重算；
// is_archived / is_deleted 互相独立，软删除不级联隐藏子级。
type Folder struct {
	FolderID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"folder_id"`
	ProjectID   *string `gorm:"type:uuid;index"                                json:"project_id,omitempty"`
	ParentID    *string `gorm:"type:uuid;index"                                json:"parent_id,omitempty"`
	Title       string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string  `gorm:"type:text;not null;default:''"                  json:"description,omitempty"`
	SortOrder   int     `gorm:"column:sort_order;not null;default:0"           json:"order"`
	IsArchived  bool    `gorm:"not null;default:false;index"                   json:"is_archived"`
	IsDeleted   bool    `gorm:"not null;default:false;index"                   json:"is_deleted"`
	Path        string  `gorm:"type:text;not null;default:''"                  json:"path"`
	CreatedBy   *string `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel

	// 关联
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
	Parent  *Folder  `gorm:"foreignKey:ParentID;references:FolderID"   json:"parent,omitempty"`
}

// TableName 指定表名
func (Folder) TableName() string { return "folders" }

// ChildPath 以本节点为父级拼接子路径
func (f *Folder) ChildPath(title string) string {
	if f == nil || f.Path == "" {
		return title
	}
	return f.Path + "/" + title
}

// IsAncestorOf 基于物化路径判断 other 是否为本节点的后代
// （other.path 以 self.path + "/" 为前缀）
func (f *Folder) IsAncestorOf(other *Folder) bool {
	if f == nil || other == nil {
		return false
	}
	return strings.HasPrefix(other.Path, f.Path+"/")
}

// List 文件夹内清单表 — 对应 lists
type List struct {
	ListID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"list_id"`
	ProjectID  string `gorm:"type:uuid;not null"                             json:"project_id"`
	FolderID   string `gorm:"type:uuid;not null;index"                       json:"folder_id"`
	Name       string `gorm:"type:varchar(200);not null"                     json:"name"`
	SortOrder  int    `gorm:"column:sort_order;not null;default:0"           json:"order"`
	IsArchived bool   `gorm:"not null;default:false"                         json:"is_archived"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`

	// 关联
	Folder *Folder `gorm:"foreignKey:FolderID;references:FolderID" json:"folder,omitempty"`
}

// TableName 指定表名
func (List) TableName() string { return "lists" }

// FolderFile 文件夹附件表 — 对应 folder_files
// size_bytes 保存时从上传文件捕获，此后不再重算；
// name 未指定时取上传文件名
type FolderFile struct {
	FileID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"file_id"`
	FolderID   string    `gorm:"type:uuid;not null;index"                       json:"folder_id"`
	UploadedBy *string   `gorm:"type:uuid"                                      json:"uploaded_by,omitempty"`
	FilePath   string    `gorm:"type:text;not null"                             json:"file_path"`
	Name       string    `gorm:"type:varchar(200);not null"                     json:"name"`
	SizeBytes  int64     `gorm:"not null;default:0"                             json:"size_bytes"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Folder *Folder `gorm:"foreignKey:FolderID;references:FolderID" json:"folder,omitempty"`
}

// TableName 指定表名
func (FolderFile) TableName() string { return "folder_files" }

// [自证通过] internal/model/folder.go
