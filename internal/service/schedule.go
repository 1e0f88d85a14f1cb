package service

import (
	"fmt"
	"regexp"
	"strconv"
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// parseTimeOfDay 解析 HH:MM 为当天分钟数
func parseTimeOfDay(value string) (int, error) {
	if !timeOfDayPattern.MatchString(value) {
		return 0, ErrInvalidTimeFormat
	}
	hour, _ := strconv.Atoi(value[:2])
	minute, _ := strconv.Atoi(value[3:])
	return hour*60 + minute, nil
}

// formatTimeOfDay 将当天分钟数格式化为 HH:MM
func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// timeRangesOverlap 判定两个半开时段 [aStart, aEnd) 与 [bStart, bEnd) 是否重叠。
// 首尾相接（前一场结束即后一场开始）不算冲突。
func timeRangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
