package session

import (
	"fmt"
	"os"
	"strings"
)

// TimeFormat 统计日志时间格式（12 小时制，无 AM/PM）
const TimeFormat = "01/02/2006, 03:04:05"

var (
	dividerBig = strings.Repeat("=", 100)
	divider    = strings.Repeat("-", 50)
)

// StatsLog 追加写入的统计日志文件
type StatsLog struct {
	Path string
}

// NewStatsLog 创建统计日志
func NewStatsLog(path string) *StatsLog {
	return &StatsLog{Path: path}
}

// Append 追加一个统计块
func (l *StatsLog) Append(r Report) error {
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("打开统计日志失败: %w", err)
	}

	if _, err := f.WriteString(FormatBlock(r)); err != nil {
		f.Close()
		return fmt.Errorf("写入统计日志失败: %w", err)
	}
	return f.Close()
}

// FormatBlock 格式化统计块
func FormatBlock(r Report) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(dividerBig + "\n")
	b.WriteString("Start Date & Time = " + r.Start.Format(TimeFormat) + "\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Skipped Images = %d Images\n", r.Stats.Misses)
	fmt.Fprintf(&b, "Completed Images = %d Images\n", r.Stats.Hits)
	fmt.Fprintf(&b, "Total Images = %d Images\n", r.Stats.Total)
	b.WriteString(divider + "\n")
	b.WriteString("End Date & Time = " + r.End.Format(TimeFormat) + "\n")
	b.WriteString(dividerBig + "\n\n")
	return b.String()
}
