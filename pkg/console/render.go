package console

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"
)

type boxStyle struct {
	tl, tr, bl, br, h, v string
}

var (
	boxDouble  = boxStyle{"╔", "╗", "╚", "╝", "═", "║"}
	boxRounded = boxStyle{"╭", "╮", "╰", "╯", "─", "│"}
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// displayWidth 可见宽度（去除颜色码，宽字符按 2 计）
func displayWidth(s string) int {
	return uniseg.StringWidth(ansiPattern.ReplaceAllString(s, ""))
}

func padRight(s string, width int) string {
	if n := width - displayWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - displayWidth(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// panel 绘制带边框的面板，width 为 0 时按内容自适应
func panel(b boxStyle, title string, lines []string, width int) string {
	inner := width
	for _, l := range lines {
		inner = max(inner, displayWidth(l))
	}
	if title != "" {
		inner = max(inner, displayWidth(title)+2)
	}

	var sb strings.Builder
	top := strings.Repeat(b.h, inner+2)
	if title != "" {
		t := " " + title + " "
		left := (inner + 2 - displayWidth(t)) / 2
		right := inner + 2 - displayWidth(t) - left
		top = strings.Repeat(b.h, left) + t + strings.Repeat(b.h, right)
	}
	sb.WriteString(b.tl + top + b.tr + "\n")
	for _, l := range lines {
		sb.WriteString(b.v + " " + padRight(l, inner) + " " + b.v + "\n")
	}
	sb.WriteString(b.bl + strings.Repeat(b.h, inner+2) + b.br)
	return sb.String()
}

// table 绘制圆角表格，首列左对齐，其余列右对齐
// styles 按列着色，不足时复用最后一个
func table(header []string, rows [][]string, styles ...*color.Color) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = displayWidth(h)
	}
	for _, r := range rows {
		for i := range header {
			if i < len(r) {
				widths[i] = max(widths[i], displayWidth(r[i]))
			}
		}
	}

	line := func(l, m, r string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return l + strings.Join(parts, m) + r
	}
	row := func(cells []string, colored bool) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == 0 {
				cell = padRight(cell, w)
			} else {
				cell = padLeft(cell, w)
			}
			if colored && len(styles) > 0 {
				cell = styles[min(i, len(styles)-1)].Sprint(cell)
			}
			parts[i] = " " + cell + " "
		}
		return "│" + strings.Join(parts, "│") + "│"
	}

	var sb strings.Builder
	sb.WriteString(line("╭", "┬", "╮") + "\n")
	sb.WriteString(row(header, false) + "\n")
	sb.WriteString(line("├", "┼", "┤") + "\n")
	for _, r := range rows {
		sb.WriteString(row(r, true) + "\n")
	}
	sb.WriteString(line("╰", "┴", "╯"))
	return sb.String()
}

// bar 进度条
func bar(frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	filled := int(frac * float64(width))
	return fmt.Sprintf("%s%s %3.0f%%",
		strings.Repeat("━", filled), strings.Repeat("╺", width-filled), frac*100)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinner(elapsed time.Duration) string {
	return spinnerFrames[int(elapsed/(100*time.Millisecond))%len(spinnerFrames)]
}
