package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/parthchandak02/auto-swiper/pkg/auto"
	"github.com/parthchandak02/auto-swiper/pkg/history"
	"github.com/parthchandak02/auto-swiper/pkg/session"
)

func newTestConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, true), &buf
}

func TestStatusLines(t *testing.T) {
	c, buf := newTestConsole()

	c.Like(3)
	c.Clicked("heart", "Images/1_HEART.png", auto.Point{X: 10, Y: 20})
	c.Skipped("comment", "Images/2_ADD_COMMENT.png")
	c.Scrolled(-300)

	out := buf.String()
	for _, want := range []string{
		"Like #3",
		"✓ Clicked on image: Images/1_HEART.png",
		"⚠ Skipped - couldn't find: Images/2_ADD_COMMENT.png",
		"Scrolled -300 pixels",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("输出缺少 %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("禁用颜色时不应输出 ANSI 码")
	}
}

func TestMessagePanel(t *testing.T) {
	c, buf := newTestConsole()
	c.Message("hello there")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("面板应为 3 行, 实际 %d 行:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Random Message") || !strings.HasPrefix(lines[0], "╭") {
		t.Errorf("标题行错误: %q", lines[0])
	}
	if !strings.Contains(lines[1], "hello there") {
		t.Errorf("内容行错误: %q", lines[1])
	}
	w := displayWidth(lines[0])
	for i, l := range lines {
		if displayWidth(l) != w {
			t.Errorf("第 %d 行宽度 %d 与标题 %d 不一致", i, displayWidth(l), w)
		}
	}
}

func TestStatsTable(t *testing.T) {
	c, buf := newTestConsole()
	c.Stats("📊 Session Statistics", session.NewSnapshot(10, 25, 5))

	out := buf.String()
	for _, want := range []string{"Metric", "Count", "Percentage", "83.3%", "16.7%", "100.0%", "25", "30"} {
		if !strings.Contains(out, want) {
			t.Errorf("统计表缺少 %q:\n%s", want, out)
		}
	}

	var widths []int
	for _, l := range strings.Split(strings.TrimRight(out, "\n"), "\n")[1:] {
		widths = append(widths, displayWidth(l))
	}
	for i := 1; i < len(widths); i++ {
		if widths[i] != widths[0] {
			t.Errorf("表格行宽不一致: %v\n%s", widths, out)
			break
		}
	}
}

func TestSummary(t *testing.T) {
	c, buf := newTestConsole()
	start := time.Now()
	c.Summary(session.Report{
		Start:       start,
		End:         start.Add(time.Minute),
		Interrupted: true,
		Stats:       session.NewSnapshot(4, 6, 2),
	})

	out := buf.String()
	for _, want := range []string{"Final Summary", "Session Stopped", "Total likes attempted: 4", "Successful clicks: 6", "Skipped images: 2", "1m0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("汇总缺少 %q:\n%s", want, out)
		}
	}
}

func TestHistory(t *testing.T) {
	c, buf := newTestConsole()
	c.History(nil)
	if !strings.Contains(buf.String(), "No sessions recorded yet") {
		t.Errorf("空历史提示缺失: %s", buf.String())
	}

	buf.Reset()
	start := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)
	c.History([]history.Entry{{ID: 1, Report: session.Report{
		Start: start, End: start.Add(5 * time.Minute), Stats: session.NewSnapshot(3, 9, 0),
	}}})
	out := buf.String()
	for _, want := range []string{"01/02/2024, 03:04:05", "5m0s", "100.0%", "done"} {
		if !strings.Contains(out, want) {
			t.Errorf("历史表缺少 %q:\n%s", want, out)
		}
	}
}

func TestWaitNotLive(t *testing.T) {
	c, buf := newTestConsole()

	start := time.Now()
	if err := c.Wait(context.Background(), 30*time.Millisecond); err != nil {
		t.Fatalf("等待失败: %v", err)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Error("等待时间不足")
	}
	if buf.Len() != 0 {
		t.Errorf("非终端输出不应绘制进度条: %q", buf.String())
	}
}

func TestWaitLiveCancel(t *testing.T) {
	c, buf := newTestConsole()
	c.Live = true
	c.Tick = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := c.Wait(ctx, time.Second)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("取消后应返回 ctx 错误, 实际: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Waiting 1 second...") {
		t.Errorf("进度标签缺失: %q", out)
	}
	if !strings.HasSuffix(out, "\r\x1b[2K") {
		t.Errorf("结束后应清除进度行: %q", out)
	}
}

func TestFormatWait(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Second, "1 second"},
		{3 * time.Second, "3 seconds"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := formatWait(tt.d); got != tt.want {
			t.Errorf("formatWait(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(0.5, 10); !strings.HasPrefix(got, "━━━━━╺╺╺╺╺") || !strings.HasSuffix(got, " 50%") {
		t.Errorf("进度条错误: %q", got)
	}
	if got := bar(2, 4); !strings.HasSuffix(got, "100%") {
		t.Errorf("超出范围应截断: %q", got)
	}
}

func TestDemo(t *testing.T) {
	c, buf := newTestConsole()
	if err := c.Demo(context.Background(), "v1.0.0", 10*time.Millisecond); err != nil {
		t.Fatalf("演示失败: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Demo Mode", "Auto-Swiper v1.0.0", "Random Message", "Demo Statistics", "Final Summary"} {
		if !strings.Contains(out, want) {
			t.Errorf("演示输出缺少 %q", want)
		}
	}
}
