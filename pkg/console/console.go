// Package console 负责终端展示：横幅、点击状态、消息面板、等待进度与统计表
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/parthchandak02/auto-swiper/pkg/auto"
	"github.com/parthchandak02/auto-swiper/pkg/history"
	"github.com/parthchandak02/auto-swiper/pkg/session"
)

// StartFormat 横幅中的开始时间格式
const StartFormat = session.TimeFormat

// Console 终端展示
type Console struct {
	out io.Writer
	mu  sync.Mutex

	// Live 为 true 时进度条原地刷新，否则不输出进度
	Live bool
	// Tick 进度刷新间隔
	Tick time.Duration

	blue    *color.Color
	cyan    *color.Color
	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	boldRed *color.Color
	dim     *color.Color
}

// New 创建终端展示，out 为 nil 时使用 stdout
func New(out io.Writer, noColor bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	c := &Console{
		out:     out,
		Live:    isTerminal(out),
		Tick:    100 * time.Millisecond,
		blue:    color.New(color.FgBlue, color.Bold),
		cyan:    color.New(color.FgCyan),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		boldRed: color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
	if noColor {
		for _, s := range []*color.Color{c.blue, c.cyan, c.green, c.yellow, c.red, c.boldRed, c.dim} {
			s.DisableColor()
		}
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

// Banner 启动横幅
func (c *Console) Banner(version string, start time.Time) {
	lines := []string{
		c.blue.Sprintf("🚀 Auto-Swiper %s", version),
		c.cyan.Sprint("Template-matching like/comment bot"),
		c.green.Sprintf("Started: %s", start.Format(StartFormat)),
	}
	c.println(panel(boxDouble, "", lines, 0) + "\n")
}

// MessagesLoaded 消息加载结果
func (c *Console) MessagesLoaded(n int, path string) {
	c.println(fmt.Sprintf("%s Loaded %s messages from %s",
		c.green.Sprint("📝"), c.cyan.Sprint(n), c.blue.Sprint(path)))
}

// MessagesFailed 消息加载失败
func (c *Console) MessagesFailed(err error) {
	c.println(fmt.Sprintf("%s Error reading messages file: %s", c.red.Sprint("❌"), c.yellow.Sprint(err)))
}

// Like 每次循环的标题
func (c *Console) Like(n int) {
	c.println(c.boldRed.Sprintf("❤️  Like #%d", n) + "\n")
}

// Clicked 点击成功
func (c *Console) Clicked(landmark, path string, pos auto.Point) {
	c.println(fmt.Sprintf("%s Clicked on image: %s %s",
		c.green.Sprint("✓"), c.blue.Sprint(path), c.dim.Sprintf("(%s @ %d,%d)", landmark, pos.X, pos.Y)))
}

// Skipped 未找到地标
func (c *Console) Skipped(landmark, path string) {
	c.println(fmt.Sprintf("%s Skipped - couldn't find: %s %s",
		c.yellow.Sprint("⚠"), c.red.Sprint(path), c.dim.Sprintf("(%s)", landmark)))
}

// Scrolled 滚动
func (c *Console) Scrolled(pixels int) {
	c.println(fmt.Sprintf("%s Scrolled %s pixels", c.blue.Sprint("📜"), c.cyan.Sprint(pixels)))
}

// Message 消息面板
func (c *Console) Message(msg string) {
	title := c.blue.Sprint("💬 Random Message")
	c.println(panel(boxRounded, title, []string{c.cyan.Sprint(msg)}, 0))
}

// Separator 循环分隔线
func (c *Console) Separator() {
	c.println(c.dim.Sprint(strings.Repeat("─", 50)) + "\n")
}

// Warn 警告行
func (c *Console) Warn(format string, args ...any) {
	c.println(c.yellow.Sprintf("⚠️  "+format, args...))
}

// Interrupted 用户中断
func (c *Console) Interrupted() {
	c.println("\n" + c.yellow.Sprint("⚠️  Process interrupted by user"))
}

// Wait 显示等待进度并休眠，ctx 取消时提前返回
func (c *Console) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	if !c.Live {
		return auto.Sleep(ctx, d)
	}

	tick := c.Tick
	if tick <= 0 || tick > d {
		tick = d
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	label := fmt.Sprintf("Waiting %s...", formatWait(d))
	c.drawProgress(label, 0, 0)
	defer c.clearLine()

	deadline := time.NewTimer(d)
	defer deadline.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-ticker.C:
			elapsed := time.Since(start)
			c.drawProgress(label, float64(elapsed)/float64(d), elapsed)
		}
	}
}

func (c *Console) drawProgress(label string, frac float64, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\r%s %s %s",
		c.cyan.Sprint(spinner(elapsed)+" "+label), bar(frac, 30), formatElapsed(elapsed))
}

func (c *Console) clearLine() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, "\r\x1b[2K")
}

// Stats 统计表
func (c *Console) Stats(title string, s session.Snapshot) {
	rows := [][]string{
		{"✅ Successful Clicks", fmt.Sprint(s.Hits), fmt.Sprintf("%.1f%%", s.SuccessRate)},
		{"⚠️  Skipped Images", fmt.Sprint(s.Misses), fmt.Sprintf("%.1f%%", s.SkipRate)},
		{"📈 Total Attempts", fmt.Sprint(s.Total), "100.0%"},
	}
	c.println(c.blue.Sprint(title))
	c.println(table([]string{"Metric", "Count", "Percentage"}, rows, c.cyan, c.green, c.yellow))
}

// Summary 最终汇总面板
func (c *Console) Summary(r session.Report) {
	headline := "🎉 Session Complete!"
	if r.Interrupted {
		headline = "🛑 Session Stopped"
	}
	lines := []string{
		c.green.Sprint(headline),
		c.cyan.Sprintf("Total likes attempted: %d", r.Stats.Attempts),
		c.green.Sprintf("Successful clicks: %d", r.Stats.Hits),
		c.yellow.Sprintf("Skipped images: %d", r.Stats.Misses),
		c.dim.Sprintf("Duration: %s", r.Duration().Round(time.Second)),
	}
	c.println(panel(boxDouble, c.blue.Sprint("📋 Final Summary"), lines, 0))
}

// History 最近会话列表
func (c *Console) History(entries []history.Entry) {
	if len(entries) == 0 {
		c.println(c.dim.Sprint("No sessions recorded yet"))
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		r := e.Report
		status := "done"
		if r.Interrupted {
			status = "interrupted"
		}
		rows = append(rows, []string{
			r.Start.Format(StartFormat),
			r.Duration().Round(time.Second).String(),
			fmt.Sprint(r.Stats.Attempts),
			fmt.Sprint(r.Stats.Hits),
			fmt.Sprint(r.Stats.Misses),
			fmt.Sprintf("%.1f%%", r.Stats.SuccessRate),
			status,
		})
	}
	c.println(c.blue.Sprint("🗂  Recent Sessions"))
	c.println(table([]string{"Started", "Duration", "Likes", "Clicked", "Skipped", "Success", "Status"}, rows, c.cyan))
}

func formatWait(d time.Duration) string {
	if d%time.Second == 0 {
		n := int(d / time.Second)
		if n == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", n)
	}
	return d.String()
}

func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}
