// Package bot 执行点赞/评论循环
package bot

import (
	"context"
	"errors"
	"time"

	"github.com/parthchandak02/auto-swiper/internal/logger"
	"github.com/parthchandak02/auto-swiper/pkg/auto"
	"github.com/parthchandak02/auto-swiper/pkg/config"
	"github.com/parthchandak02/auto-swiper/pkg/session"
)

// Clicker 定位并点击地标
type Clicker interface {
	ClickImage(ctx context.Context, templatePath string, opts ...auto.Option) (*auto.Point, error)
}

// Pointer 鼠标移动与滚动
type Pointer interface {
	MoveTo(x, y int)
	Scroll(amount int)
}

// Typist 输入文字
type Typist interface {
	TypeText(ctx context.Context, text string) error
}

// Picker 选取消息
type Picker interface {
	Pick() string
}

// Waiter 等待（可显示进度），ctx 取消时返回 ctx.Err()
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// Presenter 终端展示
type Presenter interface {
	Like(n int)
	Clicked(landmark, path string, pos auto.Point)
	Skipped(landmark, path string)
	Scrolled(pixels int)
	Message(msg string)
	Separator()
	Warn(format string, args ...any)
	Interrupted()
}

// Deps 运行依赖
type Deps struct {
	Clicker   Clicker
	Pointer   Pointer
	Typist    Typist
	Picker    Picker
	Waiter    Waiter
	Presenter Presenter
	// Counters 为 nil 时自动创建
	Counters *session.Counters
	// Stuck 为 nil 时不检查画面停滞
	Stuck *StuckCheck
	// Now 为 nil 时使用 time.Now
	Now func() time.Time
}

// Runner 会话执行器
type Runner struct {
	cfg  *config.SessionConfig
	deps Deps
}

// New 创建执行器
func New(cfg *config.SessionConfig, deps Deps) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("缺少会话配置")
	}
	switch {
	case deps.Clicker == nil:
		return nil, errors.New("缺少 Clicker")
	case deps.Pointer == nil:
		return nil, errors.New("缺少 Pointer")
	case deps.Typist == nil:
		return nil, errors.New("缺少 Typist")
	case deps.Picker == nil:
		return nil, errors.New("缺少 Picker")
	case deps.Waiter == nil:
		return nil, errors.New("缺少 Waiter")
	case deps.Presenter == nil:
		return nil, errors.New("缺少 Presenter")
	}
	if deps.Counters == nil {
		deps.Counters = &session.Counters{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Runner{cfg: cfg, deps: deps}, nil
}

// Run 执行 Loops 次序列，ctx 取消视为用户中断而非错误
func (r *Runner) Run(ctx context.Context) (session.Report, error) {
	report := session.Report{
		Start: r.deps.Now(),
		Loops: r.cfg.Loops,
	}
	logger.Info("会话开始: loops=%d steps=%d", r.cfg.Loops, len(r.cfg.Steps))

	var runErr error
	for i := 1; i <= r.cfg.Loops; i++ {
		if ctx.Err() != nil {
			break
		}

		r.deps.Counters.Attempt()
		r.deps.Presenter.Like(i)

		if err := r.runSequence(ctx); err != nil {
			if ctx.Err() == nil {
				runErr = err
			}
			break
		}

		if r.deps.Stuck != nil {
			r.deps.Stuck.check(i, r.deps.Presenter)
		}
		r.deps.Presenter.Separator()
	}

	report.Interrupted = ctx.Err() != nil
	if report.Interrupted {
		r.deps.Presenter.Interrupted()
	}
	report.End = r.deps.Now()
	report.Stats = r.deps.Counters.Snapshot()

	logger.Info("会话结束: attempts=%d hits=%d misses=%d interrupted=%v",
		report.Stats.Attempts, report.Stats.Hits, report.Stats.Misses, report.Interrupted)
	return report, runErr
}

// runSequence 依次执行所有步骤
func (r *Runner) runSequence(ctx context.Context) error {
	for _, step := range r.cfg.Steps {
		if err := r.executeStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// matchOptions 地标匹配选项
func (r *Runner) matchOptions() []auto.Option {
	m := r.cfg.Match
	opts := []auto.Option{
		auto.WithThreshold(m.Threshold),
		auto.WithGrayscale(m.Grayscale),
		auto.WithTimeout(m.Timeout),
	}
	if len(m.Scales) > 0 {
		opts = append(opts, auto.WithScales(m.Scales...))
	}
	if m.Region != nil {
		opts = append(opts, auto.WithRegion(m.Region.X, m.Region.Y, m.Region.Width, m.Region.Height))
	}
	return opts
}

// clickOptions 匹配选项加上步骤自身的点击方式
func (r *Runner) clickOptions(step config.Step) []auto.Option {
	opts := r.matchOptions()
	if step.Offset != nil {
		opts = append(opts, auto.WithClickOffset(step.Offset.X, step.Offset.Y))
	}
	if step.Double {
		opts = append(opts, auto.WithDoubleClick())
	}
	if step.Right {
		opts = append(opts, auto.WithRightClick())
	}
	return opts
}
