package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parthchandak02/auto-swiper/internal/logger"
	"github.com/parthchandak02/auto-swiper/pkg/auto"
	"github.com/parthchandak02/auto-swiper/pkg/config"
)

// executeStep 执行单个步骤
// 未找到地标只计数并继续，只有 ctx 取消或输入失败才返回错误
func (r *Runner) executeStep(ctx context.Context, step config.Step) error {
	switch step.Action {
	case config.ActionRest:
		r.deps.Pointer.MoveTo(r.cfg.Rest.X, r.cfg.Rest.Y)
		return nil
	case config.ActionClick:
		return r.executeClick(ctx, step)
	case config.ActionWait:
		return r.deps.Waiter.Wait(ctx, r.cfg.StepWait(step))
	case config.ActionTypeMessage:
		return r.executeTypeMessage(ctx)
	case config.ActionScroll:
		r.deps.Pointer.Scroll(step.Pixels)
		r.deps.Presenter.Scrolled(step.Pixels)
		return nil
	default:
		return fmt.Errorf("不支持的步骤: %s", step.Action)
	}
}

// executeClick 点击地标
func (r *Runner) executeClick(ctx context.Context, step config.Step) error {
	landmark := step.Landmark
	path, ok := r.cfg.Landmarks[landmark]
	if !ok {
		return fmt.Errorf("未定义的地标: %s", landmark)
	}

	startTime := time.Now()
	pos, err := r.deps.Clicker.ClickImage(ctx, path, r.clickOptions(step)...)
	elapsed := float64(time.Since(startTime).Microseconds()) / 1000

	if err != nil {
		notFound := errors.Is(err, auto.ErrNotFound)
		if ctxErr := ctx.Err(); ctxErr != nil {
			// 中断前已完成的查找照常计为未命中
			if notFound {
				r.deps.Counters.Miss()
			}
			return ctxErr
		}
		if !notFound {
			logger.Warn("点击 %s 出错，按未找到处理: %v", landmark, err)
		}
		logger.LogEvent("CLK", false, elapsed, landmark)
		r.deps.Counters.Miss()
		r.deps.Presenter.Skipped(landmark, path)
		return nil
	}

	logger.LogEvent("CLK", true, elapsed, fmt.Sprintf("%s @ (%d, %d)", landmark, pos.X, pos.Y))
	r.deps.Counters.Hit()
	r.deps.Presenter.Clicked(landmark, path, *pos)
	return nil
}

// executeTypeMessage 选取并输入消息
func (r *Runner) executeTypeMessage(ctx context.Context) error {
	msg := r.deps.Picker.Pick()
	r.deps.Presenter.Message(msg)

	startTime := time.Now()
	if err := r.deps.Typist.TypeText(ctx, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("输入消息失败: %w", err)
	}
	logger.LogEvent("TYP", true, float64(time.Since(startTime).Microseconds())/1000,
		fmt.Sprintf("%d chars", len([]rune(msg))))
	return nil
}
