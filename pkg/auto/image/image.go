// Package image 提供屏幕地标定位与点击
package image

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/parthchandak02/auto-swiper/internal/logger"
	"github.com/parthchandak02/auto-swiper/pkg/auto"
	"github.com/parthchandak02/auto-swiper/pkg/auto/screen"
	"github.com/parthchandak02/auto-swiper/pkg/vision/cv"
)

// Clicker 在输入坐标上点击
type Clicker interface {
	ClickAt(ctx context.Context, x, y int, o *auto.Options) error
}

// Locator 在屏幕上定位模板图像
// 模板按路径缓存，并发安全
type Locator struct {
	capturer screen.Capturer

	mu        sync.Mutex
	templates map[string]*cv.Template
}

// NewLocator 创建定位器
func NewLocator(c screen.Capturer) *Locator {
	return &Locator{
		capturer:  c,
		templates: make(map[string]*cv.Template),
	}
}

// Preload 预加载模板，缺失或无法解码的文件立即报错
func (l *Locator) Preload(paths ...string) error {
	for _, p := range paths {
		w, h, err := l.template(p, auto.DefaultOptions()).Size()
		if err != nil {
			return fmt.Errorf("加载地标 %s 失败: %w", p, err)
		}
		logger.Debug("地标 %s: %dx%d", p, w, h)
	}
	return nil
}

// LocateCenter 定位模板中心（输入坐标）
// 未找到时返回 auto.ErrNotFound；Timeout > 0 时轮询直到超时
func (l *Locator) LocateCenter(ctx context.Context, templatePath string, opts ...auto.Option) (*auto.Point, error) {
	result, err := l.Locate(ctx, templatePath, opts...)
	if err != nil {
		return nil, err
	}
	return &auto.Point{X: result.Result.X, Y: result.Result.Y}, nil
}

// Locate 定位模板，返回完整匹配结果（输入坐标）
func (l *Locator) Locate(ctx context.Context, templatePath string, opts ...auto.Option) (*cv.MatchResult, error) {
	o := auto.ApplyOptions(opts...)
	tmpl := l.template(templatePath, o)

	startTime := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := l.matchOnce(tmpl, o)
		if err != nil {
			return nil, err
		}
		if result != nil {
			b := result.Bounds
			logger.Debug("命中 %s: (%d, %d) %dx%d 置信度 %.3f 缩放 %.2f",
				result.Landmark, b.X, b.Y, b.Width, b.Height, result.Confidence, result.Scale)
			return result, nil
		}

		if o.Timeout <= 0 || time.Since(startTime) > o.Timeout {
			return nil, fmt.Errorf("%w: %s", auto.ErrNotFound, templatePath)
		}
		if err := auto.Sleep(ctx, auto.DefaultPollInterval); err != nil {
			return nil, err
		}
	}
}

// Close 释放缓存的模板
func (l *Locator) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, t := range l.templates {
		t.Close()
		delete(l.templates, k)
	}
}

func (l *Locator) matchOnce(tmpl *cv.Template, o *auto.Options) (*cv.MatchResult, error) {
	screenMat, meta, err := screen.CaptureForMatch(l.capturer, o)
	if err != nil {
		return nil, err
	}
	defer screenMat.Close()

	result, err := tmpl.MatchResultIn(screenMat)
	if err != nil {
		// 模板大于截图视为未找到
		var sizeErr *cv.ImageSizeError
		if errors.As(err, &sizeErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("匹配失败: %w", err)
	}
	return screen.AdjustMatchResult(result, meta), nil
}

// template 获取缓存模板并同步匹配参数
func (l *Locator) template(path string, o *auto.Options) *cv.Template {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.templates[path]
	if !ok {
		t = cv.NewTemplate(path)
		l.templates[path] = t
	}
	t.Threshold = o.Threshold
	t.Grayscale = o.Grayscale
	t.ScaleCandidates = o.Scales
	return t
}

// ImageClicker 定位模板并点击其中心
type ImageClicker struct {
	Locator *Locator
	Clicker Clicker
}

// NewImageClicker 创建图像点击器
func NewImageClicker(l *Locator, c Clicker) *ImageClicker {
	return &ImageClicker{Locator: l, Clicker: c}
}

// ClickImage 点击图像位置，返回实际点击的坐标
func (c *ImageClicker) ClickImage(ctx context.Context, templatePath string, opts ...auto.Option) (*auto.Point, error) {
	o := auto.ApplyOptions(opts...)

	pos, err := c.Locator.LocateCenter(ctx, templatePath, opts...)
	if err != nil {
		return nil, err
	}

	target := &auto.Point{X: pos.X + o.ClickOffset.X, Y: pos.Y + o.ClickOffset.Y}
	if err := c.Clicker.ClickAt(ctx, target.X, target.Y, o); err != nil {
		return nil, err
	}
	return target, nil
}
