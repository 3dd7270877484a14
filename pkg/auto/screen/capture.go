// Package screen 提供屏幕截图、坐标换算和画面变化检测
package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"

	"github.com/parthchandak02/auto-swiper/pkg/auto"
)

// Capturer 截图后端
//
// 区域坐标与 InputSize 均处于鼠标输入坐标空间；
// 返回的图像可能是物理像素（如 Retina），换算由 CaptureMeta 完成。
type Capturer interface {
	// Capture 截取整个屏幕
	Capture() (image.Image, error)
	// CaptureRegion 截取屏幕区域
	CaptureRegion(r auto.Region) (image.Image, error)
	// InputSize 输入坐标空间中的屏幕尺寸
	InputSize() (width, height int)
	// Origin 屏幕左上角在输入坐标空间中的位置
	Origin() auto.Point
}

// NewCapturer 按名称创建截图后端: "robotgo"（默认）或 "screenshot"
func NewCapturer(backend string, display int) (Capturer, error) {
	switch backend {
	case "", "robotgo":
		return RobotgoCapturer{}, nil
	case "screenshot":
		return NewDisplayCapturer(display)
	default:
		return nil, fmt.Errorf("不支持的截图后端: %s", backend)
	}
}

// RobotgoCapturer 使用 robotgo 截取主屏幕
type RobotgoCapturer struct{}

// Capture 截取全屏
func (RobotgoCapturer) Capture() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// CaptureRegion 截取屏幕区域
func (RobotgoCapturer) CaptureRegion(r auto.Region) (image.Image, error) {
	img, err := robotgo.CaptureImg(r.X, r.Y, r.Width, r.Height)
	if err != nil {
		return nil, fmt.Errorf("截取区域失败: %w", err)
	}
	return img, nil
}

// InputSize 获取屏幕尺寸
func (RobotgoCapturer) InputSize() (int, int) {
	return robotgo.GetScreenSize()
}

// Origin 主屏幕原点
func (RobotgoCapturer) Origin() auto.Point {
	return auto.Point{}
}

// DisplayCapturer 使用 kbinani/screenshot 截取指定显示器
type DisplayCapturer struct {
	display int
	bounds  image.Rectangle
}

// NewDisplayCapturer 创建指定显示器的截图后端
func NewDisplayCapturer(display int) (*DisplayCapturer, error) {
	n := screenshot.NumActiveDisplays()
	if display < 0 || display >= n {
		return nil, fmt.Errorf("显示器编号无效: %d (共 %d 个)", display, n)
	}
	return &DisplayCapturer{
		display: display,
		bounds:  screenshot.GetDisplayBounds(display),
	}, nil
}

// Capture 截取整个显示器
func (c *DisplayCapturer) Capture() (image.Image, error) {
	img, err := screenshot.CaptureRect(c.bounds)
	if err != nil {
		return nil, fmt.Errorf("截屏失败 (显示器 %d): %w", c.display, err)
	}
	return img, nil
}

// CaptureRegion 截取显示器内的区域（相对显示器原点）
func (c *DisplayCapturer) CaptureRegion(r auto.Region) (image.Image, error) {
	rect := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).
		Add(c.bounds.Min).
		Intersect(c.bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("截取区域超出显示器范围: %+v", r)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("截取区域失败: %w", err)
	}
	return img, nil
}

// InputSize 显示器尺寸
func (c *DisplayCapturer) InputSize() (int, int) {
	return c.bounds.Dx(), c.bounds.Dy()
}

// Origin 显示器原点
func (c *DisplayCapturer) Origin() auto.Point {
	return auto.Point{X: c.bounds.Min.X, Y: c.bounds.Min.Y}
}
