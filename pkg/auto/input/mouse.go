// Package input 提供鼠标和键盘的合成输入
package input

import (
	"context"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/parthchandak02/auto-swiper/pkg/auto"
)

// settleDelay 移动后点击前的短暂延迟，确保鼠标到位
const settleDelay = 50 * time.Millisecond

// Mouse robotgo 鼠标
type Mouse struct{}

// NewMouse 创建鼠标
func NewMouse() *Mouse {
	return &Mouse{}
}

// MoveTo 移动鼠标到指定位置
func (m *Mouse) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// ClickAt 在指定位置点击（根据 Options 决定点击方式）
func (m *Mouse) ClickAt(ctx context.Context, x, y int, o *auto.Options) error {
	m.MoveTo(x, y)
	if err := auto.Sleep(ctx, settleDelay); err != nil {
		return err
	}

	switch {
	case o.RightClick:
		robotgo.Click("right", false)
	case o.DoubleClick:
		robotgo.Click("left", true)
	default:
		robotgo.Click("left", false)
	}
	return nil
}

// Scroll 滚动，正数向上，负数向下
func (m *Mouse) Scroll(amount int) {
	switch {
	case amount > 0:
		robotgo.ScrollDir(amount, "up")
	case amount < 0:
		robotgo.ScrollDir(-amount, "down")
	}
}
