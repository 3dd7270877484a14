package input

import (
	"context"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/parthchandak02/auto-swiper/pkg/auto"
)

// Keyboard robotgo 键盘，逐字符输入
type Keyboard struct {
	// Interval 每个字符之间的间隔
	Interval time.Duration

	typeStr func(string)
}

// NewKeyboard 创建键盘
func NewKeyboard(interval time.Duration) *Keyboard {
	return &Keyboard{
		Interval: interval,
		typeStr:  func(s string) { robotgo.TypeStr(s) },
	}
}

// TypeText 逐字符输入文字，ctx 取消时停止并返回 ctx.Err()
func (k *Keyboard) TypeText(ctx context.Context, text string) error {
	if k.Interval <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		k.typeStr(text)
		return nil
	}

	for _, r := range text {
		if err := ctx.Err(); err != nil {
			return err
		}
		k.typeStr(string(r))
		if err := auto.Sleep(ctx, k.Interval); err != nil {
			return err
		}
	}
	return nil
}
