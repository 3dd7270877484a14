// Package auto 提供 UI 自动化功能的共享类型和工具函数。
// 具体功能分布在子包中：screen（截图）、input（鼠标键盘）、image（地标定位与点击）。
package auto

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrNotFound 屏幕上未找到模板
var ErrNotFound = errors.New("未找到图像")

// Sleep 休眠，ctx 取消时提前返回 ctx.Err()
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ScaleCoord 按比例缩放坐标值
func ScaleCoord(value int, scale float64) int {
	if scale <= 0 {
		return value
	}
	return int(math.Round(float64(value) / scale))
}

// NormalizeScale 规整缩放比例，异常值与接近 1 的值视为 1
func NormalizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	if v < 0.5 || v > 4.0 {
		return 1.0
	}
	if math.Abs(v-1.0) < 0.05 {
		return 1.0
	}
	return v
}
