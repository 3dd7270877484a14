package screen

import (
	"fmt"
	"image"
	"sync"

	"github.com/corona10/goimagehash"
)

// ChangeDetector 通过感知哈希判断画面是否停滞
type ChangeDetector struct {
	// MaxDistance 汉明距离不超过该值视为未变化
	MaxDistance int

	mu   sync.Mutex
	last *goimagehash.ImageHash
}

// NewChangeDetector 创建画面变化检测器
func NewChangeDetector(maxDistance int) *ChangeDetector {
	return &ChangeDetector{MaxDistance: maxDistance}
}

// Observe 记录一帧并返回与上一帧相比是否未变化
// 第一帧总是返回 unchanged=false
func (d *ChangeDetector) Observe(img image.Image) (unchanged bool, distance int, err error) {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return false, 0, fmt.Errorf("计算图像哈希失败: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.last
	d.last = hash
	if prev == nil {
		return false, 0, nil
	}

	distance, err = prev.Distance(hash)
	if err != nil {
		return false, 0, fmt.Errorf("比较图像哈希失败: %w", err)
	}
	return distance <= d.MaxDistance, distance, nil
}

// Reset 清除上一帧
func (d *ChangeDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = nil
}
