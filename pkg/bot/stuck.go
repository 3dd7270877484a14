package bot

import (
	"image"

	"github.com/parthchandak02/auto-swiper/internal/logger"
	"github.com/parthchandak02/auto-swiper/pkg/auto/screen"
)

// Sampler 截取画面
type Sampler interface {
	Capture() (image.Image, error)
}

// StuckCheck 每次循环结束后检查画面是否没有变化
type StuckCheck struct {
	Sampler  Sampler
	Detector *screen.ChangeDetector
}

// NewStuckCheck 创建画面停滞检查
func NewStuckCheck(s Sampler, maxDistance int) *StuckCheck {
	return &StuckCheck{
		Sampler:  s,
		Detector: screen.NewChangeDetector(maxDistance),
	}
}

func (s *StuckCheck) check(iteration int, view Presenter) {
	img, err := s.Sampler.Capture()
	if err != nil {
		logger.Debug("停滞检查截图失败: %v", err)
		return
	}
	unchanged, distance, err := s.Detector.Observe(img)
	if err != nil {
		logger.Debug("停滞检查计算失败: %v", err)
		return
	}
	if unchanged {
		logger.Warn("第 %d 次循环后画面无变化 (distance=%d)", iteration, distance)
		view.Warn("Screen unchanged after like #%d, the app may be stuck", iteration)
	}
}
