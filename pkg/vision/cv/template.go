package cv

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// DefaultThreshold 默认匹配阈值
var DefaultThreshold = 0.8

// Template 模板（屏幕地标图像）
type Template struct {
	// Filename 模板文件路径
	Filename string
	// Threshold 匹配阈值
	Threshold float64
	// Grayscale 为 true 时只做灰度匹配
	Grayscale bool
	// ScaleCandidates 模板缩放候选
	ScaleCandidates []float64

	mu        sync.Mutex
	cachedMat *gocv.Mat
}

// TemplateOption 模板选项
type TemplateOption func(*Template)

// NewTemplate 创建新的 Template（图像在首次匹配时加载）
func NewTemplate(filename string, opts ...TemplateOption) *Template {
	t := &Template{
		Filename:        filename,
		Threshold:       DefaultThreshold,
		ScaleCandidates: []float64{1.0},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithTemplateThreshold 设置阈值
func WithTemplateThreshold(threshold float64) TemplateOption {
	return func(t *Template) {
		t.Threshold = threshold
	}
}

// WithTemplateGrayscale 设置灰度匹配
func WithTemplateGrayscale(gray bool) TemplateOption {
	return func(t *Template) {
		t.Grayscale = gray
	}
}

// WithTemplateScales 设置缩放候选
func WithTemplateScales(scales ...float64) TemplateOption {
	return func(t *Template) {
		t.ScaleCandidates = scales
	}
}

// Size 读取模板并返回原始尺寸 (width, height)，用于启动时校验文件
func (t *Template) Size() (int, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mat, err := t.readImage()
	if err != nil {
		return 0, 0, err
	}
	defer mat.Close()
	w, h := GetResolution(mat)
	return w, h, nil
}

// MatchIn 在屏幕图像中匹配模板，返回中心点
func (t *Template) MatchIn(screen gocv.Mat) (*Point, error) {
	result, err := t.MatchResultIn(screen)
	if err != nil || result == nil {
		return nil, err
	}

	pos := result.Result
	return &pos, nil
}

// MatchResultIn 在屏幕图像中匹配模板，返回完整匹配结果
// 所有缩放候选都大于屏幕时返回 *ImageSizeError
func (t *Template) MatchResultIn(screen gocv.Mat) (*MatchResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	img, err := t.readImage()
	if err != nil {
		return nil, err
	}
	defer img.Close()

	scaleList := t.ScaleCandidates
	if len(scaleList) == 0 {
		scaleList = []float64{1.0}
	}

	var best *MatchResult
	var sizeErr *ImageSizeError
	tried := 0
	for _, scale := range scaleList {
		scaled, cleanup := scaleTemplate(img, scale)
		m := NewTemplateMatching(scaled, screen, t.Threshold, !t.Grayscale)
		result, err := m.FindBestResult()
		if cleanup != nil {
			cleanup()
		}
		if err != nil {
			if errors.As(err, &sizeErr) {
				continue
			}
			return nil, fmt.Errorf("匹配 %s 失败: %w", t.Filename, err)
		}
		tried++
		if result == nil {
			continue
		}
		result.Landmark = t.Filename
		result.Scale = scale
		if best == nil || result.Confidence > best.Confidence {
			best = result
		}
	}

	if tried == 0 && sizeErr != nil {
		sizeErr.Landmark = t.Filename
		return nil, sizeErr
	}
	return best, nil
}

// readImage 读取模板图像（带缓存），调用方需持有锁
func (t *Template) readImage() (gocv.Mat, error) {
	if t.cachedMat != nil && !t.cachedMat.Empty() {
		return t.cachedMat.Clone(), nil
	}

	mat, err := ReadImage(t.Filename)
	if err != nil {
		return mat, err
	}
	cached := mat.Clone()
	t.cachedMat = &cached
	return mat, nil
}

// Close 释放资源
func (t *Template) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cachedMat != nil {
		t.cachedMat.Close()
		t.cachedMat = nil
	}
}

// String 返回字符串表示
func (t *Template) String() string {
	return fmt.Sprintf("Template(%s)", t.Filename)
}

func scaleTemplate(img gocv.Mat, scale float64) (gocv.Mat, func()) {
	if scale <= 0 || scale == 1.0 {
		return img, nil
	}
	newW := max(1, int(float64(img.Cols())*scale))
	newH := max(1, int(float64(img.Rows())*scale))
	scaled := ResizeImage(img, newW, newH)
	return scaled, func() { scaled.Close() }
}
