package auto

import "time"

// Option 配置选项函数类型
type Option func(*Options)

// Options 自动化操作配置
type Options struct {
	// Timeout 等待图像出现的时间，0 表示只尝试一次
	Timeout time.Duration
	// Threshold 图像匹配阈值 (0-1)
	Threshold float64
	// Grayscale 是否灰度匹配
	Grayscale bool
	// Scales 模板缩放候选
	Scales []float64
	// ClickOffset 点击偏移量
	ClickOffset Point
	// DoubleClick 是否双击
	DoubleClick bool
	// RightClick 是否右键点击
	RightClick bool
	// Region 搜索区域 (nil 表示全屏)
	Region *Region
}

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region 表示矩形区域
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultOptions 默认配置：单次查找、灰度匹配、0.5 阈值
func DefaultOptions() *Options {
	return &Options{
		Timeout:   0,
		Threshold: 0.5,
		Grayscale: true,
		Scales:    []float64{1.0},
	}
}

// ApplyOptions 应用配置选项
func ApplyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTimeout 设置超时时间
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithThreshold 设置匹配阈值
func WithThreshold(t float64) Option {
	return func(o *Options) {
		o.Threshold = t
	}
}

// WithGrayscale 设置是否灰度匹配
func WithGrayscale(gray bool) Option {
	return func(o *Options) {
		o.Grayscale = gray
	}
}

// WithScales 设置模板缩放候选
func WithScales(scales ...float64) Option {
	return func(o *Options) {
		o.Scales = scales
	}
}

// WithClickOffset 设置点击偏移量
func WithClickOffset(x, y int) Option {
	return func(o *Options) {
		o.ClickOffset = Point{X: x, Y: y}
	}
}

// WithDoubleClick 设置双击
func WithDoubleClick() Option {
	return func(o *Options) {
		o.DoubleClick = true
	}
}

// WithRightClick 设置右键点击
func WithRightClick() Option {
	return func(o *Options) {
		o.RightClick = true
	}
}

// WithRegion 设置搜索区域
func WithRegion(x, y, width, height int) Option {
	return func(o *Options) {
		o.Region = &Region{X: x, Y: y, Width: width, Height: height}
	}
}

// DefaultPollInterval 等待图像时的轮询间隔
const DefaultPollInterval = 200 * time.Millisecond
