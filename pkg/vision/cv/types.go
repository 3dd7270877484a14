package cv

// Point 坐标点（截图像素或输入坐标，视调用方而定）
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds 命中区域，左上角加宽高
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center 区域中心，点击落在这里
func (b Bounds) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// MatchResult 地标匹配结果
type MatchResult struct {
	// Landmark 命中的地标文件
	Landmark string `json:"landmark,omitempty"`
	// Result 命中区域中心
	Result Point `json:"result"`
	// Bounds 命中区域
	Bounds Bounds `json:"bounds"`
	// Confidence 匹配置信度 (0-1)
	Confidence float64 `json:"confidence"`
	// Scale 命中的模板缩放比例
	Scale float64 `json:"scale"`
	// Time 匹配耗时（毫秒）
	Time float64 `json:"time,omitempty"`
}
