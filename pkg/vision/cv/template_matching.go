package cv

import (
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// TemplateMatching 模板匹配器
type TemplateMatching struct {
	imSearch  gocv.Mat
	imSource  gocv.Mat
	threshold float64
	rgb       bool
}

// NewTemplateMatching 创建模板匹配器
// search: 模板图像，source: 屏幕图像
// rgb 为 false 时只比较灰度，为 true 时对候选区域做三通道校验
func NewTemplateMatching(search, source gocv.Mat, threshold float64, rgb bool) *TemplateMatching {
	return &TemplateMatching{
		imSearch:  search,
		imSource:  source,
		threshold: threshold,
		rgb:       rgb,
	}
}

// FindBestResult 查找最佳匹配结果，置信度低于阈值时返回 nil, nil
func (t *TemplateMatching) FindBestResult() (*MatchResult, error) {
	result, err := t.best()
	if err != nil || result == nil {
		return nil, err
	}
	if result.Confidence < t.threshold {
		return nil, nil
	}
	return result, nil
}

// best 返回最佳候选（不考虑阈值）
func (t *TemplateMatching) best() (*MatchResult, error) {
	startTime := time.Now()

	if t.imSearch.Empty() || t.imSource.Empty() {
		return nil, fmt.Errorf("图像为空")
	}
	if err := checkSourceLargerThanSearch(t.imSource, t.imSearch); err != nil {
		return nil, err
	}

	result := t.getTemplateResultMatrix()
	defer result.Close()

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	h, w := t.imSearch.Rows(), t.imSearch.Cols()
	confidence := t.getConfidence(maxLoc, maxVal, w, h)
	bounds := Bounds{X: maxLoc.X, Y: maxLoc.Y, Width: w, Height: h}

	return &MatchResult{
		Result:     bounds.Center(),
		Bounds:     bounds,
		Confidence: confidence,
		Scale:      1.0,
		Time:       float64(time.Since(startTime).Microseconds()) / 1000,
	}, nil
}

// getTemplateResultMatrix 计算模板匹配结果矩阵（灰度）
func (t *TemplateMatching) getTemplateResultMatrix() gocv.Mat {
	srcGray := ToGray(t.imSource)
	searchGray := ToGray(t.imSearch)
	defer srcGray.Close()
	defer searchGray.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	result := gocv.NewMat()
	gocv.MatchTemplate(srcGray, searchGray, &result, gocv.TmCcoeffNormed, mask)

	return result
}

// getConfidence 计算置信度
func (t *TemplateMatching) getConfidence(maxLoc image.Point, maxVal float32, w, h int) float64 {
	if t.rgb && t.imSource.Channels() == 3 && t.imSearch.Channels() == 3 {
		imgCrop := t.imSource.Region(image.Rect(maxLoc.X, maxLoc.Y, maxLoc.X+w, maxLoc.Y+h))
		defer imgCrop.Close()
		return colorConfidence(imgCrop, t.imSearch)
	}
	return float64(maxVal)
}

// checkSourceLargerThanSearch 检查源图像是否大于搜索图像
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{search.Cols(), search.Rows()},
		}
	}
	return nil
}

// ImageSizeError 地标大于截图
type ImageSizeError struct {
	// Landmark 地标文件，由 Template 填写
	Landmark   string
	SourceSize [2]int
	SearchSize [2]int
}

func (e *ImageSizeError) Error() string {
	name := e.Landmark
	if name == "" {
		name = "模板"
	}
	return fmt.Sprintf("地标 %s (%dx%d) 大于截图 (%dx%d)",
		name, e.SearchSize[0], e.SearchSize[1], e.SourceSize[0], e.SourceSize[1])
}
