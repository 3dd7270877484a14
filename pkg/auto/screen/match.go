package screen

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/parthchandak02/auto-swiper/pkg/auto"
	"github.com/parthchandak02/auto-swiper/pkg/vision/cv"
)

// CaptureMeta 截图元信息（缩放和偏移量）
type CaptureMeta struct {
	ScaleX  float64
	ScaleY  float64
	OffsetX int
	OffsetY int
}

// Capture 按 Options 截图（全屏或区域）
func Capture(c Capturer, o *auto.Options) (image.Image, CaptureMeta, error) {
	var img image.Image
	var err error

	if o.Region != nil {
		img, err = c.CaptureRegion(*o.Region)
	} else {
		img, err = c.Capture()
	}
	if err != nil {
		return nil, CaptureMeta{}, err
	}

	return img, BuildCaptureMeta(c, o, img), nil
}

// CaptureForMatch 截图用于匹配，返回 BGR gocv.Mat 和元信息
func CaptureForMatch(c Capturer, o *auto.Options) (gocv.Mat, CaptureMeta, error) {
	img, meta, err := Capture(c, o)
	if err != nil {
		return gocv.Mat{}, CaptureMeta{}, err
	}

	mat, err := cv.ImageToMat(img)
	if err != nil {
		return gocv.Mat{}, CaptureMeta{}, err
	}
	return mat, meta, nil
}

// BuildCaptureMeta 构建截图元信息
// 缩放比 = 截图像素 / 输入坐标尺寸，用于 Retina 与 Windows DPI 缩放
func BuildCaptureMeta(c Capturer, o *auto.Options, img image.Image) CaptureMeta {
	bounds := img.Bounds()
	imgW, imgH := bounds.Dx(), bounds.Dy()

	expectedW, expectedH := c.InputSize()
	origin := c.Origin()
	offsetX, offsetY := origin.X, origin.Y
	if o.Region != nil {
		expectedW = o.Region.Width
		expectedH = o.Region.Height
		offsetX += o.Region.X
		offsetY += o.Region.Y
	}

	scaleX := 1.0
	if expectedW > 0 && imgW > 0 {
		scaleX = auto.NormalizeScale(float64(imgW) / float64(expectedW))
	}
	scaleY := 1.0
	if expectedH > 0 && imgH > 0 {
		scaleY = auto.NormalizeScale(float64(imgH) / float64(expectedH))
	}

	return CaptureMeta{
		ScaleX:  scaleX,
		ScaleY:  scaleY,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// AdjustMatchResult 调整匹配结果坐标（反向缩放 + 偏移）
func AdjustMatchResult(result *cv.MatchResult, meta CaptureMeta) *cv.MatchResult {
	if result == nil {
		return nil
	}

	adjusted := *result
	adjusted.Result = AdjustCVPoint(result.Result, meta)
	b := result.Bounds
	topLeft := AdjustCVPoint(cv.Point{X: b.X, Y: b.Y}, meta)
	bottomRight := AdjustCVPoint(cv.Point{X: b.X + b.Width, Y: b.Y + b.Height}, meta)
	adjusted.Bounds = cv.Bounds{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  bottomRight.X - topLeft.X,
		Height: bottomRight.Y - topLeft.Y,
	}

	return &adjusted
}

// AdjustCVPoint 调整 cv.Point 坐标
func AdjustCVPoint(p cv.Point, meta CaptureMeta) cv.Point {
	return cv.Point{
		X: auto.ScaleCoord(p.X, meta.ScaleX) + meta.OffsetX,
		Y: auto.ScaleCoord(p.Y, meta.ScaleY) + meta.OffsetY,
	}
}
