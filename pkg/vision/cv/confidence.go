package cv

import (
	"math"

	"gocv.io/x/gocv"
)

// 彩色匹配前的像素截断区间，过曝和过暗的像素不参与比较
const (
	colorFloor = 10
	colorCeil  = 245
)

// colorConfidence 彩色地标的置信度
// 命中区域与模板逐通道比较，取最差的通道；尺寸不一致返回 0
func colorConfidence(region, landmark gocv.Mat) float64 {
	if region.Rows() != landmark.Rows() || region.Cols() != landmark.Cols() {
		return 0
	}

	got := clampedChannels(region)
	defer closeMats(got)
	want := clampedChannels(landmark)
	defer closeMats(want)

	worst := 1.0
	for i := range min(len(got), len(want)) {
		worst = math.Min(worst, channelScore(got[i], want[i]))
	}
	return worst
}

// clampedChannels 截断像素后拆分通道，调用方负责释放
func clampedChannels(img gocv.Mat) []gocv.Mat {
	clamped := gocv.NewMat()
	defer clamped.Close()

	gocv.Threshold(img, &clamped, colorCeil, colorCeil, gocv.ThresholdTrunc)
	gocv.Threshold(clamped, &clamped, colorFloor, 0, gocv.ThresholdToZero)
	return gocv.Split(clamped)
}

// channelScore 单通道同尺寸比较，结果矩阵只有一个值
func channelScore(got, want gocv.Mat) float64 {
	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(got, want, &result, gocv.TmCcoeffNormed, mask)
	_, maxVal, _, _ := gocv.MinMaxLoc(result)
	return float64(maxVal)
}

func closeMats(mats []gocv.Mat) {
	for _, m := range mats {
		m.Close()
	}
}
