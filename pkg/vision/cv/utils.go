package cv

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeImageFile 解码图像文件（PNG、JPEG、BMP、WebP）
func DecodeImageFile(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("无法打开图像: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("无法解码图像 %s: %w", filename, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("图像为空: %s (%s)", filename, format)
	}
	return img, nil
}

// ReadImage 读取图像文件为 BGR Mat
func ReadImage(filename string) (gocv.Mat, error) {
	img, err := DecodeImageFile(filename)
	if err != nil {
		return gocv.Mat{}, err
	}
	return ImageToMat(img)
}

// ToGray 转换为灰度图
func ToGray(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
	return dst
}

// GetResolution 获取图像分辨率 (width, height)
func GetResolution(img gocv.Mat) (int, int) {
	return img.Cols(), img.Rows()
}

// ResizeImage 调整图像大小
func ResizeImage(img gocv.Mat, width, height int) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Resize(img, &dst, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationLinear)
	return dst
}

// ImageToMat 将 image.Image 转换为 BGR gocv.Mat
func ImageToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("图像转换失败: %w", err)
	}
	dst := gocv.NewMat()
	gocv.CvtColor(mat, &dst, gocv.ColorRGBToBGR)
	mat.Close()
	return dst, nil
}
