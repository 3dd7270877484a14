package cv

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

// noiseImage 生成确定性的随机彩色图像
func noiseImage(w, h int, seed uint64) *image.RGBA {
	r := rand.New(rand.NewPCG(seed, seed*31+7))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(r.IntN(256)),
				G: uint8(r.IntN(256)),
				B: uint8(r.IntN(256)),
				A: 255,
			})
		}
	}
	return img
}

// cropImage 裁剪出模板
func cropImage(src *image.RGBA, rect image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			dst.Set(x, y, src.At(rect.Min.X+x, rect.Min.Y+y))
		}
	}
	return dst
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("创建文件失败: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("PNG 编码失败: %v", err)
	}
}

func TestTemplateMatchingFound(t *testing.T) {
	screenImg := noiseImage(200, 150, 1)
	tmplImg := cropImage(screenImg, image.Rect(60, 40, 90, 60))

	screen, err := ImageToMat(screenImg)
	if err != nil {
		t.Fatalf("转换屏幕失败: %v", err)
	}
	defer screen.Close()
	search, err := ImageToMat(tmplImg)
	if err != nil {
		t.Fatalf("转换模板失败: %v", err)
	}
	defer search.Close()

	for _, rgb := range []bool{false, true} {
		result, err := NewTemplateMatching(search, screen, 0.9, rgb).FindBestResult()
		if err != nil {
			t.Fatalf("模板匹配失败 (rgb=%v): %v", rgb, err)
		}
		if result == nil {
			t.Fatalf("应找到匹配 (rgb=%v)", rgb)
		}
		if result.Result.X != 75 || result.Result.Y != 50 {
			t.Errorf("中心点错误 (rgb=%v): got (%d, %d), want (75, 50)", rgb, result.Result.X, result.Result.Y)
		}
		if result.Bounds != (Bounds{X: 60, Y: 40, Width: 30, Height: 20}) {
			t.Errorf("匹配区域错误: %+v", result.Bounds)
		}
		if result.Confidence < 0.99 {
			t.Errorf("置信度过低 (rgb=%v): %.3f", rgb, result.Confidence)
		}
		t.Logf("rgb=%v 位置=(%d, %d) 置信度=%.3f", rgb, result.Result.X, result.Result.Y, result.Confidence)
	}
}

func TestTemplateMatchingNotFound(t *testing.T) {
	screen, err := ImageToMat(noiseImage(200, 150, 1))
	if err != nil {
		t.Fatalf("转换屏幕失败: %v", err)
	}
	defer screen.Close()
	search, err := ImageToMat(noiseImage(30, 20, 99))
	if err != nil {
		t.Fatalf("转换模板失败: %v", err)
	}
	defer search.Close()

	result, err := NewTemplateMatching(search, screen, 0.9, false).FindBestResult()
	if err != nil {
		t.Fatalf("模板匹配失败: %v", err)
	}
	if result != nil {
		t.Errorf("不应找到匹配, 置信度=%.3f", result.Confidence)
	}
}

func TestColorConfidence(t *testing.T) {
	img := noiseImage(30, 20, 9)
	same, _ := ImageToMat(img)
	defer same.Close()
	other, _ := ImageToMat(noiseImage(30, 20, 10))
	defer other.Close()
	smaller, _ := ImageToMat(noiseImage(20, 20, 9))
	defer smaller.Close()

	if c := colorConfidence(same, same); c < 0.99 {
		t.Errorf("相同图像置信度过低: %.3f", c)
	}
	if c := colorConfidence(same, other); c > 0.5 {
		t.Errorf("不同图像置信度过高: %.3f", c)
	}
	if c := colorConfidence(same, smaller); c != 0 {
		t.Errorf("尺寸不一致应返回 0, 实际: %.3f", c)
	}
}

func TestTemplateMatchingSizeError(t *testing.T) {
	screen, _ := ImageToMat(noiseImage(40, 40, 1))
	defer screen.Close()
	search, _ := ImageToMat(noiseImage(80, 20, 2))
	defer search.Close()

	_, err := NewTemplateMatching(search, screen, 0.5, false).FindBestResult()
	var sizeErr *ImageSizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("应返回 ImageSizeError, 实际: %v", err)
	}
	if sizeErr.SearchSize != [2]int{80, 20} || sizeErr.SourceSize != [2]int{40, 40} {
		t.Errorf("尺寸信息错误: %+v", sizeErr)
	}
}

func TestTemplateFromFile(t *testing.T) {
	dir := t.TempDir()
	screenImg := noiseImage(240, 180, 3)
	tmplPath := filepath.Join(dir, "heart.png")
	writePNG(t, tmplPath, cropImage(screenImg, image.Rect(100, 120, 140, 150)))

	screen, err := ImageToMat(screenImg)
	if err != nil {
		t.Fatalf("转换屏幕失败: %v", err)
	}
	defer screen.Close()

	tmpl := NewTemplate(tmplPath, WithTemplateThreshold(0.5), WithTemplateGrayscale(true))
	defer tmpl.Close()

	w, h, err := tmpl.Size()
	if err != nil || w != 40 || h != 30 {
		t.Errorf("模板尺寸错误: %dx%d, err=%v", w, h, err)
	}

	pos, err := tmpl.MatchIn(screen)
	if err != nil {
		t.Fatalf("匹配失败: %v", err)
	}
	if pos == nil || pos.X != 120 || pos.Y != 135 {
		t.Errorf("匹配位置错误: %+v", pos)
	}

	result, err := tmpl.MatchResultIn(screen)
	if err != nil || result == nil {
		t.Fatalf("匹配失败: result=%v err=%v", result, err)
	}
	if result.Landmark != tmplPath {
		t.Errorf("结果应记录地标文件: got %q", result.Landmark)
	}

	// 第二次匹配使用缓存
	pos, err = tmpl.MatchIn(screen)
	if err != nil || pos == nil {
		t.Errorf("缓存匹配失败: pos=%v err=%v", pos, err)
	}
}

func TestTemplateScaleCandidates(t *testing.T) {
	dir := t.TempDir()
	screenImg := noiseImage(100, 100, 5)
	tmplPath := filepath.Join(dir, "big.png")
	writePNG(t, tmplPath, noiseImage(150, 40, 6))

	screen, _ := ImageToMat(screenImg)
	defer screen.Close()

	// 全部缩放候选都大于屏幕
	tmpl := NewTemplate(tmplPath, WithTemplateScales(1.0, 1.5))
	defer tmpl.Close()
	_, err := tmpl.MatchResultIn(screen)
	var sizeErr *ImageSizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("应返回 ImageSizeError, 实际: %v", err)
	}
	if sizeErr.Landmark != tmplPath || !strings.Contains(err.Error(), "big.png") {
		t.Errorf("尺寸错误应带地标文件: %v", err)
	}

	// 存在可用的缩放候选时不返回尺寸错误
	tmpl2 := NewTemplate(tmplPath, WithTemplateScales(1.0, 0.5), WithTemplateThreshold(0.99))
	defer tmpl2.Close()
	if _, err := tmpl2.MatchResultIn(screen); err != nil {
		t.Errorf("存在可用候选时不应报错: %v", err)
	}
}

func TestTemplateMissingFile(t *testing.T) {
	tmpl := NewTemplate(filepath.Join(t.TempDir(), "missing.png"))
	if _, _, err := tmpl.Size(); err == nil {
		t.Error("缺失文件应返回错误")
	}
}

func TestDecodeImageFileBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "like.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("创建文件失败: %v", err)
	}
	if err := bmp.Encode(f, noiseImage(16, 12, 8)); err != nil {
		t.Fatalf("BMP 编码失败: %v", err)
	}
	f.Close()

	mat, err := ReadImage(path)
	if err != nil {
		t.Fatalf("读取 BMP 失败: %v", err)
	}
	defer mat.Close()

	if w, h := GetResolution(mat); w != 16 || h != 12 {
		t.Errorf("BMP 尺寸错误: %dx%d", w, h)
	}
	if mat.Channels() != 3 {
		t.Errorf("应为三通道, 实际 %d", mat.Channels())
	}
}

func TestDecodeImageFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("写入文件失败: %v", err)
	}
	if _, err := DecodeImageFile(path); err == nil {
		t.Error("无效图像应返回错误")
	}
}
