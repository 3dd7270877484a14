// Package cv 提供屏幕地标的模板匹配功能
//
// 匹配基于 gocv.MatchTemplate (TM_CCOEFF_NORMED)，支持灰度匹配、
// RGB 三通道校验以及多个缩放候选。
//
// 基本用法:
//
//	tmpl := cv.NewTemplate("Images/1_HEART.png",
//	    cv.WithTemplateThreshold(0.5),
//	    cv.WithTemplateGrayscale(true),
//	)
//	defer tmpl.Close()
//
//	result, err := tmpl.MatchResultIn(screen)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result != nil {
//	    fmt.Printf("找到位置: (%d, %d)\n", result.Result.X, result.Result.Y)
//	}
package cv
