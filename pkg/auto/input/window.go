package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// ActivateWindow 按进程名激活窗口
func ActivateWindow(name string) error {
	if name == "" {
		return nil
	}
	if err := robotgo.ActivateName(name); err != nil {
		return fmt.Errorf("激活窗口 %s 失败: %w", name, err)
	}
	return nil
}
