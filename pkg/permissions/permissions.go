// Package permissions 提供系统权限检查功能
package permissions

import (
	"fmt"
	"io"
	"strings"
)

// PermissionStatus 权限状态
type PermissionStatus struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
	AllGranted      bool `json:"all_granted"`
}

func newStatus(accessibility, screenRecording bool) *PermissionStatus {
	return &PermissionStatus{
		Accessibility:   accessibility,
		ScreenRecording: screenRecording,
		AllGranted:      accessibility && screenRecording,
	}
}

// GetPermissionInstructions 获取缺失权限的说明，全部授予时返回空串
func GetPermissionInstructions(status *PermissionStatus) string {
	if status == nil || status.AllGranted {
		return ""
	}

	var b strings.Builder
	b.WriteString("需要授权以下权限才能正常工作:\n\n")

	n := 1
	if !status.Accessibility {
		fmt.Fprintf(&b, "%d. 辅助功能权限 (用于控制鼠标/键盘)\n", n)
		b.WriteString("   系统设置 > 隐私与安全性 > 辅助功能\n\n")
		n++
	}
	if !status.ScreenRecording {
		fmt.Fprintf(&b, "%d. 屏幕录制权限 (用于截屏和地标识别)\n", n)
		b.WriteString("   系统设置 > 隐私与安全性 > 屏幕录制\n\n")
	}

	b.WriteString("请为运行 autoswiper 的终端授权，授权后需要重启终端才能生效。")
	return b.String()
}

// PrintPermissionStatus 打印权限状态
func PrintPermissionStatus(w io.Writer) {
	status := CheckPermissions()
	fmt.Fprintf(w, "权限状态:\n")
	fmt.Fprintf(w, "  辅助功能: %v\n", status.Accessibility)
	fmt.Fprintf(w, "  屏幕录制: %v\n", status.ScreenRecording)

	if !status.AllGranted {
		fmt.Fprintln(w, GetPermissionInstructions(status))
	}
}
