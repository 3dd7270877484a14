//go:build !darwin

package permissions

// CheckPermissions 非 macOS 系统不需要额外授权
func CheckPermissions() *PermissionStatus {
	return newStatus(true, true)
}

// RequestAccessibilityPermission 请求辅助功能权限
func RequestAccessibilityPermission() bool {
	return true
}

// OpenSettings 打开设置页面
func OpenSettings(*PermissionStatus) {}
