//go:build darwin

package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices -framework CoreGraphics
#include <stdlib.h>
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>

// prompt 非 0 时弹出系统授权框
static int axTrusted(int prompt) {
    NSDictionary *opts = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)opts) ? 1 : 0;
}

// 10.15 之前不需要屏幕录制授权
static int screenCaptureAllowed(void) {
    if (@available(macOS 10.15, *)) {
        return CGPreflightScreenCaptureAccess() ? 1 : 0;
    }
    return 1;
}

static void openPrivacyPane(const char *pane) {
    NSString *url = [NSString stringWithFormat:@"x-apple.systempreferences:com.apple.preference.security?%s", pane];
    [[NSWorkspace sharedWorkspace] openURL:[NSURL URLWithString:url]];
}
*/
import "C"

import "unsafe"

// 系统设置中的隐私面板
const (
	paneAccessibility = "Privacy_Accessibility"
	paneScreenCapture = "Privacy_ScreenCapture"
)

// CheckPermissions 检查点击和截图所需的权限（不触发弹窗）
func CheckPermissions() *PermissionStatus {
	return newStatus(C.axTrusted(0) == 1, C.screenCaptureAllowed() == 1)
}

// RequestAccessibilityPermission 弹出辅助功能授权框，返回当前是否已授权
func RequestAccessibilityPermission() bool {
	return C.axTrusted(1) == 1
}

// OpenSettings 打开缺失权限对应的设置页面
func OpenSettings(status *PermissionStatus) {
	if !status.Accessibility {
		openPane(paneAccessibility)
	}
	if !status.ScreenRecording {
		openPane(paneScreenCapture)
	}
}

func openPane(name string) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	C.openPrivacyPane(cs)
}
