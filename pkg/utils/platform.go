//go:build !mobile

package utils

import "os"

// EnvMobileEmulate 设为 "1" 时桌面构建按触屏设备显示提示文字，便于本地调试
const EnvMobileEmulate = "STARFALL_MOBILE_EMULATE"

// IsMobile 是否按触屏设备显示界面
func IsMobile() bool {
	return os.Getenv(EnvMobileEmulate) == "1"
}
