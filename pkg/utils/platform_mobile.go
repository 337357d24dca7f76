//go:build mobile

package utils

// IsMobile ebitenmobile 构建总是触屏设备
func IsMobile() bool { return true }
