//go:build !android

package utils

// EnsureStorageDir 桌面和浏览器上 gdata 自己创建存储位置，这里无事可做
func EnsureStorageDir() error {
	return nil
}
