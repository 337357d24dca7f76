//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 打开存储之前创建 Android 应用的数据目录
//
// gdata 在 Android 上写入 /data/data/<包名>/ 下的子目录，但不会自己创建它，
// 第一次启动时设置会保存失败。目录创建后做一次写入探测，
// 失败时返回错误，调用方退回到只在内存中保存设置。
func EnsureStorageDir() error {
	pkg, err := androidPackageName()
	if err != nil {
		return err
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".starfall_probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("storage dir %s not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// androidPackageName 读取进程名，Android 应用进程名就是包名
// cmdline 以 NUL 分隔参数，只取第一个
func androidPackageName() (string, error) {
	raw, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("read process name: %w", err)
	}
	name, _, _ := bytes.Cut(raw, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", errors.New("empty process name in /proc/self/cmdline")
	}
	return string(name), nil
}
