// Package embedded 提供游戏资源的统一访问接口
//
// 资源分为两个根：
//   - "data/"   配置文件，编译时通过 //go:embed 嵌入（见项目根目录 embed.go）
//   - "assets/" 图片和音效，默认从磁盘目录读取，缺失时游戏使用降级渲染
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录。本包提供包装函数，让其他包可以访问这些资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	assetsPrefix = "assets/"
	dataPrefix   = "data/"
)

var (
	assetsFS    fs.FS
	dataFS      fs.FS
	initialized bool
)

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
//
// 参数：
//   - assets: 以资源目录为根的文件系统（如 os.DirFS("assets")），可为 nil
//   - data: 以配置目录为根的文件系统（如 fs.Sub(dataFS, "data")）
func Init(assets, data fs.FS) {
	assetsFS = assets
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// Assets 返回资源文件系统（以 assets 目录为根）
// 未初始化或未配置资源目录时返回 nil
func Assets() fs.FS {
	return assetsFS
}

// resolve 根据路径前缀选择正确的文件系统，返回去掉前缀后的相对路径
func resolve(path string) (fs.FS, string, error) {
	if !initialized {
		return nil, "", fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// 标准化路径分隔符为正斜杠（fs.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	switch {
	case strings.HasPrefix(path, assetsPrefix):
		if assetsFS == nil {
			return nil, "", fmt.Errorf("assets file system not configured: %s", path)
		}
		return assetsFS, strings.TrimPrefix(path, assetsPrefix), nil
	case strings.HasPrefix(path, dataPrefix):
		if dataFS == nil {
			return nil, "", fmt.Errorf("data file system not configured: %s", path)
		}
		return dataFS, strings.TrimPrefix(path, dataPrefix), nil
	}
	return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// Open 根据路径前缀选择正确的文件系统并打开文件
// 路径必须以 "assets/" 或 "data/" 开头
func Open(path string) (fs.File, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(name)
}

// ReadFile 根据路径前缀选择正确的文件系统并读取文件内容
// 路径必须以 "assets/" 或 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}
