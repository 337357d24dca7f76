//go:build !mobile

// 桌面构建占位：ebitenmobile 绑定只在 -tags mobile 下编译，
// 这里保留同名导出，让 go build ./... 在桌面端也能通过。
package mobile

// Dummy 空导出函数
func Dummy() {}
