package components

import "time"

// TextInputComponent 单行文本输入框
// 用于输入排行榜别名和别名查询
type TextInputComponent struct {
	// 输入框文本
	Text string

	// 输入框位置和尺寸（逻辑画布坐标）
	X, Y          float64
	Width, Height float64

	// 光标状态
	CursorVisible    bool          // 光标是否可见（闪烁效果）
	CursorBlinkTimer time.Duration // 光标闪烁计时器
	CursorPosition   int           // 光标位置（字符索引）

	// 输入限制
	MaxLength   int    // 最大字符数（0 = 无限制）
	Placeholder string // 占位符文本（输入框为空时显示）

	// 焦点状态
	IsFocused bool // 是否获得焦点（接收键盘输入）
}

// SetText 替换文本并把光标移到末尾
func (c *TextInputComponent) SetText(s string) {
	c.Text = s
	c.CursorPosition = len([]rune(s))
}
