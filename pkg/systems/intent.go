package systems

import "github.com/gonewx/starfall/pkg/config"

// Intent 一帧内收集到的玩家意图
//
// InputSystem 每帧生成一个 Intent，会话在该帧开始时统一应用一次，
// 所以输入事件不会在帧中途修改游戏状态。
type Intent struct {
	Left        bool // 向左移动（按住）
	Right       bool // 向右移动（按住）
	Fire        bool // 射击（按下瞬间）
	TogglePause bool // 切换暂停（按下瞬间）

	PointerPressed bool    // 指针本帧刚按下
	PointerHeld    bool    // 指针保持按下
	PointerX       float64 // 指针在逻辑画布上的X坐标
}

// Direction 返回键盘水平方向：-1 向左，1 向右，0 不动（同时按下左右也为 0）
func (i Intent) Direction() float64 {
	d := 0.0
	if i.Left {
		d--
	}
	if i.Right {
		d++
	}
	return d
}

// Any 是否有任何用户交互（用于解锁音频）
func (i Intent) Any() bool {
	return i.Left || i.Right || i.Fire || i.TogglePause || i.PointerPressed || i.PointerHeld
}

// PointerToCanvasX 把设备坐标按比例映射到 480 宽的逻辑画布
//
// 参数:
//   - deviceX: 指针在绘图表面上的X坐标
//   - surfaceWidth: 绘图表面的实际宽度，<= 0 时视为与逻辑画布等宽
func PointerToCanvasX(deviceX, surfaceWidth float64) float64 {
	if surfaceWidth <= 0 {
		return deviceX
	}
	return deviceX * config.CanvasWidth / surfaceWidth
}

// ClampPlayerX 把玩家X坐标限制在 [0, 画布宽 - w] 内
func ClampPlayerX(x, w float64) float64 {
	maxX := config.CanvasWidth - w
	if x < 0 {
		return 0
	}
	if x > maxX {
		return maxX
	}
	return x
}
