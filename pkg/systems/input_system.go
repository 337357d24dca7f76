package systems

import (
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem 把键盘、鼠标和触摸输入转换成 Intent
//
// 键位：
//   - 左/右方向键、A/D：移动（按住）
//   - 空格：射击（每次按下一发）
//   - P、Esc：切换暂停
//   - 鼠标左键/触摸：飞船跟随指针，按下射击，按住自动射击
type InputSystem struct {
	// surfaceWidth 指针坐标所在表面的宽度
	// Ebitengine 已经把光标坐标换算到 Layout 返回的逻辑尺寸，默认与画布等宽
	surfaceWidth float64
}

// NewInputSystem 创建输入系统
func NewInputSystem() *InputSystem {
	return &InputSystem{surfaceWidth: config.CanvasWidth}
}

// Poll 读取本帧的输入状态
func (s *InputSystem) Poll() Intent {
	intent := Intent{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		TogglePause: inpututil.IsKeyJustPressed(ebiten.KeyP) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	justPressed, px, _ := utils.IsPointerJustPressed()
	held, hx, _ := utils.GetPointerState()
	switch {
	case justPressed:
		intent.PointerPressed = true
		intent.PointerHeld = true
		intent.PointerX = PointerToCanvasX(float64(px), s.surfaceWidth)
	case held:
		intent.PointerHeld = true
		intent.PointerX = PointerToCanvasX(float64(hx), s.surfaceWidth)
	}

	return intent
}
