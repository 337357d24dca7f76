package scenes

import (
	"image/color"
	"time"

	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	toastBackground = color.RGBA{0x40, 0x10, 0x10, 0xe0}
	toastForeground = color.RGBA{0xff, 0xd0, 0xd0, 0xff}
)

// Toast 一条短暂显示后自动消失的提示
type Toast struct {
	message   string
	remaining time.Duration
}

// Show 显示提示，替换正在显示的旧提示
func (t *Toast) Show(message string, duration time.Duration) {
	t.message = message
	t.remaining = duration
}

// Update 倒计时，到时后清除提示
func (t *Toast) Update(deltaTime time.Duration) {
	if t.message == "" {
		return
	}
	t.remaining -= deltaTime
	if t.remaining <= 0 {
		t.message = ""
		t.remaining = 0
	}
}

// Message 返回正在显示的提示，没有时为空
func (t *Toast) Message() string {
	return t.message
}

// Draw 在指定基线绘制提示条
func (t *Toast) Draw(screen *ebiten.Image, x, baseline, width float64) {
	if t.message == "" {
		return
	}
	face := utils.DefaultFace()
	lines := utils.WrapText(t.message, face, width-16)
	h := float64(len(lines))*16 + 10
	vector.DrawFilledRect(screen, float32(x), float32(baseline-18), float32(width), float32(h), toastBackground, false)
	for i, line := range lines {
		utils.DrawText(screen, line, face, x+8, baseline+float64(i)*16, toastForeground)
	}
}
