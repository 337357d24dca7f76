package scenes

import (
	"image/color"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorTitle     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorText      = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	colorHighlight = color.RGBA{0x00, 0xff, 0x00, 0xff}
	colorDim       = color.RGBA{0x80, 0x80, 0x80, 0xff}
	colorError     = color.RGBA{0xff, 0x55, 0x55, 0xff}
	colorButton    = color.RGBA{0x20, 0x30, 0x50, 0xff}
)

// 列表行距
const rowHeight = 18

// button 可点击/触摸的矩形按钮
type button struct {
	label      string
	x, y, w, h float64
}

// contains 点是否落在按钮内
func (b button) contains(px, py int) bool {
	x, y := float64(px), float64(py)
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// draw 绘制按钮，selected 时使用高亮边框
func (b button) draw(screen *ebiten.Image, selected bool) {
	border := colorDim
	if selected {
		border = colorHighlight
	}
	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), colorButton, false)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 1, border, false)

	face := utils.DefaultFace()
	tx := b.x + (b.w-utils.MeasureTextWidth(b.label, face))/2
	utils.DrawText(screen, b.label, face, tx, b.y+b.h/2+face.Metrics().HAscent/2, colorTitle)
}

// pressedButton 返回本帧被点击的按钮下标，没有时为 -1
func pressedButton(buttons []button) int {
	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return -1
	}
	for i, b := range buttons {
		if b.contains(x, y) {
			return i
		}
	}
	return -1
}

// drawLines 从指定基线开始逐行绘制文本
func drawLines(screen *ebiten.Image, lines []string, x, baseline float64, clr color.Color) {
	face := utils.DefaultFace()
	for i, line := range lines {
		utils.DrawText(screen, line, face, x, baseline+float64(i*rowHeight), clr)
	}
}

// 场景背景色
var colorBackground = color.RGBA{0x00, 0x00, 0x10, 0xff}

// drawBackground 把背景精灵图铺满画布
func drawBackground(screen *ebiten.Image, sprites *game.Sprites) {
	if sprites == nil || sprites.Background == nil {
		return
	}
	b := sprites.Background.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(config.CanvasWidth/float64(b.Dx()), config.CanvasHeight/float64(b.Dy()))
	op.ColorScale.ScaleAlpha(0.6)
	screen.DrawImage(sprites.Background, op)
}
