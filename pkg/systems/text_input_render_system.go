package systems

import (
	"image/color"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	inputBorderColor      = color.RGBA{0x88, 0x88, 0x88, 0xff}
	inputFocusBorderColor = color.RGBA{0x00, 0xff, 0x00, 0xff}
	inputBackgroundColor  = color.RGBA{0x10, 0x10, 0x10, 0xff}
	inputTextColor        = color.RGBA{0xff, 0xff, 0xff, 0xff}
	inputPlaceholderColor = color.RGBA{0x96, 0x96, 0x96, 0xff}
)

// 文本左内边距
const inputPaddingLeft = 6

// TextInputRenderSystem 文本输入框渲染系统
// 负责绘制输入框边框、背景、文本和光标
type TextInputRenderSystem struct {
	font text.Face
}

// NewTextInputRenderSystem 创建文本输入框渲染系统
func NewTextInputRenderSystem() *TextInputRenderSystem {
	return &TextInputRenderSystem{font: utils.DefaultFace()}
}

// DrawInputBox 绘制单个输入框
func (s *TextInputRenderSystem) DrawInputBox(screen *ebiten.Image, input *components.TextInputComponent) {
	x, y := float32(input.X), float32(input.Y)
	w, h := float32(input.Width), float32(input.Height)

	border := inputBorderColor
	if input.IsFocused {
		border = inputFocusBorderColor
	}
	vector.DrawFilledRect(screen, x, y, w, h, inputBackgroundColor, false)
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)

	textX := input.X + inputPaddingLeft
	baseline := input.Y + input.Height/2 + s.font.Metrics().HAscent/2

	if input.Text == "" && input.Placeholder != "" && !input.IsFocused {
		utils.DrawText(screen, input.Placeholder, s.font, textX, baseline, inputPlaceholderColor)
	} else if input.Text != "" {
		utils.DrawText(screen, input.Text, s.font, textX, baseline, inputTextColor)
	}

	if input.IsFocused && input.CursorVisible {
		runes := []rune(input.Text)
		pos := clampCursor(input.CursorPosition, len(runes))
		cursorX := textX + utils.MeasureTextWidth(string(runes[:pos]), s.font)
		vector.StrokeLine(screen, float32(cursorX), y+h/4, float32(cursorX), y+h*3/4, 2, inputTextColor, false)
	}
}
