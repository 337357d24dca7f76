package systems

import (
	"log"
	"time"
	"unicode"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 光标闪烁间隔
const cursorBlinkInterval = 500 * time.Millisecond

// TextInputSystem 文本输入系统
// 处理文本输入框的键盘输入、光标闪烁等逻辑
type TextInputSystem struct{}

// NewTextInputSystem 创建文本输入系统
func NewTextInputSystem() *TextInputSystem {
	return &TextInputSystem{}
}

// Update 更新文本输入框
// 只处理获得焦点的输入框
func (s *TextInputSystem) Update(deltaTime time.Duration, input *components.TextInputComponent) {
	if input == nil {
		return
	}
	if !input.IsFocused {
		input.CursorVisible = false
		return
	}

	s.updateCursorBlink(input, deltaTime)
	s.handleKeyboardInput(input)
}

// updateCursorBlink 更新光标闪烁状态
func (s *TextInputSystem) updateCursorBlink(input *components.TextInputComponent, deltaTime time.Duration) {
	input.CursorBlinkTimer += deltaTime
	if input.CursorBlinkTimer >= cursorBlinkInterval {
		input.CursorBlinkTimer = 0
		input.CursorVisible = !input.CursorVisible
	}
}

// repeatPressed 第1帧立即响应，按住半秒后每3帧响应一次
func repeatPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

// handleKeyboardInput 处理键盘输入
func (s *TextInputSystem) handleKeyboardInput(input *components.TextInputComponent) {
	touched := false

	if runes := ebiten.AppendInputChars(nil); len(runes) > 0 {
		s.InsertText(input, string(runes))
		touched = true
	}
	if repeatPressed(ebiten.KeyBackspace) {
		s.DeleteCharBefore(input)
		touched = true
	}
	if repeatPressed(ebiten.KeyDelete) {
		s.DeleteCharAfter(input)
		touched = true
	}
	if repeatPressed(ebiten.KeyArrowLeft) {
		s.MoveCursorLeft(input)
		touched = true
	}
	if repeatPressed(ebiten.KeyArrowRight) {
		s.MoveCursorRight(input)
		touched = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		input.CursorPosition = 0
		touched = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		input.CursorPosition = len([]rune(input.Text))
		touched = true
	}

	// 输入时光标应该可见
	if touched {
		input.CursorBlinkTimer = 0
		input.CursorVisible = true
	}
}

// InsertText 在光标位置插入文本
// 控制字符被过滤；超过最大长度的部分被丢弃
func (s *TextInputSystem) InsertText(input *components.TextInputComponent, text string) {
	var filtered []rune
	for _, r := range text {
		if unicode.IsPrint(r) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return
	}

	runes := []rune(input.Text)
	if input.MaxLength > 0 {
		room := input.MaxLength - len(runes)
		if room <= 0 {
			log.Printf("[TextInputSystem] 达到最大长度限制 (%d 字符)", input.MaxLength)
			return
		}
		if len(filtered) > room {
			filtered = filtered[:room]
		}
	}

	pos := clampCursor(input.CursorPosition, len(runes))
	result := make([]rune, 0, len(runes)+len(filtered))
	result = append(result, runes[:pos]...)
	result = append(result, filtered...)
	result = append(result, runes[pos:]...)

	input.Text = string(result)
	input.CursorPosition = pos + len(filtered)
}

// DeleteCharBefore 删除光标前的字符（退格）
func (s *TextInputSystem) DeleteCharBefore(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	if pos == 0 {
		return
	}
	input.Text = string(append(runes[:pos-1:pos-1], runes[pos:]...))
	input.CursorPosition = pos - 1
}

// DeleteCharAfter 删除光标后的字符（Delete键）
func (s *TextInputSystem) DeleteCharAfter(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	if pos >= len(runes) {
		return
	}
	input.Text = string(append(runes[:pos:pos], runes[pos+1:]...))
}

// MoveCursorLeft 光标左移
func (s *TextInputSystem) MoveCursorLeft(input *components.TextInputComponent) {
	if input.CursorPosition > 0 {
		input.CursorPosition--
	}
}

// MoveCursorRight 光标右移
func (s *TextInputSystem) MoveCursorRight(input *components.TextInputComponent) {
	if input.CursorPosition < len([]rune(input.Text)) {
		input.CursorPosition++
	}
}

func clampCursor(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}
