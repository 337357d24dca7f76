package utils

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var defaultFace text.Face

// DefaultFace 返回内置的等宽位图字体（7x13）
// 不依赖任何字体文件，资源缺失时也能绘制 HUD
func DefaultFace() text.Face {
	if defaultFace == nil {
		defaultFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return defaultFace
}

// DrawText 以基线坐标绘制单行文本
//
// 参数:
//   - screen: 目标图像
//   - s: 文本
//   - face: 字体
//   - x: 左边缘X坐标
//   - baseline: 基线Y坐标
//   - clr: 文本颜色
func DrawText(screen *ebiten.Image, s string, face text.Face, x, baseline float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, baseline-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 超过最大宽度时在当前字符前断行
//   - 单个字符超宽时强制独占一行
//   - 支持多字节字符
func WrapText(textStr string, font text.Face, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if MeasureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for len(textStr) > 0 {
		r, size := utf8.DecodeRuneInString(textStr)
		char := string(r)

		testLine := currentLine + char
		if MeasureTextWidth(testLine, font) > maxWidth {
			if currentLine == "" {
				lines = append(lines, char)
				textStr = textStr[size:]
				continue
			}
			lines = append(lines, strings.TrimSpace(currentLine))
			currentLine = char
		} else {
			currentLine = testLine
		}

		textStr = textStr[size:]
	}

	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}

	return lines
}

// MeasureTextWidth 测量文本宽度
func MeasureTextWidth(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
