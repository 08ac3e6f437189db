package utils

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 逐字符测量，支持中文和英文混合文本；单个字符超宽时独占一行
func WrapText(textStr string, font text.Face, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if MeasureText(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for len(textStr) > 0 {
		r, size := utf8.DecodeRuneInString(textStr)
		char := string(r)
		textStr = textStr[size:]

		testLine := currentLine + char
		if MeasureText(testLine, font) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine == "" {
			lines = append(lines, char)
			continue
		}

		lines = append(lines, strings.TrimSpace(currentLine))
		currentLine = char
	}

	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}

	return lines
}

// MeasureText 测量单行文本宽度
func MeasureText(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// DrawCenteredText 以 (cx, cy) 为中心绘制文本
func DrawCenteredText(screen *ebiten.Image, textStr string, font text.Face, cx, cy float64, clr color.Color) {
	if textStr == "" || font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, textStr, font, op)
}

// DrawText 以 (x, y) 为左上角绘制文本
func DrawText(screen *ebiten.Image, textStr string, font text.Face, x, y float64, clr color.Color) {
	if textStr == "" || font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, textStr, font, op)
}
