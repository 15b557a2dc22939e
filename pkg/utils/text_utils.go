package utils

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
//
// 换行规则:
//   - 优先在空格处断行
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if textStr == "" || face == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureTextWidth(textStr, face) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(textStr) {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if MeasureTextWidth(testLine, face) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词太长，按字符拆分
		for MeasureTextWidth(word, face) > maxWidth {
			cut := fitRunes(word, face, maxWidth)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// fitRunes 返回能放进 maxWidth 的最长前缀字节长度（至少一个字符）
func fitRunes(s string, face text.Face, maxWidth float64) int {
	end := 0
	for end < len(s) {
		_, size := utf8.DecodeRuneInString(s[end:])
		if end > 0 && MeasureTextWidth(s[:end+size], face) > maxWidth {
			break
		}
		end += size
	}
	return end
}

// MeasureTextWidth 测量文本宽度
func MeasureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}

// DrawText 在 (x, y) 绘制文本（左上角对齐），scale 为缩放倍数
func DrawText(dst *ebiten.Image, textStr string, face text.Face, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, textStr, face, op)
}

// DrawCenteredText 以 centerX 为中心绘制文本
func DrawCenteredText(dst *ebiten.Image, textStr string, face text.Face, centerX, y, scale float64, clr color.Color) {
	w := MeasureTextWidth(textStr, face) * scale
	DrawText(dst, textStr, face, centerX-w/2, y, scale, clr)
}
