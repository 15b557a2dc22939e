package scenes

import (
	"image/color"

	"github.com/decker502/aurafx/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Scene is a type alias for game.Scene.
// All page implementations should implement the game.Scene interface.
type Scene = game.Scene

// 页面主题
var (
	uiFace text.Face = text.NewGoXFace(basicfont.Face7x13)

	colorTitle   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorSubtle  = color.RGBA{R: 209, G: 213, B: 219, A: 255} // gray-300
	colorMuted   = color.RGBA{R: 156, G: 163, B: 175, A: 255} // gray-400
	colorAccent  = color.RGBA{R: 96, G: 165, B: 250, A: 255}  // blue-400
	colorSuccess = color.RGBA{R: 74, G: 222, B: 128, A: 255}  // green-400
	colorError   = color.RGBA{R: 248, G: 113, B: 113, A: 255} // red-400

	backgroundTop     = color.RGBA{R: 0x41, G: 0x41, B: 0x41, A: 255}
	backgroundBottom  = color.RGBA{A: 255}
	colorRowHighlight = color.RGBA{R: 31, G: 41, B: 55, A: 200} // gray-800
)

// 字号（basicfont 为 7x13 像素，按倍数放大）
const (
	scaleTitle = 4.0
	scaleHead  = 2.0
	scaleBody  = 1.0

	lineHeight      = 13.0
	contentMargin   = 48.0
	backgroundBands = 48
)

// drawBackground 绘制 #414141 到 #000000 的竖直渐变背景
func drawBackground(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	bandH := float32(h) / backgroundBands
	for i := 0; i < backgroundBands; i++ {
		t := float64(i) / float64(backgroundBands-1)
		vector.DrawFilledRect(screen, 0, float32(i)*bandH, float32(w), bandH+1, mixRGBA(backgroundTop, backgroundBottom, t), false)
	}
}

func mixRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// pageWidth 返回内容区宽度
func pageWidth(screen *ebiten.Image) float64 {
	return float64(screen.Bounds().Dx()) - 2*contentMargin
}
