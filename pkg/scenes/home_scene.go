package scenes

import (
	"github.com/decker502/aurafx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

type feature struct {
	title, body string
}

var homeFeatures = []feature{
	{"Real-Time Detection", "Advanced YOLOv8 model achieving 0.983 mAP@50 for accurate safety equipment detection."},
	{"Single Model Approach", "One highly-optimized model for all safety classes - no ensemble complexity."},
	{"Edge Device Ready", "Optimized for real-time inference on space station monitoring systems."},
	{"Safety Critical", "Designed for reliability in safety-critical space station environments."},
}

// HomeScene 首页
type HomeScene struct{}

// NewHomeScene 创建首页
func NewHomeScene() *HomeScene {
	return &HomeScene{}
}

// Update 首页没有状态
func (s *HomeScene) Update(deltaTime float64) {}

// Draw 绘制首页
func (s *HomeScene) Draw(screen *ebiten.Image) {
	drawBackground(screen)

	cx := float64(screen.Bounds().Dx()) / 2
	y := float64(NavBarHeight) + 40
	utils.DrawCenteredText(screen, "SPACE STATION", uiFace, cx, y, scaleTitle, colorTitle)
	y += lineHeight*scaleTitle + 8
	utils.DrawCenteredText(screen, "SAFETY DETECTION", uiFace, cx, y, scaleTitle*0.75, colorSubtle)
	y += lineHeight*scaleTitle*0.75 + 24

	intro := "Real-time detection of fire extinguishers, toolboxes, and oxygen tanks using advanced YOLOv8 technology."
	for _, line := range utils.WrapText(intro, uiFace, pageWidth(screen)/scaleHead) {
		utils.DrawCenteredText(screen, line, uiFace, cx, y, scaleHead, colorMuted)
		y += lineHeight*scaleHead + 4
	}
	y += 24

	// 两列特性卡片
	colW := pageWidth(screen) / 2
	for i, f := range homeFeatures {
		x := contentMargin + float64(i%2)*colW
		rowY := y + float64(i/2)*(lineHeight*scaleHead*4)
		utils.DrawText(screen, f.title, uiFace, x, rowY, scaleHead, colorTitle)
		lineY := rowY + lineHeight*scaleHead + 6
		for _, line := range utils.WrapText(f.body, uiFace, colW-24) {
			utils.DrawText(screen, line, uiFace, x, lineY, scaleBody, colorSubtle)
			lineY += lineHeight + 2
		}
	}
}
