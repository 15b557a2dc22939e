package app

import (
	"log"

	"github.com/decker502/aurafx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 每个 tick 的时间步长（Ebitengine 默认 60 TPS）
const deltaTime = 1.0 / 60.0

var routeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleInput()

	// 首帧挂载叠加层（需要时）
	if a.settings.GetSettings().ParticlesEnabled && !a.controller.Mounted() && !a.controller.Disabled() {
		a.controller.Mount()
	}

	a.transition.Update(deltaTime)
	a.navBar.Update(deltaTime)
	a.sceneManager.Update(deltaTime)

	// 执行本 tick 之前请求的动画帧
	a.scheduler.RunPending()
	return nil
}

func (a *App) handleInput() {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
		a.saveSettings()
		log.Printf("[App] fullscreen=%v", fullscreen)
	}

	// 1-4 切换页面
	routes := a.sceneManager.Routes()
	for i, key := range routeKeys {
		if i < len(routes) && inpututil.IsKeyJustPressed(key) {
			a.Navigate(routes[i])
		}
	}
	if utils.KeyJustPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd) {
		a.StepIntensity(1)
	}
	if utils.KeyJustPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract) {
		a.StepIntensity(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.SetParticlesEnabled(!a.settings.GetSettings().ParticlesEnabled)
	}

	if in := utils.GetInputState(); in.JustPressed {
		if route, ok := a.navBar.HitTest(in.X, in.Y); ok {
			a.Navigate(route)
		}
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	if a.overlay != nil && a.controller.Canvas() != nil {
		a.overlay.Present(screen, a.transition.OverlayOpacity())
	}
	a.navBar.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口尺寸，变化时通知叠加层调整画布
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		a.viewport.Update(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
