// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/game"
	"github.com/decker502/aurafx/pkg/render"
	"github.com/decker502/aurafx/pkg/scenes"
	"github.com/decker502/aurafx/pkg/systems"
	"github.com/decker502/aurafx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

// 默认窗口尺寸
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// DefaultConfigPath 粒子配置文件路径
const DefaultConfigPath = "data/particles.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 粒子配置路径，为空使用 DefaultConfigPath
	ConfigPath string
	// Intensity 大于 0 时覆盖保存的强度设置
	Intensity float64
	// Seed 非 0 时使用固定随机种子
	Seed int64
	// Endpoint 检测服务地址，为空使用 game.DefaultDetectEndpoint
	Endpoint string
	// ExportDir 导出文件和启动脚本的目录，为空使用当前目录
	ExportDir string
	// AppName gdata 存储名，为空时不持久化（仅内存）
	AppName string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	verbose bool

	settings     *game.SettingsManager
	history      *game.HistoryManager
	sceneManager *game.SceneManager
	navBar       *scenes.NavBar
	detectScene  *scenes.DetectScene

	transition *game.Transition
	scheduler  *game.FrameScheduler
	viewport   *game.ViewportWatcher
	controller *game.LifecycleController
	overlay    *render.EbitenSurface
}

// NewApp 创建并初始化应用
//
// ConfigPath 以 "data/" 开头时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	particleConfig, err := config.LoadParticleConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("粒子配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载粒子配置: %s (baseCount=%d)", configPath, particleConfig.BaseCount)

	// 移动端减少粒子数量
	if utils.IsMobile() {
		particleConfig.BaseCount = utils.ParticleBudget(particleConfig.BaseCount)
		log.Printf("[App] Mobile mode, baseCount=%d", particleConfig.BaseCount)
	}

	gdataManager := openStorage(cfg.AppName)
	settings := game.NewSettingsManager(gdataManager)
	if cfg.Intensity > 0 {
		settings.SetIntensity(cfg.Intensity)
	}
	history := game.NewHistoryManager(gdataManager)

	a := &App{
		verbose:      cfg.Verbose,
		settings:     settings,
		history:      history,
		sceneManager: game.NewSceneManager(),
		navBar:       scenes.NewNavBar(scenes.DefaultNavItems),
		transition:   game.NewTransition(particleConfig),
		scheduler:    game.NewFrameScheduler(),
		viewport:     game.NewViewportWatcher(WindowWidth, WindowHeight),
	}
	a.transition.SetIntensity(settings.GetSettings().Intensity)

	var source particle.Source
	if cfg.Seed != 0 {
		source = particle.NewSource(cfg.Seed)
	}
	a.controller, err = game.NewLifecycleController(game.ControllerOptions{
		Config:    particleConfig,
		Source:    source,
		Scheduler: a.scheduler,
		Signals:   a.transition,
		Viewport:  a.viewport,
		NewCanvas: a.newOverlay,
	})
	if err != nil {
		return nil, fmt.Errorf("粒子叠加层初始化失败: %w", err)
	}
	a.transition.OnChange(func(sig systems.Signal) {
		a.controller.Wake()
	})

	// 页面
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = game.DefaultDetectEndpoint
	}
	a.detectScene = scenes.NewDetectScene(game.NewHTTPDetector(endpoint), history)
	realtime := scenes.NewRealtimeScene()
	if cfg.ExportDir != "" {
		a.detectScene.ExportDir = cfg.ExportDir
		realtime.ScriptDir = cfg.ExportDir
	}

	a.sceneManager.Register(game.RouteHome, scenes.NewHomeScene())
	a.sceneManager.Register(game.RouteDetect, a.detectScene)
	a.sceneManager.Register(game.RouteRealtime, realtime)
	a.sceneManager.Register(game.RouteHistory, scenes.NewHistoryScene(history))
	a.sceneManager.OnNavigate(func(route string) {
		a.navBar.SetCurrent(route)
		a.transition.Trigger(route)
	})

	if err := a.sceneManager.Navigate(game.RouteHome); err != nil {
		return nil, err
	}
	return a, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级模式）
func openStorage(appName string) *gdata.Manager {
	if appName == "" {
		return nil
	}
	dir, err := utils.EnsureStorageDir()
	if err != nil {
		log.Printf("[App] Warning: %v (settings and history will not persist)", err)
		return nil
	}
	if dir != "" {
		log.Printf("[App] Storage dir: %s", dir)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: failed to open storage: %v (settings and history will not persist)", err)
		return nil
	}
	return m
}

// newOverlay 创建叠加层画布（LifecycleController 的 CanvasFactory）
func (a *App) newOverlay(w, h int) (game.Canvas, error) {
	s, err := render.NewEbitenSurface(w, h)
	if err != nil {
		return nil, err
	}
	a.overlay = s
	return s, nil
}

// Navigate 切换页面
//
// 目标为当前页面时忽略，返回 false。过渡进行中切换会重新开始计时。
func (a *App) Navigate(route string) bool {
	if route == a.sceneManager.CurrentRoute() {
		return false
	}
	if err := a.sceneManager.Navigate(route); err != nil {
		log.Printf("[App] %v", err)
		return false
	}
	return true
}

// SetParticlesEnabled 开关粒子叠加层并保存设置
func (a *App) SetParticlesEnabled(enabled bool) {
	a.settings.SetParticlesEnabled(enabled)
	a.saveSettings()
	if !enabled {
		a.controller.Unmount()
	}
}

// StepIntensity 调整强度并保存设置
func (a *App) StepIntensity(steps int) {
	v := a.settings.StepIntensity(steps)
	a.transition.SetIntensity(v)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Close 停止动画、取消进行中的请求并保存设置
func (a *App) Close() {
	a.controller.Unmount()
	a.detectScene.Close()
	a.saveSettings()
	log.Printf("[App] closed")
}

// Controller 返回粒子叠加层控制器
func (a *App) Controller() *game.LifecycleController {
	return a.controller
}

// Transition 返回过渡编排器
func (a *App) Transition() *game.Transition {
	return a.transition
}

// GetSceneManager 返回页面管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Fullscreen 返回保存的全屏设置
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}
