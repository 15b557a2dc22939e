package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// 路由
const (
	RouteHome     = "/"
	RouteDetect   = "/detect"
	RouteRealtime = "/realtime"
	RouteHistory  = "/history"
)

// SceneManager maps routes to pages and keeps exactly one page active.
// Only the active page's Update and Draw are called.
type SceneManager struct {
	routes       []string // 注册顺序（导航栏顺序）
	scenes       map[string]Scene
	currentRoute string
	currentScene Scene
	listeners    []func(route string)
}

// NewSceneManager creates a SceneManager with no active page.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes: make(map[string]Scene),
	}
}

// Register adds a page for route. Re-registering replaces the page.
func (sm *SceneManager) Register(route string, scene Scene) {
	if _, ok := sm.scenes[route]; !ok {
		sm.routes = append(sm.routes, route)
	}
	sm.scenes[route] = scene
}

// OnNavigate registers fn, called after every successful Navigate.
func (sm *SceneManager) OnNavigate(fn func(route string)) {
	sm.listeners = append(sm.listeners, fn)
}

// Navigate switches to the page registered for route.
func (sm *SceneManager) Navigate(route string) error {
	scene, ok := sm.scenes[route]
	if !ok {
		return fmt.Errorf("unknown route %q", route)
	}

	log.Printf("[SceneManager] navigate %s -> %s", sm.currentRoute, route)
	sm.currentRoute = route
	sm.currentScene = scene
	if e, ok := scene.(Enterable); ok {
		e.OnEnter()
	}

	for _, fn := range sm.listeners {
		fn(route)
	}
	return nil
}

// NavigateIndex navigates to the i-th registered route (0-based).
func (sm *SceneManager) NavigateIndex(i int) error {
	if i < 0 || i >= len(sm.routes) {
		return fmt.Errorf("route index %d out of range", i)
	}
	return sm.Navigate(sm.routes[i])
}

// Routes returns the registered routes in registration order.
func (sm *SceneManager) Routes() []string {
	out := make([]string, len(sm.routes))
	copy(out, sm.routes)
	return out
}

// CurrentRoute returns the active route, or "" before the first Navigate.
func (sm *SceneManager) CurrentRoute() string {
	return sm.currentRoute
}

// GetCurrentScene 返回当前活动的页面，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the active page.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the active page.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
