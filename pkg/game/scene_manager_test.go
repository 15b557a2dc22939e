package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	entered      int
	deltaTime    float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) OnEnter() {
	m.entered++
}

func newRoutedManager() (*SceneManager, map[string]*MockScene) {
	sm := NewSceneManager()
	scenes := map[string]*MockScene{}
	for _, r := range []string{RouteHome, RouteDetect, RouteRealtime, RouteHistory} {
		s := &MockScene{}
		scenes[r] = s
		sm.Register(r, s)
	}
	return sm, scenes
}

// TestNewSceneManager verifies that NewSceneManager starts without an active page.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil || sm.CurrentRoute() != "" {
		t.Error("expected no active page initially")
	}
	sm.Update(0.016) // no panic
	sm.Draw(nil)
}

// TestSceneManager_Navigate 测试导航切换页面并通知监听者
func TestSceneManager_Navigate(t *testing.T) {
	sm, scenes := newRoutedManager()
	var notified []string
	sm.OnNavigate(func(route string) { notified = append(notified, route) })

	if err := sm.Navigate(RouteDetect); err != nil {
		t.Fatalf("Navigate() error: %v", err)
	}
	if sm.CurrentRoute() != RouteDetect || sm.GetCurrentScene() != scenes[RouteDetect] {
		t.Errorf("current route = %q", sm.CurrentRoute())
	}
	if scenes[RouteDetect].entered != 1 {
		t.Errorf("OnEnter called %d times, want 1", scenes[RouteDetect].entered)
	}

	sm.Update(0.016)
	sm.Draw(nil)
	if !scenes[RouteDetect].updateCalled || !scenes[RouteDetect].drawCalled {
		t.Error("active page was not updated/drawn")
	}
	if scenes[RouteHome].updateCalled {
		t.Error("inactive page was updated")
	}

	// 重复导航到同一路由也会通知
	sm.Navigate(RouteDetect)
	if len(notified) != 2 {
		t.Errorf("notified %v, want two notifications", notified)
	}
}

// TestSceneManager_UnknownRoute 测试未知路由不改变当前页面
func TestSceneManager_UnknownRoute(t *testing.T) {
	sm, _ := newRoutedManager()
	sm.Navigate(RouteHome)

	called := false
	sm.OnNavigate(func(string) { called = true })

	if err := sm.Navigate("/nope"); err == nil {
		t.Error("expected error for unknown route")
	}
	if sm.CurrentRoute() != RouteHome || called {
		t.Error("failed navigation changed state or notified listeners")
	}
}

// TestSceneManager_NavigateIndex 测试按导航栏序号切换
func TestSceneManager_NavigateIndex(t *testing.T) {
	sm, _ := newRoutedManager()

	if err := sm.NavigateIndex(3); err != nil {
		t.Fatalf("NavigateIndex(3) error: %v", err)
	}
	if sm.CurrentRoute() != RouteHistory {
		t.Errorf("CurrentRoute() = %q, want %q", sm.CurrentRoute(), RouteHistory)
	}
	if err := sm.NavigateIndex(4); err == nil {
		t.Error("expected error for out-of-range index")
	}

	routes := sm.Routes()
	if len(routes) != 4 || routes[0] != RouteHome {
		t.Errorf("Routes() = %v", routes)
	}
}

// TestSceneManager_ReRegister 测试重复注册替换页面但不改变顺序
func TestSceneManager_ReRegister(t *testing.T) {
	sm, _ := newRoutedManager()
	replacement := &MockScene{}
	sm.Register(RouteDetect, replacement)

	if len(sm.Routes()) != 4 {
		t.Errorf("Routes() len = %d, want 4", len(sm.Routes()))
	}
	sm.Navigate(RouteDetect)
	if sm.GetCurrentScene() != replacement {
		t.Error("re-registered page not used")
	}
}
