package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/decker502/aurafx/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

// TestTerminalSurface_Unavailable 测试无屏幕或非法单元尺寸时返回错误
func TestTerminalSurface_Unavailable(t *testing.T) {
	if _, err := NewTerminalSurface(nil, 4, 8); !errors.Is(err, systems.ErrSurfaceUnavailable) {
		t.Errorf("nil screen error = %v, want ErrSurfaceUnavailable", err)
	}
	screen := newSimScreen(t, 10, 5)
	if _, err := NewTerminalSurface(screen, 0, 8); !errors.Is(err, systems.ErrSurfaceUnavailable) {
		t.Errorf("zero cell width error = %v, want ErrSurfaceUnavailable", err)
	}
}

// TestTerminalSurface_PixelSize 测试像素尺寸 = 单元数 × 单元尺寸
func TestTerminalSurface_PixelSize(t *testing.T) {
	s, err := NewTerminalSurface(newSimScreen(t, 20, 10), 4, 8)
	if err != nil {
		t.Fatalf("NewTerminalSurface() error: %v", err)
	}
	if w, h := s.Size(); w != 80 || h != 80 {
		t.Errorf("Size() = %dx%d, want 80x80", w, h)
	}
}

// TestTerminalSurface_DiscShowsAsBackground 测试圆盘颜色写入单元背景色
func TestTerminalSurface_DiscShowsAsBackground(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	s, _ := NewTerminalSurface(screen, 4, 8)

	green := color.NRGBA{G: 255, A: 255}
	s.FillRadialDisc(10, 28, 3, 3, green, green) // 单元 (2, 3) 中心

	if got := s.Cell(2, 3); got.G != 255 || got.R != 0 {
		t.Errorf("Cell(2, 3) = %v, want green", got)
	}
	if got := s.Cell(0, 0); got.G != 0 {
		t.Errorf("Cell(0, 0) = %v, want black", got)
	}

	s.Show()
	_, _, style, _ := screen.GetContent(2, 3)
	want := tcell.StyleDefault.Background(tcell.NewRGBColor(0, 255, 0))
	if style != want {
		t.Errorf("screen style at (2, 3) = %v, want %v", style, want)
	}
}

// TestTerminalSurface_FadeAndResize 测试淡出变暗以及缩放保留内容
func TestTerminalSurface_FadeAndResize(t *testing.T) {
	s, _ := NewTerminalSurface(newSimScreen(t, 20, 10), 4, 8)
	s.FillRadialDisc(10, 28, 3, 3, color.NRGBA{B: 255, A: 255}, color.NRGBA{B: 255, A: 255})

	s.FadeFill(color.NRGBA{A: 128})
	if got := s.Cell(2, 3).B; got < 120 || got > 135 {
		t.Errorf("blue after half fade = %d, want ~127", got)
	}

	if err := s.Resize(40, 40); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	if w, h := s.Size(); w != 40 || h != 40 {
		t.Errorf("Size() after resize = %dx%d, want 40x40", w, h)
	}
	if got := s.Cell(2, 3).B; got < 120 {
		t.Errorf("content lost on resize: blue = %d", got)
	}
	if err := s.Resize(2, 2); !errors.Is(err, systems.ErrSurfaceUnavailable) {
		t.Errorf("Resize to zero cells error = %v", err)
	}
}
