package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one page of the application (home, detect, realtime, history).
type Scene interface {
	// Update updates the page logic. deltaTime is in seconds.
	Update(deltaTime float64)

	// Draw renders the page to screen.
	Draw(screen *ebiten.Image)
}

// Enterable 是一个可选接口，页面在成为当前页面时被调用
type Enterable interface {
	OnEnter()
}
