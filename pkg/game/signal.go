package game

import (
	"sync"

	"github.com/decker502/aurafx/pkg/systems"
)

// SignalSource provides the current activation signal.
type SignalSource interface {
	Signal() systems.Signal
}

// SignalBox is a SignalSource set directly by the host.
//
// 可以在输入 goroutine 中写入（例如 cmd/termfx 的事件循环）。
type SignalBox struct {
	mu  sync.Mutex
	sig systems.Signal
}

// NewSignalBox creates an inactive SignalBox with intensity 1.
func NewSignalBox() *SignalBox {
	return &SignalBox{sig: systems.Signal{Intensity: 1}}
}

// Set replaces the signal.
func (b *SignalBox) Set(active bool, intensity float64) {
	b.mu.Lock()
	b.sig = systems.Signal{Active: active, Intensity: intensity}
	b.mu.Unlock()
}

// SetActive toggles activation and keeps the intensity.
func (b *SignalBox) SetActive(active bool) {
	b.mu.Lock()
	b.sig.Active = active
	b.mu.Unlock()
}

// SetIntensity changes the intensity and keeps the activation.
func (b *SignalBox) SetIntensity(intensity float64) {
	b.mu.Lock()
	b.sig.Intensity = intensity
	b.mu.Unlock()
}

// Signal implements SignalSource.
func (b *SignalBox) Signal() systems.Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sig
}
