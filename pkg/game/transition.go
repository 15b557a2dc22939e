package game

import (
	"log"

	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/systems"
	"github.com/decker502/aurafx/pkg/utils"
)

// Transition drives the overlay signal on page changes.
//
// 每次路由变化激活 DurationSeconds（默认 0.9s），之后停用。
// 激活期间信号强度为用户强度 × ActiveIntensity（默认 1.5）。
// 叠加层透明度在 FadeSeconds 内缓动到 ActiveOpacity（激活）或 0（停用）。
type Transition struct {
	cfg *config.ParticleConfig

	active    bool
	intensity float64
	remaining float64 // 剩余激活时间（秒）
	route     string

	// 叠加层透明度缓动
	opacity     float64
	fadeFrom    float64
	fadeTo      float64
	fadeElapsed float64

	onChange func(sig systems.Signal)
}

// NewTransition creates an inactive Transition.
func NewTransition(cfg *config.ParticleConfig) *Transition {
	return &Transition{
		cfg:       cfg,
		intensity: cfg.Transition.DefaultIntensity,
	}
}

// OnChange registers fn, called whenever the signal changes.
func (t *Transition) OnChange(fn func(sig systems.Signal)) {
	t.onChange = fn
}

// Trigger starts (or restarts) the transition for route.
func (t *Transition) Trigger(route string) {
	t.route = route
	t.remaining = t.cfg.Transition.DurationSeconds
	log.Printf("[Transition] route %q, active for %.2fs", route, t.remaining)
	t.setActive(true)
}

// Update advances the countdown and the overlay fade by dt seconds.
func (t *Transition) Update(dt float64) {
	if t.active {
		t.remaining -= dt
		if t.remaining <= 0 {
			t.remaining = 0
			t.setActive(false)
		}
	}

	if t.opacity != t.fadeTo {
		t.fadeElapsed += dt
		progress := 1.0
		if t.cfg.Overlay.FadeSeconds > 0 {
			progress = t.fadeElapsed / t.cfg.Overlay.FadeSeconds
		}
		if progress >= 1 {
			t.opacity = t.fadeTo
		} else {
			t.opacity = utils.Lerp(t.fadeFrom, t.fadeTo, utils.EaseInOutCubic(progress))
		}
	}
}

// SetIntensity changes the intensity used by the following ticks.
func (t *Transition) SetIntensity(intensity float64) {
	if intensity == t.intensity {
		return
	}
	t.intensity = intensity
	t.notify()
}

// Signal implements SignalSource.
func (t *Transition) Signal() systems.Signal {
	intensity := t.intensity
	if t.active {
		intensity *= t.cfg.Transition.ActiveIntensity
	}
	return systems.Signal{Active: t.active, Intensity: intensity}
}

// Active reports whether a transition is running.
func (t *Transition) Active() bool {
	return t.active
}

// Intensity returns the user intensity, without the transition factor.
func (t *Transition) Intensity() float64 {
	return t.intensity
}

// Route returns the route of the last Trigger.
func (t *Transition) Route() string {
	return t.route
}

// OverlayOpacity returns the current overlay opacity in [0, ActiveOpacity].
func (t *Transition) OverlayOpacity() float64 {
	return t.opacity
}

func (t *Transition) setActive(active bool) {
	if active == t.active {
		return
	}
	t.active = active

	t.fadeFrom = t.opacity
	t.fadeElapsed = 0
	if active {
		t.fadeTo = t.cfg.Overlay.ActiveOpacity
	} else {
		t.fadeTo = 0
	}

	t.notify()
}

func (t *Transition) notify() {
	if t.onChange != nil {
		t.onChange(t.Signal())
	}
}
