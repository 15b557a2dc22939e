// Package particle provides the data structures and value helpers for the
// page-transition particle overlay.
//
// Particles and trail fragments are plain values. They are owned by a
// store.ParticleStore and mutated only by the physics step of the lifecycle
// controller that owns that store.
package particle

// Particle is a simulated point light.
//
// Position and velocity are in canvas pixel space; velocity is pixels per tick.
type Particle struct {
	X, Y   float64 // 位置（画布像素坐标）
	VX, VY float64 // 速度（像素/帧）

	Size    float64 // Radius in pixels, always > 0
	Opacity float64 // 0 = fully transparent, 1 = fully opaque
	Color   Color
	Glow    float64 // Blur radius of the soft halo, >= 0

	// Trail is fixed at creation. Only trail-capable particles emit fragments.
	Trail bool
}

// Trail is a short-lived echo emitted by a trail-capable particle.
//
// It carries no velocity and never becomes a Particle again.
type Trail struct {
	X, Y    float64
	Size    float64
	Opacity float64
	Color   Color
}

// Bounds is the canvas extent particles live in.
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies in [0, Width] x [0, Height].
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// ClampOpacity limits v to [0, 1].
func ClampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
