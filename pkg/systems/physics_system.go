package systems

import (
	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/store"
)

// Signal is the activation signal from the page-transition orchestrator.
type Signal struct {
	Active    bool
	Intensity float64
}

// Normalized returns the signal with a usable intensity: non-positive
// intensities fall back to 1.
func (s Signal) Normalized() Signal {
	if !(s.Intensity > 0) {
		s.Intensity = 1
	}
	return s
}

// PhysicsSystem advances the particle simulation by one tick.
//
// Each Update processes, in order:
//  1. Trail fragments: fade and shrink, evict dead fragments
//  2. Particles: integrate, reflect off the canvas edges, emit trails
//  3. When inactive: particle fade-out and eviction
//
// Existing trails decay before new ones are emitted, so a fragment is never
// decayed in the tick it was created.
type PhysicsSystem struct {
	cfg *config.ParticleConfig
	src particle.Source
}

// NewPhysicsSystem creates a PhysicsSystem. Bounce damping and trail trials
// are drawn from src.
func NewPhysicsSystem(cfg *config.ParticleConfig, src particle.Source) *PhysicsSystem {
	return &PhysicsSystem{
		cfg: cfg,
		src: src,
	}
}

// Update runs one tick over st.
func (ps *PhysicsSystem) Update(st *store.ParticleStore, sig Signal, bounds particle.Bounds) {
	sig = sig.Normalized()

	st.DecayTrails()

	speed := 1.0
	if sig.Active {
		speed = sig.Intensity
	}

	particles := st.Particles()
	for i := range particles {
		p := &particles[i]

		p.X += p.VX * speed
		p.Y += p.VY * speed

		p.X, p.VX = ps.reflect(p.X, p.VX, bounds.Width)
		p.Y, p.VY = ps.reflect(p.Y, p.VY, bounds.Height)

		if p.Trail && particle.Chance(ps.src, ps.cfg.Trail.EmitChance) {
			st.AddTrail(particle.Trail{
				X:       p.X,
				Y:       p.Y,
				Size:    p.Size * ps.cfg.Trail.SizeFactor,
				Opacity: p.Opacity * ps.cfg.Trail.OpacityFactor,
				Color:   p.Color,
			})
		}
	}

	if !sig.Active {
		st.DecayAndEvict()
	}
}

// reflect bounces one axis off [0, limit].
//
// A position outside the range is put back on the crossed edge, the velocity
// component is negated and multiplied by a damping factor drawn from the
// bounce range. Damping is applied per bounce only; velocity is not clamped.
func (ps *PhysicsSystem) reflect(pos, vel, limit float64) (float64, float64) {
	switch {
	case pos < 0:
		pos = 0
	case pos > limit:
		pos = limit
	default:
		return pos, vel
	}
	vel = -vel * ps.cfg.Bounce.Damping.Sample(ps.src)
	return pos, vel
}
