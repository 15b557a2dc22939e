// Package store holds the live population of the particle overlay.
//
// A ParticleStore is owned by exactly one game.LifecycleController. Only the
// controller (through the physics step) mutates it; the renderer reads it.
// Every mutation happens inside one frame callback; the store is not safe
// for concurrent use.
package store

import (
	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
)

// ParticleStore owns the particles and trail fragments of one overlay.
type ParticleStore struct {
	cfg       *config.ParticleConfig
	src       particle.Source
	particles []particle.Particle
	trails    []particle.Trail
}

// NewParticleStore creates an empty store.
// All spawn randomness is drawn from src.
func NewParticleStore(cfg *config.ParticleConfig, src particle.Source) *ParticleStore {
	return &ParticleStore{
		cfg:       cfg,
		src:       src,
		particles: make([]particle.Particle, 0, cfg.BaseCount),
		trails:    make([]particle.Trail, 0, cfg.BaseCount),
	}
}

// EnsurePopulation tops the store up to target particles.
//
// Exactly target-Len() particles are appended, spread uniformly over bounds
// and scaled by intensity. It never removes particles, so a store already at
// or above target is left untouched.
//
// Returns the number of particles spawned.
func (s *ParticleStore) EnsurePopulation(target int, bounds particle.Bounds, intensity float64) int {
	missing := target - len(s.particles)
	if missing <= 0 {
		return 0
	}
	for i := 0; i < missing; i++ {
		s.particles = append(s.particles, s.spawn(bounds, intensity))
	}
	return missing
}

// spawn draws one particle. Draw order: x, y, size, vx, vy, opacity, hue,
// lightness, glow, trail.
func (s *ParticleStore) spawn(bounds particle.Bounds, intensity float64) particle.Particle {
	sp := s.cfg.Spawn

	x := s.src.Float64() * bounds.Width
	y := s.src.Float64() * bounds.Height
	size := sp.SizeBase + s.src.Float64()*sp.SizeSpread*intensity
	vx := (s.src.Float64() - 0.5) * sp.SpeedSpread * intensity
	vy := (s.src.Float64() - 0.5) * sp.SpeedSpread * intensity
	opacity := particle.ClampOpacity(sp.Opacity.Sample(s.src))
	hue := sp.Hue.Sample(s.src)
	lightness := sp.Lightness.Sample(s.src)
	glow := s.src.Float64() * sp.GlowSpread * intensity
	trail := particle.Chance(s.src, sp.TrailChance)

	return particle.Particle{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Size:    size,
		Opacity: opacity,
		Color:   particle.NewHSL(hue, sp.Saturation, lightness),
		Glow:    glow,
		Trail:   trail,
	}
}

// DecayAndEvict fades every particle by one step and removes those whose
// opacity reached zero.
//
// Survivors are compacted in place in one forward pass, so removing an entry
// never causes the next one to be skipped.
//
// Returns the number of particles removed.
func (s *ParticleStore) DecayAndEvict() int {
	d := s.cfg.Decay
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Opacity -= d.ParticleOpacityStep
		p.Glow *= d.ParticleGlowFactor
		if p.Opacity <= 0 {
			continue
		}
		alive = append(alive, p)
	}
	removed := len(s.particles) - len(alive)
	s.particles = alive
	return removed
}

// Add appends an already initialized particle.
func (s *ParticleStore) Add(p particle.Particle) {
	s.particles = append(s.particles, p)
}

// AddTrail appends a trail fragment.
func (s *ParticleStore) AddTrail(t particle.Trail) {
	s.trails = append(s.trails, t)
}

// DecayTrails shrinks and fades every trail fragment by one step and removes
// those at or below zero opacity or the minimum size.
//
// Returns the number of fragments removed.
func (s *ParticleStore) DecayTrails() int {
	d := s.cfg.Decay
	alive := s.trails[:0]
	for _, t := range s.trails {
		t.Opacity -= d.TrailOpacityStep
		t.Size *= d.TrailSizeFactor
		if t.Opacity <= 0 || t.Size <= d.TrailMinSize {
			continue
		}
		alive = append(alive, t)
	}
	removed := len(s.trails) - len(alive)
	s.trails = alive
	return removed
}

// Particles returns the live particles.
//
// The slice aliases the store: the physics step updates entries through it,
// every other caller must treat it as read-only and must not retain it
// across ticks.
func (s *ParticleStore) Particles() []particle.Particle {
	return s.particles
}

// Trails returns the live trail fragments, with the same aliasing rules as
// Particles.
func (s *ParticleStore) Trails() []particle.Trail {
	return s.trails
}

// Len returns the number of live particles.
func (s *ParticleStore) Len() int {
	return len(s.particles)
}

// TrailLen returns the number of live trail fragments.
func (s *ParticleStore) TrailLen() int {
	return len(s.trails)
}

// Empty reports whether neither particles nor trails remain.
func (s *ParticleStore) Empty() bool {
	return len(s.particles) == 0 && len(s.trails) == 0
}

// Clear drops every particle and trail fragment.
func (s *ParticleStore) Clear() {
	s.particles = s.particles[:0]
	s.trails = s.trails[:0]
}
