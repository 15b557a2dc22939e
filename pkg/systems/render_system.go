package systems

import (
	"errors"
	"image/color"

	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/store"
)

// ErrSurfaceUnavailable is returned when a drawing surface cannot be acquired.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Surface is the 2D raster the overlay is drawn on.
//
// It mirrors the small part of a canvas 2D context the renderer needs. Glow
// is sticky state: once set it applies to every following FillRadialDisc
// until it is set back to zero.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (w, h int)

	// FadeFill composites c over the whole surface (source-over).
	FadeFill(c color.NRGBA)

	// SetGlow sets the soft halo drawn behind following discs.
	// A radius <= 0 disables it.
	SetGlow(radius float64, c color.NRGBA)

	// FillRadialDisc fills a disc of the given radius centered on (x, y) with a
	// radial gradient running from inner at the center to outer at gradRadius.
	// inner and outer share RGB; only alpha varies.
	FillRadialDisc(x, y, radius, gradRadius float64, inner, outer color.NRGBA)
}

// RenderSystem draws a ParticleStore onto a Surface.
//
// Each Draw:
//  1. Fades the previous frame with a translucent black fill (motion blur)
//  2. Draws trail fragments, so particles end up on top
//  3. Draws particles, each with its own glow that is reset right after
type RenderSystem struct {
	cfg  *config.ParticleConfig
	fade color.NRGBA
}

// NewRenderSystem creates a RenderSystem.
func NewRenderSystem(cfg *config.ParticleConfig) *RenderSystem {
	return &RenderSystem{
		cfg:  cfg,
		fade: color.NRGBA{A: uint8(cfg.Render.FadeAlpha*255 + 0.5)},
	}
}

// Draw renders st onto dst.
func (s *RenderSystem) Draw(dst Surface, st *store.ParticleStore) {
	dst.FadeFill(s.fade)

	gradScale := s.cfg.Render.TrailGradientScale
	for _, t := range st.Trails() {
		dst.FillRadialDisc(t.X, t.Y, t.Size, t.Size*gradScale,
			t.Color.WithAlpha(t.Opacity),
			t.Color.WithAlpha(0))
	}

	edge := s.cfg.Render.ParticleEdgeOpacity
	for _, p := range st.Particles() {
		// 光晕透明度跟随粒子，淡出时一起变暗
		if p.Glow > 0 {
			dst.SetGlow(p.Glow, p.Color.WithAlpha(p.Opacity))
		}
		dst.FillRadialDisc(p.X, p.Y, p.Size, p.Size,
			p.Color.WithAlpha(p.Opacity),
			p.Color.WithAlpha(p.Opacity*edge))
		dst.SetGlow(0, color.NRGBA{})
	}
}
