package particle

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an HSL color with its RGB form resolved once at creation.
//
// Hue is in degrees, Saturation and Lightness in [0, 1].
type Color struct {
	Hue        float64
	Saturation float64
	Lightness  float64

	r, g, b uint8
}

// NewHSL resolves an HSL triple to a Color.
func NewHSL(hue, saturation, lightness float64) Color {
	r, g, b := colorful.Hsl(hue, saturation, lightness).Clamped().RGB255()
	return Color{
		Hue:        hue,
		Saturation: saturation,
		Lightness:  lightness,
		r:          r,
		g:          g,
		b:          b,
	}
}

// RGB returns the resolved 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// WithAlpha returns the color as non-premultiplied RGBA with the given
// opacity (clamped to [0, 1]).
func (c Color) WithAlpha(opacity float64) color.NRGBA {
	return color.NRGBA{
		R: c.r,
		G: c.g,
		B: c.b,
		A: uint8(ClampOpacity(opacity)*255 + 0.5),
	}
}
