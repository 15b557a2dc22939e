package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// RasterSurface is a software canvas backed by an *image.NRGBA.
//
// 用于无头快照（cmd/snapshot）和测试；所有绘制都是逐像素 source-over。
type RasterSurface struct {
	img *image.NRGBA

	glowRadius float64
	glowColor  color.NRGBA
}

// NewRasterSurface creates a transparent w×h canvas.
func NewRasterSurface(w, h int) (*RasterSurface, error) {
	if err := checkSize("raster", w, h); err != nil {
		return nil, err
	}
	return &RasterSurface{img: imaging.New(w, h, color.NRGBA{})}, nil
}

// Size implements systems.Surface.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// FadeFill implements systems.Surface.
func (s *RasterSurface) FadeFill(c color.NRGBA) {
	w, h := s.Size()
	fill := imaging.New(w, h, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	s.img = imaging.Overlay(s.img, fill, image.Pt(0, 0), unitAlpha(c))
}

// SetGlow implements systems.Surface.
func (s *RasterSurface) SetGlow(radius float64, c color.NRGBA) {
	s.glowRadius = radius
	s.glowColor = c
}

// FillRadialDisc implements systems.Surface.
func (s *RasterSurface) FillRadialDisc(x, y, radius, gradRadius float64, inner, outer color.NRGBA) {
	if radius <= 0 {
		return
	}
	if s.glowRadius > 0 {
		g := s.glowColor
		glowA := unitAlpha(g)
		s.forEachPixel(x, y, radius+s.glowRadius, func(px, py int, d float64) {
			s.blend(px, py, g, glowA*haloAlpha(d, radius, s.glowRadius))
		})
	}

	innerA, outerA := unitAlpha(inner), unitAlpha(outer)
	s.forEachPixel(x, y, radius, func(px, py int, d float64) {
		s.blend(px, py, inner, discAlpha(d, radius, gradRadius, innerA, outerA))
	})
}

// Resize implements game.Canvas. Content is kept anchored at the top-left.
func (s *RasterSurface) Resize(w, h int) error {
	if err := checkSize("raster", w, h); err != nil {
		return err
	}
	s.img = imaging.Paste(imaging.New(w, h, color.NRGBA{}), s.img, image.Pt(0, 0))
	return nil
}

// Image returns the live canvas.
func (s *RasterSurface) Image() *image.NRGBA {
	return s.img
}

// Snapshot returns a copy of the canvas.
func (s *RasterSurface) Snapshot() *image.NRGBA {
	return imaging.Clone(s.img)
}

// Save writes the canvas to path; the format follows the file extension.
func (s *RasterSurface) Save(path string) error {
	if err := imaging.Save(s.img, path); err != nil {
		return fmt.Errorf("failed to save raster snapshot: %w", err)
	}
	return nil
}

// forEachPixel 遍历圆心 (cx, cy)、半径 r 内的像素中心
func (s *RasterSurface) forEachPixel(cx, cy, r float64, fn func(px, py int, d float64)) {
	b := s.img.Bounds()
	x0 := max(int(math.Floor(cx-r)), b.Min.X)
	x1 := min(int(math.Ceil(cx+r)), b.Max.X-1)
	y0 := max(int(math.Floor(cy-r)), b.Min.Y)
	y1 := min(int(math.Ceil(cy+r)), b.Max.Y-1)

	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy)
			if d <= r {
				fn(px, py, d)
			}
		}
	}
}

// blend source-over 合成单个像素（非预乘）
func (s *RasterSurface) blend(px, py int, c color.NRGBA, a float64) {
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	i := s.img.PixOffset(px, py)
	p := s.img.Pix[i : i+4 : i+4]

	dstA := float64(p[3]) / 255
	outA := a + dstA*(1-a)
	if outA <= 0 {
		return
	}
	mix := func(src, dst uint8) uint8 {
		v := (float64(src)*a + float64(dst)*dstA*(1-a)) / outA
		return uint8(math.Round(math.Min(v, 255)))
	}
	p[0] = mix(c.R, p[0])
	p[1] = mix(c.G, p[1])
	p[2] = mix(c.B, p[2])
	p[3] = uint8(math.Round(outA * 255))
}
