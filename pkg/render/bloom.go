package render

import (
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// Bloom adds a Gaussian-blurred copy of img on top of itself.
// A radius <= 0 returns an unmodified copy.
func Bloom(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return imaging.Clone(img)
	}
	return blend.Add(img, blur.Gaussian(img, radius))
}

// Composite screen-blends overlay onto page, the way the overlay layer is
// shown above the page. opacity scales the overlay contribution (0..1).
func Composite(page, overlay image.Image, opacity float64) *image.NRGBA {
	base := imaging.Clone(page)
	if opacity <= 0 {
		return base
	}
	if opacity > 1 {
		opacity = 1
	}
	screened := blend.Screen(page, overlay)
	return imaging.Overlay(base, screened, image.Pt(0, 0), opacity)
}
