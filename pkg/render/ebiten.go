package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gradientTextureSize 渐变纹理边长（像素）
const gradientTextureSize = 64

// ScreenBlend composites src over dst as a "screen" blend:
// result = src + dst × (1 − src).
var ScreenBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// gradientKey 渐变纹理缓存键（量化到 1/100）
type gradientKey struct {
	gradScale int // gradRadius / radius
	edgeRatio int // outer alpha / inner alpha
}

// EbitenSurface is a persistent offscreen canvas the overlay is drawn on.
//
// 每帧不清屏，FadeFill 叠加半透明黑色实现运动模糊；
// 圆盘通过缓存的白色径向渐变纹理 + ColorScale 着色绘制。
type EbitenSurface struct {
	canvas *ebiten.Image
	w, h   int

	glowRadius float64
	glowColor  color.NRGBA

	gradients map[gradientKey]*ebiten.Image
	halos     map[int]*ebiten.Image // 键为 haloKey
}

// NewEbitenSurface allocates a w×h offscreen canvas.
func NewEbitenSurface(w, h int) (*EbitenSurface, error) {
	if err := checkSize("ebiten", w, h); err != nil {
		return nil, err
	}
	return &EbitenSurface{
		canvas:    ebiten.NewImage(w, h),
		w:         w,
		h:         h,
		gradients: make(map[gradientKey]*ebiten.Image),
		halos:     make(map[int]*ebiten.Image),
	}, nil
}

// Size implements systems.Surface.
func (s *EbitenSurface) Size() (int, int) {
	return s.w, s.h
}

// FadeFill implements systems.Surface.
func (s *EbitenSurface) FadeFill(c color.NRGBA) {
	vector.DrawFilledRect(s.canvas, 0, 0, float32(s.w), float32(s.h), c, false)
}

// SetGlow implements systems.Surface.
func (s *EbitenSurface) SetGlow(radius float64, c color.NRGBA) {
	s.glowRadius = radius
	s.glowColor = c
}

// FillRadialDisc implements systems.Surface.
func (s *EbitenSurface) FillRadialDisc(x, y, radius, gradRadius float64, inner, outer color.NRGBA) {
	if radius <= 0 || inner.A == 0 {
		return
	}

	if s.glowRadius > 0 && s.glowColor.A > 0 {
		tex := s.haloTexture(haloKey(radius, s.glowRadius))
		s.drawTexture(tex, x, y, radius+s.glowRadius, s.glowColor, unitAlpha(s.glowColor))
	}

	key := gradientKey{
		gradScale: int(math.Round(gradRadius / radius * 100)),
		edgeRatio: int(math.Round(float64(outer.A) / float64(inner.A) * 100)),
	}
	s.drawTexture(s.gradientTexture(key), x, y, radius, inner, unitAlpha(inner))
}

// Resize implements game.Canvas. The old content is copied to the top-left
// of the new canvas.
func (s *EbitenSurface) Resize(w, h int) error {
	if err := checkSize("ebiten", w, h); err != nil {
		return err
	}
	if w == s.w && h == s.h {
		return nil
	}
	next := ebiten.NewImage(w, h)
	next.DrawImage(s.canvas, nil)
	s.canvas.Deallocate()
	s.canvas = next
	s.w, s.h = w, h
	return nil
}

// Present composites the overlay onto dst with the screen blend.
func (s *EbitenSurface) Present(dst *ebiten.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(math.Min(opacity, 1)))
	op.Blend = ScreenBlend
	dst.DrawImage(s.canvas, op)
}

// Image returns the offscreen canvas.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.canvas
}

// Dispose releases the GPU resources.
func (s *EbitenSurface) Dispose() {
	s.canvas.Deallocate()
	for k, img := range s.gradients {
		img.Deallocate()
		delete(s.gradients, k)
	}
	for k, img := range s.halos {
		img.Deallocate()
		delete(s.halos, k)
	}
}

// drawTexture 以 (x, y) 为中心、radius 为半径绘制纹理，颜色为 c、透明度 alpha
func (s *EbitenSurface) drawTexture(tex *ebiten.Image, x, y, radius float64, c color.NRGBA, alpha float64) {
	scale := 2 * radius / gradientTextureSize
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x-radius, y-radius)
	op.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	s.canvas.DrawImage(tex, op)
}

func (s *EbitenSurface) gradientTexture(key gradientKey) *ebiten.Image {
	if tex, ok := s.gradients[key]; ok {
		return tex
	}
	gradScale := float64(key.gradScale) / 100
	edge := float64(key.edgeRatio) / 100
	tex := ebiten.NewImageFromImage(radialImage(func(d float64) float64 {
		return discAlpha(d, 1, gradScale, 1, edge)
	}))
	s.gradients[key] = tex
	return tex
}

func (s *EbitenSurface) haloTexture(key int) *ebiten.Image {
	if tex, ok := s.halos[key]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(radialImage(haloProfile(key)))
	s.halos[key] = tex
	return tex
}

// radialImage 生成白色径向纹理，profile(d) 给出归一化距离 d 处的透明度
func radialImage(profile func(d float64) float64) *image.NRGBA {
	const size = gradientTextureSize
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			d := math.Hypot(float64(px)+0.5-half, float64(py)+0.5-half) / half
			a := profile(d)
			if a <= 0 {
				continue
			}
			img.SetNRGBA(px, py, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(math.Min(a, 1) * 255))})
		}
	}
	return img
}
