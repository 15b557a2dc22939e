// Package render provides the drawing surfaces the particle overlay renders
// onto: an ebiten offscreen canvas for the application, a software raster for
// headless snapshots and a terminal cell grid.
//
// All surfaces implement systems.Surface and game.Canvas.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/aurafx/pkg/systems"
)

// haloStrength 光晕中心的透明度系数
const haloStrength = 0.6

// discAlpha 返回距离圆心 d 处的透明度（0..1）
//
// 在 gradRadius 内从 inner 线性过渡到 outer，超出 gradRadius 保持 outer；
// 超出 radius 为 0。
func discAlpha(d, radius, gradRadius, inner, outer float64) float64 {
	if d > radius {
		return 0
	}
	t := 1.0
	if gradRadius > 0 {
		t = math.Min(d/gradRadius, 1)
	}
	return inner + (outer-inner)*t
}

// haloAlpha 光晕衰减曲线：disc 边缘为 1，glow 半径外为 0
func haloAlpha(d, radius, glow float64) float64 {
	if glow <= 0 || d > radius+glow {
		return 0
	}
	if d <= radius {
		return haloStrength
	}
	k := 1 - (d-radius)/glow
	return haloStrength * k * k
}

// haloKey 光晕纹理缓存键：圆盘半径占光晕外半径的比例（量化到 1/100）
func haloKey(radius, glow float64) int {
	return int(math.Round(radius / (radius + glow) * 100))
}

// haloProfile 外半径归一化为 1 的光晕曲线，与 haloAlpha 形状一致
func haloProfile(key int) func(d float64) float64 {
	r := float64(key) / 100
	glow := math.Max(1-r, 1e-6)
	return func(d float64) float64 {
		return haloAlpha(d, r, glow)
	}
}

func unitAlpha(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

func checkSize(kind string, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%s surface %dx%d: %w", kind, w, h, systems.ErrSurfaceUnavailable)
	}
	return nil
}
