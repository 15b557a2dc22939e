package systems

import (
	"math"
	"testing"

	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/store"
)

var testBounds = particle.Bounds{Width: 800, Height: 600}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// newPhysicsFixture 创建共享同一随机源的 store 和 physics system
func newPhysicsFixture(src particle.Source) (*store.ParticleStore, *PhysicsSystem) {
	cfg := config.DefaultParticleConfig()
	return store.NewParticleStore(cfg, src), NewPhysicsSystem(cfg, src)
}

// TestPhysicsSystem_IntegratesWithIntensity 测试激活时速度乘以强度，非激活时按原速
func TestPhysicsSystem_IntegratesWithIntensity(t *testing.T) {
	tests := []struct {
		name  string
		sig   Signal
		wantX float64
		wantY float64
	}{
		{"active intensity 2", Signal{Active: true, Intensity: 2}, 104, 96},
		{"active intensity 1", Signal{Active: true, Intensity: 1}, 102, 98},
		{"inactive ignores intensity", Signal{Active: false, Intensity: 3}, 102, 98},
		{"zero intensity falls back to 1", Signal{Active: true, Intensity: 0}, 102, 98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ps := newPhysicsFixture(particle.NewSequenceSource(0.5))
			st.Add(particle.Particle{X: 100, Y: 100, VX: 2, VY: -2, Size: 1, Opacity: 1})

			ps.Update(st, tt.sig, testBounds)

			p := st.Particles()[0]
			if !approx(p.X, tt.wantX) || !approx(p.Y, tt.wantY) {
				t.Errorf("position = (%v, %v), want (%v, %v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestPhysicsSystem_ReflectsAtEdges 测试越界后反向并施加阻尼
func TestPhysicsSystem_ReflectsAtEdges(t *testing.T) {
	tests := []struct {
		name           string
		in             particle.Particle
		draw           float64
		wantX, wantY   float64
		wantVX, wantVY float64
	}{
		{
			name: "right edge, neutral damping",
			in:   particle.Particle{X: 799, Y: 300, VX: 3, VY: 0},
			draw: 0.5, wantX: 800, wantY: 300, wantVX: -3, wantVY: 0,
		},
		{
			name: "left edge, minimum damping",
			in:   particle.Particle{X: 1, Y: 300, VX: -2, VY: 0},
			draw: 0, wantX: 0, wantY: 300, wantVX: 1.9, wantVY: 0,
		},
		{
			name: "bottom edge",
			in:   particle.Particle{X: 400, Y: 599, VX: 0, VY: 4},
			draw: 0.5, wantX: 400, wantY: 600, wantVX: 0, wantVY: -4,
		},
		{
			name: "top-left corner bounces both axes",
			in:   particle.Particle{X: 0.5, Y: 0.5, VX: -1, VY: -1},
			draw: 0.5, wantX: 0, wantY: 0, wantVX: 1, wantVY: 1,
		},
		{
			name: "inside bounds untouched",
			in:   particle.Particle{X: 400, Y: 300, VX: 1, VY: 1},
			draw: 0, wantX: 401, wantY: 301, wantVX: 1, wantVY: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ps := newPhysicsFixture(particle.NewSequenceSource(tt.draw))
			p := tt.in
			p.Size, p.Opacity = 1, 1
			st.Add(p)

			ps.Update(st, Signal{Active: true, Intensity: 1}, testBounds)

			got := st.Particles()[0]
			if !approx(got.X, tt.wantX) || !approx(got.Y, tt.wantY) {
				t.Errorf("position = (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
			if !approx(got.VX, tt.wantVX) || !approx(got.VY, tt.wantVY) {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", got.VX, got.VY, tt.wantVX, tt.wantVY)
			}
		})
	}
}

// TestPhysicsSystem_StaysInBounds 测试长时间运行所有粒子在反弹后都在画布内
func TestPhysicsSystem_StaysInBounds(t *testing.T) {
	src := particle.NewSource(99)
	st, ps := newPhysicsFixture(src)
	st.EnsurePopulation(160, testBounds, 2)

	for tick := 0; tick < 600; tick++ {
		ps.Update(st, Signal{Active: true, Intensity: 2}, testBounds)
		for i, p := range st.Particles() {
			if !testBounds.Contains(p.X, p.Y) {
				t.Fatalf("tick %d: particle %d out of bounds at (%v, %v)", tick, i, p.X, p.Y)
			}
		}
	}
}

// TestPhysicsSystem_EmitsTrail 测试可拖尾粒子按概率发射拖尾
func TestPhysicsSystem_EmitsTrail(t *testing.T) {
	st, ps := newPhysicsFixture(particle.NewSequenceSource(0.9))
	color := particle.NewHSL(220, 1, 0.7)
	st.Add(particle.Particle{X: 100, Y: 100, VX: 1, VY: 1, Size: 2, Opacity: 0.5, Color: color, Trail: true})

	ps.Update(st, Signal{Active: true, Intensity: 1}, testBounds)

	if st.TrailLen() != 1 {
		t.Fatalf("TrailLen() = %d, want 1", st.TrailLen())
	}
	tr := st.Trails()[0]
	// 拖尾在移动之后的位置发射，且本帧不衰减
	if tr.X != 101 || tr.Y != 101 {
		t.Errorf("trail position = (%v, %v), want (101, 101)", tr.X, tr.Y)
	}
	if !approx(tr.Size, 1.6) {
		t.Errorf("trail size = %v, want 1.6", tr.Size)
	}
	if !approx(tr.Opacity, 0.35) {
		t.Errorf("trail opacity = %v, want 0.35", tr.Opacity)
	}
	if tr.Color != color {
		t.Errorf("trail color = %+v, want %+v", tr.Color, color)
	}
}

// TestPhysicsSystem_TrailTrialFails 测试试验失败或不可拖尾时不发射
func TestPhysicsSystem_TrailTrialFails(t *testing.T) {
	st, ps := newPhysicsFixture(particle.NewSequenceSource(0.1))
	st.Add(particle.Particle{X: 100, Y: 100, Size: 2, Opacity: 1, Trail: true})
	st.Add(particle.Particle{X: 200, Y: 100, Size: 2, Opacity: 1, Trail: false})

	for i := 0; i < 10; i++ {
		ps.Update(st, Signal{Active: true, Intensity: 1}, testBounds)
	}

	if st.TrailLen() != 0 {
		t.Errorf("TrailLen() = %d, want 0", st.TrailLen())
	}
}

// TestPhysicsSystem_TrailDecayMonotonic 测试拖尾尺寸和透明度每帧严格下降直到移除
func TestPhysicsSystem_TrailDecayMonotonic(t *testing.T) {
	st, ps := newPhysicsFixture(particle.NewSequenceSource(0.5))
	st.AddTrail(particle.Trail{X: 10, Y: 10, Size: 4, Opacity: 0.895})

	prevSize, prevOpacity := 4.0, 0.895
	ticks := 0
	for st.TrailLen() > 0 {
		ps.Update(st, Signal{Active: true, Intensity: 1}, testBounds)
		ticks++
		if st.TrailLen() == 0 {
			break
		}
		tr := st.Trails()[0]
		if tr.Size >= prevSize || tr.Opacity >= prevOpacity {
			t.Fatalf("tick %d: trail did not strictly decay: size %v→%v, opacity %v→%v",
				ticks, prevSize, tr.Size, prevOpacity, tr.Opacity)
		}
		if tr.Size < 0 || tr.Opacity < 0 || tr.Opacity > 1 {
			t.Fatalf("tick %d: trail out of range: %+v", ticks, tr)
		}
		prevSize, prevOpacity = tr.Size, tr.Opacity
		if ticks > 100 {
			t.Fatal("trail never evicted")
		}
	}

	// 0.895 / 0.03 ≈ 29.8 → 第 30 帧移除
	if ticks != 30 {
		t.Errorf("trail evicted after %d ticks, want 30", ticks)
	}
}

// TestPhysicsSystem_InactiveFadesOut 测试非激活时透明度严格下降直到全部移除
func TestPhysicsSystem_InactiveFadesOut(t *testing.T) {
	src := particle.NewSource(5)
	st, ps := newPhysicsFixture(src)
	st.EnsurePopulation(80, testBounds, 1)

	sig := Signal{Active: false, Intensity: 1}
	for tick := 0; tick < 60; tick++ {
		before := make(map[float64]float64) // Hue → opacity（hue 随机且唯一）
		for _, p := range st.Particles() {
			before[p.Color.Hue] = p.Opacity
		}

		ps.Update(st, sig, testBounds)

		for _, p := range st.Particles() {
			prev, ok := before[p.Color.Hue]
			if !ok {
				t.Fatalf("tick %d: unexpected particle appeared while inactive", tick)
			}
			if p.Opacity >= prev {
				t.Fatalf("tick %d: opacity did not decrease: %v → %v", tick, prev, p.Opacity)
			}
			if p.Opacity <= 0 || p.Opacity > 1 {
				t.Fatalf("tick %d: opacity %v out of (0, 1]", tick, p.Opacity)
			}
		}
		if st.Len() == 0 {
			return
		}
	}
	t.Errorf("%d particles left after 60 inactive ticks", st.Len())
}

// TestPhysicsSystem_ActiveDoesNotDecay 测试激活时粒子不衰减
func TestPhysicsSystem_ActiveDoesNotDecay(t *testing.T) {
	st, ps := newPhysicsFixture(particle.NewSequenceSource(0.5))
	st.Add(particle.Particle{X: 100, Y: 100, Size: 1, Opacity: 0.6, Glow: 4})

	for i := 0; i < 20; i++ {
		ps.Update(st, Signal{Active: true, Intensity: 1}, testBounds)
	}

	p := st.Particles()[0]
	if p.Opacity != 0.6 || p.Glow != 4 {
		t.Errorf("active particle changed: opacity=%v glow=%v", p.Opacity, p.Glow)
	}
}

func TestSignal_Normalized(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2, 2},
		{0, 1},
		{-3, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		got := Signal{Active: true, Intensity: tt.in}.Normalized()
		if got.Intensity != tt.want || !got.Active {
			t.Errorf("Normalized(%v) = %+v, want intensity %v", tt.in, got, tt.want)
		}
	}
}
