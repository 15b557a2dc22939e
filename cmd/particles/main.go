// Package main provides an interactive viewer for the transition particle
// overlay, for tuning data/particles.yaml without the pages around it.
//
// Usage:
//
//	go run cmd/particles/main.go [flags]
//
// Flags:
//
//	--config <path>       Particle config (default data/particles.yaml)
//	--intensity <n>       Initial intensity (default 1)
//	--seed <n>            Random seed (0 = time based)
//	--auto-play           Fire a 0.9s transition every 3 seconds
//	--verbose             Enable verbose logging
//
// Controls:
//
//	Space             - Toggle active
//	Enter             - Fire one transition (active for transition.durationSeconds)
//	+ / -             - Increase/decrease intensity
//	P                 - Toggle pause (停止推进动画帧)
//	R                 - Clear all particles (unmount + mount)
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/game"
	"github.com/decker502/aurafx/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	autoPlayInterval = 3.0
	deltaTime        = 1.0 / 60.0
)

var (
	configFlag    = flag.String("config", "data/particles.yaml", "Particle config path")
	intensityFlag = flag.Float64("intensity", 1, "Initial intensity")
	seedFlag      = flag.Int64("seed", 0, "Random seed (0 = time based)")
	autoPlayFlag  = flag.Bool("auto-play", false, "Fire a transition every 3 seconds")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit")

// ParticleViewerGame implements ebiten.Game interface for the particle viewer
type ParticleViewerGame struct {
	cfg        *config.ParticleConfig
	signals    *game.SignalBox
	scheduler  *game.FrameScheduler
	viewport   *game.ViewportWatcher
	controller *game.LifecycleController
	overlay    *render.EbitenSurface

	// 单次过渡剩余时间（秒），0 表示手动模式
	pulseRemaining float64

	// Auto-play mode
	autoPlay      bool
	autoPlayTimer float64

	// Pause mode
	paused bool

	statusMessage string
}

// NewParticleViewerGame creates a new particle viewer game instance
func NewParticleViewerGame() (*ParticleViewerGame, error) {
	cfg, err := config.LoadParticleConfig(*configFlag)
	if err != nil {
		return nil, err
	}

	g := &ParticleViewerGame{
		cfg:       cfg,
		signals:   game.NewSignalBox(),
		scheduler: game.NewFrameScheduler(),
		viewport:  game.NewViewportWatcher(screenWidth, screenHeight),
		autoPlay:  *autoPlayFlag,
	}
	g.signals.SetIntensity(*intensityFlag)

	var source particle.Source
	if *seedFlag != 0 {
		source = particle.NewSource(*seedFlag)
	}
	g.controller, err = game.NewLifecycleController(game.ControllerOptions{
		Config:    cfg,
		Source:    source,
		Scheduler: g.scheduler,
		Signals:   g.signals,
		Viewport:  g.viewport,
		NewCanvas: func(w, h int) (game.Canvas, error) {
			s, err := render.NewEbitenSurface(w, h)
			if err != nil {
				return nil, err
			}
			g.overlay = s
			return s, nil
		},
		OnStateChange: func(from, to game.ControllerState) {
			g.statusMessage = fmt.Sprintf("%s -> %s", from, to)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	log.Printf("Particle Viewer initialized: baseCount=%d, intensity=%.1f", cfg.BaseCount, *intensityFlag)
	return g, nil
}

func (g *ParticleViewerGame) Update() error {
	if !g.controller.Mounted() && !g.controller.Disabled() {
		g.controller.Mount()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.pulseRemaining = 0
		g.setActive(!g.signals.Signal().Active)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.firePulse()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.stepIntensity(game.IntensityStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.stepIntensity(-game.IntensityStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.clearAllParticles()
	}

	if g.paused {
		return nil
	}

	if g.autoPlay {
		g.autoPlayTimer += deltaTime
		if g.autoPlayTimer >= autoPlayInterval {
			g.autoPlayTimer = 0
			g.firePulse()
		}
	}
	if g.pulseRemaining > 0 {
		g.pulseRemaining -= deltaTime
		if g.pulseRemaining <= 0 {
			g.pulseRemaining = 0
			g.setActive(false)
		}
	}

	g.scheduler.RunPending()
	return nil
}

func (g *ParticleViewerGame) setActive(active bool) {
	g.signals.SetActive(active)
	g.controller.Wake()
}

func (g *ParticleViewerGame) firePulse() {
	g.pulseRemaining = g.cfg.Transition.DurationSeconds
	g.setActive(true)
}

func (g *ParticleViewerGame) stepIntensity(delta float64) {
	v := g.signals.Signal().Intensity + delta
	v = max(game.MinIntensity, min(v, game.MaxIntensity))
	g.signals.SetIntensity(v)
	g.controller.Wake()
}

// clearAllParticles drops every particle and trail and starts on a fresh canvas
func (g *ParticleViewerGame) clearAllParticles() {
	g.controller.Unmount()
	g.controller.Mount()
	g.statusMessage = "Cleared"
}

func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 255})
	if g.overlay != nil && g.controller.Canvas() != nil {
		g.overlay.Present(screen, 1)
	}
	g.drawUI(screen)
}

func (g *ParticleViewerGame) drawUI(screen *ebiten.Image) {
	sig := g.signals.Signal()
	st := g.controller.Store()

	lines := []string{
		fmt.Sprintf("Active: %v   Intensity: %.1f   Target: %d", sig.Active, sig.Intensity, g.cfg.TargetPopulation(sig.Intensity)),
		fmt.Sprintf("Particles: %d   Trails: %d   State: %s", st.Len(), st.TrailLen(), g.controller.State()),
		fmt.Sprintf("FPS: %.0f   TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		"Space: toggle  Enter: pulse  +/-: intensity  P: pause  R: clear  Q: quit",
	}
	if g.controller.Disabled() {
		lines = append(lines, "Overlay disabled: surface unavailable")
	} else if g.statusMessage != "" {
		lines = append(lines, g.statusMessage)
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*20)
	}

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", screen.Bounds().Dx()-80, 10)
	} else if g.autoPlay {
		ebitenutil.DebugPrintAt(screen, "AUTO-PLAY", screen.Bounds().Dx()-100, 10)
	}
}

func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.viewport.Update(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	g, err := NewParticleViewerGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize particle viewer: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("AuraFX Particle Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
	g.controller.Unmount()
}
