// Package main runs the transition overlay in a terminal.
//
// Each character cell stands for a block of pixels and shows the overlay as
// its background color (true-color terminals look best).
//
// Usage:
//
//	go run cmd/termfx/main.go [flags]
//
// Controls:
//
//	Space        - Toggle active
//	Enter        - Fire one transition
//	+ / -        - Intensity
//	q / Esc      - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/game"
	"github.com/decker502/aurafx/pkg/render"
	"github.com/gdamore/tcell/v2"
)

var (
	configFlag    = flag.String("config", "data/particles.yaml", "Particle config path")
	intensityFlag = flag.Float64("intensity", 1, "Initial intensity")
	seedFlag      = flag.Int64("seed", 0, "Random seed (0 = time based)")
	cellWFlag     = flag.Int("cell-width", render.DefaultCellWidth, "Pixels per cell, horizontally")
	cellHFlag     = flag.Int("cell-height", render.DefaultCellHeight, "Pixels per cell, vertically")
	fpsFlag       = flag.Int("fps", 30, "Frames per second")
	logFlag       = flag.String("log", "", "Write logs to this file (terminal output is taken by the overlay)")
)

// termFX 终端叠加层
type termFX struct {
	screen     tcell.Screen
	cfg        *config.ParticleConfig
	signals    *game.SignalBox
	scheduler  *game.FrameScheduler
	viewport   *game.ViewportWatcher
	controller *game.LifecycleController
	surface    *render.TerminalSurface

	cellW, cellH   int
	pulseRemaining float64
}

func newTermFX(screen tcell.Screen, cfg *config.ParticleConfig, cellW, cellH int, intensity float64, seed int64) (*termFX, error) {
	cols, rows := screen.Size()
	fx := &termFX{
		screen:    screen,
		cfg:       cfg,
		signals:   game.NewSignalBox(),
		scheduler: game.NewFrameScheduler(),
		viewport:  game.NewViewportWatcher(cols*cellW, rows*cellH),
		cellW:     cellW,
		cellH:     cellH,
	}
	fx.signals.SetIntensity(intensity)

	var source particle.Source
	if seed != 0 {
		source = particle.NewSource(seed)
	}

	var err error
	fx.controller, err = game.NewLifecycleController(game.ControllerOptions{
		Config:    cfg,
		Source:    source,
		Scheduler: fx.scheduler,
		Signals:   fx.signals,
		Viewport:  fx.viewport,
		NewCanvas: func(w, h int) (game.Canvas, error) {
			s, err := render.NewTerminalSurface(screen, cellW, cellH)
			if err != nil {
				return nil, err
			}
			fx.surface = s
			return s, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return fx, nil
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (fx *termFX) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return fx.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventResize:
		fx.screen.Sync()
		cols, rows := fx.screen.Size()
		fx.viewport.Update(cols*fx.cellW, rows*fx.cellH)
	}
	return true
}

// handleKey 处理按键，返回 false 表示退出
func (fx *termFX) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		fx.pulseRemaining = fx.cfg.Transition.DurationSeconds
		fx.setActive(true)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			fx.pulseRemaining = 0
			fx.setActive(!fx.signals.Signal().Active)
		case '+', '=':
			fx.stepIntensity(game.IntensityStep)
		case '-':
			fx.stepIntensity(-game.IntensityStep)
		}
	}
	return true
}

func (fx *termFX) setActive(active bool) {
	fx.signals.SetActive(active)
	fx.controller.Wake()
}

func (fx *termFX) stepIntensity(delta float64) {
	v := fx.signals.Signal().Intensity + delta
	fx.signals.SetIntensity(max(game.MinIntensity, min(v, game.MaxIntensity)))
	fx.controller.Wake()
}

// tick 推进一帧并刷新终端
func (fx *termFX) tick(dt float64) {
	if fx.pulseRemaining > 0 {
		fx.pulseRemaining -= dt
		if fx.pulseRemaining <= 0 {
			fx.pulseRemaining = 0
			fx.setActive(false)
		}
	}
	fx.scheduler.RunPending()
	if fx.controller.Canvas() != nil {
		fx.surface.Show()
	}
}

func (fx *termFX) run() {
	fx.controller.Mount()
	if fx.controller.Disabled() {
		return
	}
	defer fx.controller.Unmount()

	interval := time.Second / time.Duration(max(1, *fpsFlag))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := fx.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !fx.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			fx.tick(interval.Seconds())
		}
	}
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termfx: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.LoadParticleConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termfx: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termfx: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "termfx: %v\n", err)
		os.Exit(1)
	}

	fx, err := newTermFX(screen, cfg, *cellWFlag, *cellHFlag, *intensityFlag, *seedFlag)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "termfx: %v\n", err)
		os.Exit(1)
	}

	fx.setActive(true)
	fx.pulseRemaining = cfg.Transition.DurationSeconds
	fx.run()
	screen.Fini()

	if fx.controller.Disabled() {
		fmt.Fprintln(os.Stderr, "termfx: terminal too small for the overlay")
		os.Exit(1)
	}
}
