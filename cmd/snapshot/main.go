// Package main renders the transition overlay headlessly and writes a PNG.
//
// The engine runs on a software RasterSurface, one frame per tick, with the
// signal active for the first --active-ticks ticks. The final canvas can be
// bloomed and screen-composited onto a page screenshot.
//
// Usage:
//
//	go run cmd/snapshot/main.go [flags]
//
// Flags:
//
//	--out <path>          Output PNG (default overlay.png)
//	--width/--height      Canvas size in pixels (default 800x600)
//	--ticks <n>           Frames to run (default 40)
//	--active-ticks <n>    Frames with the signal active (default: transition duration)
//	--intensity <n>       Intensity (default 1)
//	--seed <n>            Random seed (default 1)
//	--bloom <radius>      Gaussian bloom radius, 0 disables (default 0)
//	--page <path>         Page screenshot to composite the overlay onto
//	--opacity <n>         Overlay opacity when compositing (default overlay.activeOpacity)
//	--config <path>       Particle config (default data/particles.yaml)
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"

	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/game"
	"github.com/decker502/aurafx/pkg/render"
	"github.com/disintegration/imaging"
)

var (
	outFlag         = flag.String("out", "overlay.png", "Output PNG path")
	widthFlag       = flag.Int("width", 800, "Canvas width")
	heightFlag      = flag.Int("height", 600, "Canvas height")
	ticksFlag       = flag.Int("ticks", 40, "Frames to run")
	activeTicksFlag = flag.Int("active-ticks", -1, "Frames with the signal active (-1 = transition duration)")
	intensityFlag   = flag.Float64("intensity", 1, "Intensity")
	seedFlag        = flag.Int64("seed", 1, "Random seed")
	bloomFlag       = flag.Float64("bloom", 0, "Bloom radius (0 = off)")
	pageFlag        = flag.String("page", "", "Page screenshot to composite onto")
	opacityFlag     = flag.Float64("opacity", -1, "Overlay opacity (-1 = overlay.activeOpacity)")
	configFlag      = flag.String("config", "data/particles.yaml", "Particle config path")
	verboseFlag     = flag.Bool("verbose", false, "Enable verbose logging")
)

// options 快照参数
type options struct {
	width, height int
	ticks         int
	activeTicks   int
	intensity     float64
	seed          int64
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadParticleConfig(*configFlag)
	if err != nil {
		return err
	}

	opts := options{
		width:       *widthFlag,
		height:      *heightFlag,
		ticks:       *ticksFlag,
		activeTicks: *activeTicksFlag,
		intensity:   *intensityFlag,
		seed:        *seedFlag,
	}
	if opts.activeTicks < 0 {
		opts.activeTicks = int(math.Round(cfg.Transition.DurationSeconds * 60))
	}

	snap, stats, err := renderOverlay(cfg, opts)
	if err != nil {
		return err
	}
	var img image.Image = snap
	fmt.Printf("ticks=%d particles=%d trails=%d state=%s\n", opts.ticks, stats.particles, stats.trails, stats.state)

	if *bloomFlag > 0 {
		img = render.Bloom(img, *bloomFlag)
	}

	if *pageFlag != "" {
		page, err := imaging.Open(*pageFlag)
		if err != nil {
			return fmt.Errorf("failed to open page: %w", err)
		}
		page = imaging.Fill(page, opts.width, opts.height, imaging.Center, imaging.Lanczos)
		opacity := *opacityFlag
		if opacity < 0 {
			opacity = cfg.Overlay.ActiveOpacity
		}
		img = render.Composite(page, img, opacity)
	}

	if err := imaging.Save(img, *outFlag); err != nil {
		return fmt.Errorf("failed to save %s: %w", *outFlag, err)
	}
	fmt.Printf("wrote %s\n", *outFlag)
	return nil
}

type overlayStats struct {
	particles, trails int
	state             game.ControllerState
}

// renderOverlay 在 RasterSurface 上运行 opts.ticks 帧并返回画布快照
func renderOverlay(cfg *config.ParticleConfig, opts options) (*image.NRGBA, overlayStats, error) {
	signals := game.NewSignalBox()
	signals.Set(opts.activeTicks > 0, opts.intensity)

	var surface *render.RasterSurface
	scheduler := game.NewFrameScheduler()
	ctrl, err := game.NewLifecycleController(game.ControllerOptions{
		Config:    cfg,
		Source:    particle.NewSource(opts.seed),
		Scheduler: scheduler,
		Signals:   signals,
		Viewport:  game.NewViewportWatcher(opts.width, opts.height),
		NewCanvas: func(w, h int) (game.Canvas, error) {
			s, err := render.NewRasterSurface(w, h)
			if err != nil {
				return nil, err
			}
			surface = s
			return s, nil
		},
	})
	if err != nil {
		return nil, overlayStats{}, err
	}

	ctrl.Mount()
	if ctrl.Disabled() {
		return nil, overlayStats{}, fmt.Errorf("canvas %dx%d unavailable", opts.width, opts.height)
	}

	for i := 0; i < opts.ticks; i++ {
		if i == opts.activeTicks {
			signals.SetActive(false)
			ctrl.Wake()
		}
		scheduler.RunPending()
	}

	stats := overlayStats{
		particles: ctrl.Store().Len(),
		trails:    ctrl.Store().TrailLen(),
		state:     ctrl.State(),
	}
	snap := surface.Snapshot()
	ctrl.Unmount()
	return snap, stats, nil
}
