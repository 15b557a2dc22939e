// Command aurafx runs the safety detection pages with the particle
// page-transition overlay.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose            Enable verbose logging
//	--intensity <n>      Override the saved particle intensity (0.5-3)
//	--seed <n>           Fixed random seed (0 = time based)
//	--config <path>      Particle config (default data/particles.yaml, embedded)
//	--endpoint <url>     Detection service endpoint
//	--export-dir <dir>   Directory for exported results and launcher scripts
//
// Controls:
//
//	1-4 / click nav   Switch page
//	+ / -             Particle intensity
//	P                 Toggle the particle overlay
//	F11               Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/decker502/aurafx/pkg/app"
	"github.com/decker502/aurafx/pkg/embedded"
	"github.com/decker502/aurafx/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	intensityFlag = flag.Float64("intensity", 0, "Override particle intensity (0.5-3, 0 = saved setting)")
	seedFlag      = flag.Int64("seed", 0, "Random seed (0 = time based)")
	configFlag    = flag.String("config", app.DefaultConfigPath, "Particle config path")
	endpointFlag  = flag.String("endpoint", game.DefaultDetectEndpoint, "Detection service endpoint")
	exportDirFlag = flag.String("export-dir", ".", "Directory for exported files")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Intensity:  *intensityFlag,
		Seed:       *seedFlag,
		Endpoint:   *endpointFlag,
		ExportDir:  *exportDirFlag,
		AppName:    "aurafx",
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Space Station Safety Detection")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Fullscreen())

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Printf("[main] %v", err)
	}
}
