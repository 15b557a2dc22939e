// Package main checks a particle config file and prints the values the
// engine derives from it.
//
// Usage:
//
//	go run cmd/validate_config/main.go [path]   (default data/particles.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/game"
)

func main() {
	path := "data/particles.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadParticleConfig(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ %s 格式正确\n", path)
	fmt.Printf("✅ baseCount: %d\n", cfg.BaseCount)
	for v := game.MinIntensity; v <= game.MaxIntensity; v += game.IntensityStep {
		fmt.Printf("   intensity %.1f -> %d particles\n", v, cfg.TargetPopulation(v))
	}
	fmt.Printf("✅ transition: %.2fs x%.1f intensity (%d particles at default), overlay opacity %.2f (fade %.2fs)\n",
		cfg.Transition.DurationSeconds, cfg.Transition.ActiveIntensity,
		cfg.TargetPopulation(cfg.Transition.DefaultIntensity*cfg.Transition.ActiveIntensity),
		cfg.Overlay.ActiveOpacity, cfg.Overlay.FadeSeconds)
}
