//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"wireworld/internal/app"
	"wireworld/internal/config"
	"wireworld/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	opts := NewOptions()
	opts.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.LoadOrDefault(opts.Config)
	if err != nil {
		log.Fatal(err)
	}
	ref := opts.Apply(cfg)

	palette, err := render.Palette(cfg.View.Palette)
	if err != nil {
		log.Fatal(err)
	}
	grid, err := cfg.Board.NewGrid()
	if err != nil {
		log.Fatal(err)
	}
	ctrl := app.NewController(grid, cfg.Run.Policy(), cfg.Run.TPS)
	if err := ctrl.LoadRef(ref); err != nil {
		log.Fatalf("initial board %s: %v", ref, err)
	}

	game := app.New(ctrl, palette, cfg.View.Scale, opts.Pattern)

	ebiten.SetWindowTitle("wireworld")
	ebiten.SetWindowSize(grid.Width()*cfg.View.Scale+app.HUDWidth, grid.Height()*cfg.View.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
