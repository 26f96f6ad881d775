package main

import (
	"flag"

	"wireworld/internal/app"
	"wireworld/internal/config"
)

// Options represents the command-line parameters for the viewer.
type Options struct {
	Config  string
	Board   string
	Pattern string
	Scale   int
	TPS     int
}

// NewOptions returns Options populated with defaults. Zero Scale and TPS
// leave the configured values alone.
func NewOptions() *Options {
	return &Options{Pattern: "wireworld.mcl"}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.Config, "config", o.Config, "path to wireworld.yml")
	fs.StringVar(&o.Board, "board", o.Board, `initial board: an MCell file or "demo" (overrides board.pattern)`)
	fs.StringVar(&o.Pattern, "pattern", o.Pattern, "file used by the S (save) and L (load) keys")
	fs.IntVar(&o.Scale, "scale", o.Scale, "pixels per cell (overrides view.scale)")
	fs.IntVar(&o.TPS, "tps", o.TPS, "generations per second while running (overrides run.tps)")
}

// Apply overlays the options on cfg and returns the board to load first.
func (o *Options) Apply(cfg *config.Config) string {
	if o.TPS > 0 {
		cfg.Run.TPS = o.TPS
	}
	if o.Scale > 0 {
		cfg.View.Scale = o.Scale
	}
	ref := cfg.Board.Pattern
	if o.Board != "" {
		ref = o.Board
	}
	if ref == "" {
		ref = app.DemoRef
	}
	return ref
}
