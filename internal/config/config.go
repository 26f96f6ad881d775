package config

import (
	"fmt"
	"os"
	"strconv"

	"wireworld/internal/app"
	"wireworld/internal/core"
	"wireworld/internal/render"
	"wireworld/pkg/sims/wireworld"

	"gopkg.in/yaml.v3"
)

// Config is the top-level wireworld.yml configuration.
type Config struct {
	Version string       `yaml:"version"`
	Board   BoardConfig  `yaml:"board"`
	Run     RunConfig    `yaml:"run"`
	View    ViewConfig   `yaml:"view"`
	Store   StoreConfig  `yaml:"store"`
	Server  ServerConfig `yaml:"server"`
}

// BoardConfig sizes the grid.
type BoardConfig struct {
	Width   int             `yaml:"width"`
	Height  int             `yaml:"height"`
	Default wireworld.State `yaml:"default"`
	Pattern string          `yaml:"pattern,omitempty"` // MCell file loaded at startup; "demo" for the built-in board
}

// RunConfig sets the run speed and which operations halt a run.
type RunConfig struct {
	TPS         int  `yaml:"tps"`
	StopOnLoad  bool `yaml:"stop_on_load"`
	StopOnSave  bool `yaml:"stop_on_save"`
	StopOnStep  bool `yaml:"stop_on_step"`
	StopOnReset bool `yaml:"stop_on_reset"`
}

// ViewConfig controls the desktop viewer and terminal dumps.
type ViewConfig struct {
	Scale   int               `yaml:"scale"`
	Palette map[string]string `yaml:"palette,omitempty"` // state name -> #rrggbb
}

// StoreConfig selects where saved patterns live.
type StoreConfig struct {
	Backend   string `yaml:"backend"` // "file" or "redis"
	Dir       string `yaml:"dir,omitempty"`
	RedisAddr string `yaml:"redis_addr,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	policy := app.DefaultPolicy()
	return &Config{
		Version: "1",
		Board:   BoardConfig{Width: 160, Height: 120, Default: wireworld.Blank},
		Run: RunConfig{
			TPS:         20,
			StopOnLoad:  policy.StopOnLoad,
			StopOnSave:  policy.StopOnSave,
			StopOnStep:  policy.StopOnStep,
			StopOnReset: policy.StopOnReset,
		},
		View:   ViewConfig{Scale: 5},
		Store:  StoreConfig{Backend: "file", Dir: "patterns", Namespace: "wireworld"},
		Server: ServerConfig{Addr: "localhost:8080"},
	}
}

// Validate checks the configuration for values the program cannot use.
func (c *Config) Validate() error {
	if c.Version != "1" {
		return fmt.Errorf("unsupported version: %s (expected: 1)", c.Version)
	}
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("board: width and height must be positive, got %dx%d", c.Board.Width, c.Board.Height)
	}
	if !c.Board.Default.Valid() {
		return fmt.Errorf("board: %w", wireworld.ErrInvalidState)
	}
	if c.Run.TPS <= 0 {
		return fmt.Errorf("run.tps must be positive, got %d", c.Run.TPS)
	}
	if c.View.Scale <= 0 {
		return fmt.Errorf("view.scale must be positive, got %d", c.View.Scale)
	}
	if _, err := render.Palette(c.View.Palette); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	switch c.Store.Backend {
	case "file":
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required for the file backend")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis backend")
		}
		if c.Store.Namespace == "" {
			return fmt.Errorf("store.namespace is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid store.backend: %s (must be 'file' or 'redis')", c.Store.Backend)
	}
	return nil
}

// Policy converts the run section into a controller policy.
func (r RunConfig) Policy() app.Policy {
	return app.Policy{
		StopOnLoad:  r.StopOnLoad,
		StopOnSave:  r.StopOnSave,
		StopOnStep:  r.StopOnStep,
		StopOnReset: r.StopOnReset,
	}
}

// Params renders the board section as sim registry parameters.
func (b BoardConfig) Params() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(b.Width),
		"h":       strconv.Itoa(b.Height),
		"default": b.Default.String(),
	}
}

// NewGrid builds the board through the sim registry.
func (b BoardConfig) NewGrid() (*wireworld.Grid, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("board %dx%d: %w", b.Width, b.Height, wireworld.ErrInvalidSize)
	}
	if !b.Default.Valid() {
		return nil, fmt.Errorf("board default %d: %w", b.Default, wireworld.ErrInvalidState)
	}
	factory, ok := core.Lookup(wireworld.SimName)
	if !ok {
		return nil, fmt.Errorf("sim %q is not registered (have %v)", wireworld.SimName, core.Names())
	}
	sim, ok := factory(b.Params()).(*wireworld.Sim)
	if !ok {
		return nil, fmt.Errorf("sim %q has unexpected type", wireworld.SimName)
	}
	return sim.Grid, nil
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns validated defaults when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return Load(path)
}
