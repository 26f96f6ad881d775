package wireworld

import (
	"strconv"

	"wireworld/internal/core"
)

// SimName is the registry key of the Wireworld sim.
const SimName = "wireworld"

// Config holds parameters for a registry-constructed Wireworld sim.
type Config struct {
	Width   int
	Height  int
	Default State
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 160, Height: 120, Default: Blank}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["default"]; ok {
		if parsed, err := ParseState(v); err == nil {
			c.Default = parsed
		}
	}
	return c
}

// Sim adapts a Grid to the core.Sim contract.
type Sim struct {
	*Grid
}

// NewSim builds a Sim from cfg.
func NewSim(cfg Config) (*Sim, error) {
	g, err := New(cfg.Width, cfg.Height, cfg.Default)
	if err != nil {
		return nil, err
	}
	return &Sim{Grid: g}, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return SimName }

// Reset restores the default state. The rule is deterministic, so the seed
// is ignored.
func (s *Sim) Reset(int64) { s.Grid.Reset() }

// Parameters describes the grid for status displays.
func (s *Sim) Parameters() core.ParameterSnapshot {
	census := s.Census()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				intParam("w", "Width", s.Width()),
				intParam("h", "Height", s.Height()),
				{Key: "default", Label: "Default state", Type: core.ParamTypeString, Value: s.Default().String()},
			},
		},
		{
			Name:    "Census",
			Summary: "generation " + strconv.FormatUint(s.Generation(), 10),
			Params: []core.Parameter{
				intParam("copper", "Copper", census[Copper]),
				intParam("head", "Heads", census[Head]),
				intParam("tail", "Tails", census[Tail]),
				{Key: "live", Label: "Signals live", Type: core.ParamTypeBool, Value: strconv.FormatBool(census[Head] > 0)},
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func init() {
	core.Register(SimName, func(cfg map[string]string) core.Sim {
		s, err := NewSim(FromMap(cfg))
		if err != nil {
			// FromMap only yields positive sizes and valid states.
			panic(err)
		}
		return s
	})
}
