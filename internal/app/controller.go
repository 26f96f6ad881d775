package app

import (
	"fmt"
	"os"
	"time"

	"wireworld/internal/core"
	"wireworld/pkg/mcell"
	"wireworld/pkg/sims/wireworld"
)

// Policy decides which controller operations halt a running simulation.
type Policy struct {
	StopOnLoad  bool
	StopOnSave  bool
	StopOnStep  bool
	StopOnReset bool
}

// DefaultPolicy halts on every operation.
func DefaultPolicy() Policy {
	return Policy{StopOnLoad: true, StopOnSave: true, StopOnStep: true, StopOnReset: true}
}

// EventKind names a controller mutation.
type EventKind string

const (
	EventStep    EventKind = "step"
	EventReset   EventKind = "reset"
	EventLoad    EventKind = "load"
	EventSetCell EventKind = "set_cell"
	EventStart   EventKind = "start"
	EventStop    EventKind = "stop"
)

// Event is delivered to OnChange listeners after a mutation.
type Event struct {
	Kind       EventKind
	Generation uint64
	Running    bool
}

// Controller drives a single Grid: it steps it on a fixed tick while
// running and exposes load/save/reset/setCell to the presentation layer.
// A Controller is not safe for concurrent use.
type Controller struct {
	grid    *wireworld.Grid
	policy  Policy
	clock   *core.FixedStep
	running bool
	onEvent []func(Event)
}

// NewController wraps grid. tps paces Tick while running.
func NewController(grid *wireworld.Grid, policy Policy, tps int) *Controller {
	return &Controller{grid: grid, policy: policy, clock: core.NewFixedStep(tps)}
}

// Grid returns the controlled grid.
func (c *Controller) Grid() *wireworld.Grid { return c.grid }

// Policy returns the halt policy in effect.
func (c *Controller) Policy() Policy { return c.policy }

// Generation returns the grid's generation counter.
func (c *Controller) Generation() uint64 { return c.grid.Generation() }

// Running reports whether Tick advances the grid.
func (c *Controller) Running() bool { return c.running }

// SetTPS changes the run speed.
func (c *Controller) SetTPS(tps int) { c.clock.SetTPS(tps) }

// Interval returns the time between run ticks.
func (c *Controller) Interval() time.Duration { return c.clock.Interval() }

// SetClock replaces the pacing clock.
func (c *Controller) SetClock(fs *core.FixedStep) { c.clock = fs }

// OnChange registers fn to be called after every mutation.
func (c *Controller) OnChange(fn func(Event)) {
	if fn != nil {
		c.onEvent = append(c.onEvent, fn)
	}
}

func (c *Controller) emit(kind EventKind) {
	ev := Event{Kind: kind, Generation: c.grid.Generation(), Running: c.running}
	for _, fn := range c.onEvent {
		fn(ev)
	}
}

// Start begins a run.
func (c *Controller) Start() {
	if c.running {
		return
	}
	c.running = true
	c.clock.Restart()
	c.emit(EventStart)
}

// Stop halts a run.
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.emit(EventStop)
}

func (c *Controller) haltIf(cond bool) {
	if cond {
		c.Stop()
	}
}

// Tick steps the grid once if a run is in progress and a tick is due.
func (c *Controller) Tick() bool {
	if !c.running || !c.clock.ShouldStep() {
		return false
	}
	c.grid.Step()
	c.emit(EventStep)
	return true
}

// StepOnce advances exactly one generation.
func (c *Controller) StepOnce() {
	c.haltIf(c.policy.StopOnStep)
	c.grid.Step()
	c.emit(EventStep)
}

// Reset returns the grid to its default state.
func (c *Controller) Reset() {
	c.haltIf(c.policy.StopOnReset)
	c.grid.Reset()
	c.emit(EventReset)
}

// Load replaces the grid with the decoded pattern text. On failure neither
// the grid nor the run state changes.
func (c *Controller) Load(text string) error {
	p, err := mcell.Decode(text)
	if err != nil {
		return fmt.Errorf("load pattern: %w", err)
	}
	if p.Width != c.grid.Width() || p.Height != c.grid.Height() {
		return fmt.Errorf("load pattern: board %dx%d does not fit grid %dx%d: %w",
			p.Width, p.Height, c.grid.Width(), c.grid.Height(), mcell.ErrFormat)
	}
	if err := c.grid.Load(p.States); err != nil {
		return fmt.Errorf("load pattern: %w", err)
	}
	c.haltIf(c.policy.StopOnLoad)
	c.emit(EventLoad)
	return nil
}

// Save encodes the current generation.
func (c *Controller) Save() (string, error) {
	c.haltIf(c.policy.StopOnSave)
	return mcell.EncodeGrid(c.grid)
}

// DemoRef names the built-in demo board in LoadRef.
const DemoRef = "demo"

// LoadFile loads the MCell file at path.
func (c *Controller) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load pattern: %w", err)
	}
	return c.Load(string(data))
}

// LoadRef loads DemoRef or a file path. An empty ref leaves the grid alone.
func (c *Controller) LoadRef(ref string) error {
	switch ref {
	case "":
		return nil
	case DemoRef:
		return c.Load(wireworld.DemoPattern)
	default:
		return c.LoadFile(ref)
	}
}

// SaveFile writes the current generation to path.
func (c *Controller) SaveFile(path string) error {
	text, err := c.Save()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}
	return nil
}

// SetCell is an interactive authoring write.
func (c *Controller) SetCell(x, y int, s wireworld.State) error {
	if err := c.grid.Set(x, y, s); err != nil {
		return err
	}
	c.emit(EventSetCell)
	return nil
}
