//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"log"

	"wireworld/internal/render"
	"wireworld/internal/ui"
	"wireworld/pkg/sims/wireworld"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var brushKeys = map[ebiten.Key]wireworld.State{
	ebiten.KeyDigit1: wireworld.Blank,
	ebiten.KeyDigit2: wireworld.Copper,
	ebiten.KeyDigit3: wireworld.Head,
	ebiten.KeyDigit4: wireworld.Tail,
}

// HUDWidth is the width of the parameter panel beside the board.
const HUDWidth = 200

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA

	scale       int
	brush       wireworld.State
	patternPath string
}

// New constructs a Game for the provided controller. patternPath is the file
// used by the save (S) and load (L) keys.
func New(ctrl *Controller, palette []color.RGBA, scale int, patternPath string) *Game {
	g := ctrl.Grid()
	return &Game{
		ctrl:        ctrl,
		painter:     render.NewGridPainter(g.Width(), g.Height()),
		overlay:     ui.NewOverlay(),
		hud:         ui.NewHUD(&wireworld.Sim{Grid: g}, "Wireworld", HUDWidth),
		palette:     palette,
		scale:       scale,
		brush:       wireworld.Copper,
		patternPath: patternPath,
	}
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.ctrl.Running() {
			g.ctrl.Stop()
		} else {
			g.ctrl.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.load()
	}
	for key, state := range brushKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.brush = state
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		x, y := cx/g.scale, cy/g.scale
		// Drags off the board land out of range and are ignored.
		if err := g.ctrl.SetCell(x, y, g.brush); err != nil && !errors.Is(err, wireworld.ErrOutOfRange) {
			log.Printf("paint (%d,%d): %v", x, y, err)
		}
	}

	g.overlay.Update()
	g.ctrl.Tick()
	g.hud.Update()
	return nil
}

func (g *Game) save() {
	if err := g.ctrl.SaveFile(g.patternPath); err != nil {
		log.Printf("%s: %v", g.patternPath, err)
		return
	}
	log.Printf("saved generation %d to %s", g.ctrl.Generation(), g.patternPath)
}

func (g *Game) load() {
	if err := g.ctrl.LoadFile(g.patternPath); err != nil {
		log.Printf("%s: %v", g.patternPath, err)
		return
	}
	log.Printf("loaded %s", g.patternPath)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.ctrl.Grid()
	g.painter.Blit(screen, grid.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen, ui.StatusLine(grid.Generation(), g.ctrl.Running(), g.brush, grid.Census()))
	g.hud.Draw(screen, grid.Width()*g.scale, grid.Height()*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.Grid().Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
