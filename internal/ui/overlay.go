//go:build ebiten

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the status text on top of the board.
type Overlay struct {
	hidden bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay { return &Overlay{} }

// Update toggles visibility with the H key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.hidden = !o.hidden
	}
}

// Draw prints status in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image, status string) {
	if o == nil || o.hidden {
		return
	}
	ebitenutil.DebugPrint(screen, status)
}
