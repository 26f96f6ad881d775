//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"wireworld/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 16
)

// HUD renders the parameter panel to the right of the board.
type HUD struct {
	provider   core.ParameterProvider
	width      int
	title      string
	panel      *ebiten.Image
	lastHeight int
	lines      []string
}

// NewHUD constructs a HUD for provider with the given panel width.
func NewHUD(provider core.ParameterProvider, title string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{provider: provider, width: width, title: title}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot.
func (h *HUD) Update() {
	if h == nil || h.provider == nil {
		return
	}
	h.lines = PanelLines(h.title, h.provider.Parameters())
}

// Draw paints the panel at offsetX, height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	for i, line := range h.lines {
		fg := color.RGBA{R: 200, G: 200, B: 210, A: 255}
		switch {
		case i == 0:
			fg = color.RGBA{R: 255, G: 220, B: 120, A: 255}
		case isHeading(line):
			fg = color.RGBA{R: 150, G: 170, B: 220, A: 255}
		}
		text.Draw(h.panel, line, face, panelPadding, y, fg)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func isHeading(line string) bool {
	f := strings.Fields(line)
	return len(f) > 0 && len(f[0]) > 1 && f[0] == strings.ToUpper(f[0])
}
