package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"wireworld/pkg/sims/wireworld"
)

// DefaultColors maps state names to the colors of the classic Wireworld board.
func DefaultColors() map[string]string {
	return map[string]string{
		"blank":  "#000000",
		"copper": "#804c00",
		"head":   "#ff0000",
		"tail":   "#ffff00",
	}
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Palette builds a state-indexed palette from state names to hex colors.
// Names match case-insensitively. States missing from colors fall back to
// DefaultColors.
func Palette(colors map[string]string) ([]color.RGBA, error) {
	var hexes [wireworld.NumStates]string
	var set [wireworld.NumStates]bool
	for name, hex := range colors {
		s, err := wireworld.ParseState(name)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		if set[s] {
			return nil, fmt.Errorf("palette: state %s is set more than once", s)
		}
		hexes[s], set[s] = hex, true
	}

	defaults := DefaultColors()
	palette := make([]color.RGBA, wireworld.NumStates)
	for _, s := range wireworld.States() {
		hex := hexes[s]
		if !set[s] {
			hex = defaults[s.String()]
		}
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", s, err)
		}
		palette[s] = c
	}
	return palette, nil
}
