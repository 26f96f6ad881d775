package mcell

import (
	"fmt"
	"io"

	"wireworld/pkg/sims/wireworld"
)

// Write encodes p and writes it to w followed by a newline.
func Write(w io.Writer, p Pattern) error {
	text, err := p.Encode()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text+"\n")
	return err
}

// Read decodes a pattern from r.
func Read(r io.Reader) (Pattern, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Pattern{}, fmt.Errorf("mcell: read pattern: %w", err)
	}
	return Decode(string(data))
}

// EncodeGrid renders the current generation of g.
func EncodeGrid(g *wireworld.Grid) (string, error) {
	return Encode(g.Save(), g.Width(), g.Height())
}

// DecodeInto decodes text and loads it into g. The board size must match
// g; on any failure g keeps its previous contents.
func DecodeInto(g *wireworld.Grid, text string) error {
	p, err := Decode(text)
	if err != nil {
		return err
	}
	if p.Width != g.Width() || p.Height != g.Height() {
		return formatErr("board %dx%d does not match grid %dx%d", p.Width, p.Height, g.Width(), g.Height())
	}
	return g.Load(p.States)
}
