// Package mcell reads and writes Wireworld boards in the MCell run-length
// text format:
//
//	#MCell 4.00
//	#GAME Wireworld
//	#BOARD 160x120
//	#L 2.CTH18C$...
//
// Record bodies use '.' for blank, 'C' copper, 'H' head, 'T' tail, '$' to end
// a row and <count><literal> for runs.
package mcell

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"wireworld/pkg/sims/wireworld"
)

const (
	// Version is the format version written in the first header line.
	Version = "4.00"
	// Game is the game identifier written in the second header line.
	Game = "Wireworld"
	// ChunkSize is the maximum body length of one #L record.
	ChunkSize = 64
	// MaxCells caps the board size Decode accepts.
	MaxCells = 1 << 24

	recordPrefix = "#L"
)

var boardRe = regexp.MustCompile(`^#BOARD\s+(\d+)\s*[xX]\s*(\d+)\s*$`)

// Pattern is one decoded board snapshot.
type Pattern struct {
	Width  int
	Height int
	States []wireworld.State
}

// Encode renders states, a row-major width x height board, as MCell text.
func Encode(states []wireworld.State, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("mcell: encode %dx%d: %w", width, height, wireworld.ErrInvalidSize)
	}
	if want := width * height; len(states) != want {
		return "", &wireworld.RangeError{Op: "encode", Len: len(states), Want: want}
	}

	lits := make([]byte, len(states))
	for i, s := range states {
		if !s.Valid() {
			return "", fmt.Errorf("mcell: encode cell %d: %w", i, wireworld.ErrInvalidState)
		}
		lits[i] = literalOf(s)
	}

	body := separateRows(string(lits), width)
	body = trimRowBlanks(body)
	body = compressRuns(body)
	body = collapseBlankRows(body)

	var b strings.Builder
	fmt.Fprintf(&b, "#MCell %s\n#GAME %s\n#BOARD %dx%d", Version, Game, width, height)
	for i := 0; i < len(body); i += ChunkSize {
		end := min(i+ChunkSize, len(body))
		b.WriteString("\n" + recordPrefix + " ")
		b.WriteString(body[i:end])
	}
	return b.String(), nil
}

// Decode parses MCell text back into a Pattern. It fails with a *FormatError
// when the board header is missing or the body does not describe exactly
// width x height cells.
func Decode(text string) (Pattern, error) {
	width, height, body, err := scan(text)
	if err != nil {
		return Pattern{}, err
	}
	if err := validateBody(body); err != nil {
		return Pattern{}, err
	}

	body, err = padBlankRows(body, height)
	if err != nil {
		return Pattern{}, err
	}
	body, err = expandRuns(body, width*height+height)
	if err != nil {
		return Pattern{}, err
	}
	body, err = padRowBlanks(body, width)
	if err != nil {
		return Pattern{}, err
	}
	body = stripSeparators(body)

	if want := width * height; len(body) != want {
		return Pattern{}, formatErr("body holds %d cells, board %dx%d needs %d", len(body), width, height, want)
	}
	states := make([]wireworld.State, len(body))
	for i := 0; i < len(body); i++ {
		s, _ := stateOf(body[i])
		states[i] = s
	}
	return Pattern{Width: width, Height: height, States: states}, nil
}

// scan extracts the board size and the concatenated record bodies.
func scan(text string) (width, height int, body string, err error) {
	var records strings.Builder
	found := false
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 4096), len(text)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "#BOARD"):
			m := boardRe.FindStringSubmatch(line)
			if m == nil {
				return 0, 0, "", formatErr("unparseable board header %q", line)
			}
			width, err = strconv.Atoi(m[1])
			if err != nil {
				return 0, 0, "", formatErr("board width %q", m[1])
			}
			height, err = strconv.Atoi(m[2])
			if err != nil {
				return 0, 0, "", formatErr("board height %q", m[2])
			}
			found = true
		case isRecord(line):
			records.WriteString(strings.TrimSpace(line[len(recordPrefix):]))
		}
	}
	if err := sc.Err(); err != nil {
		return 0, 0, "", formatErr("reading pattern: %v", err)
	}
	if !found {
		return 0, 0, "", formatErr("missing #BOARD header")
	}
	if width <= 0 || height <= 0 {
		return 0, 0, "", formatErr("board size %dx%d must be positive", width, height)
	}
	if width > MaxCells/height {
		return 0, 0, "", formatErr("board size %dx%d exceeds %d cells", width, height, MaxCells)
	}
	return width, height, records.String(), nil
}

// isRecord reports whether line is a #L body record. Other headers that
// start with the same letters, such as #LIFE, are not.
func isRecord(line string) bool {
	if !strings.HasPrefix(line, recordPrefix) {
		return false
	}
	rest := line[len(recordPrefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// Encode renders the pattern as MCell text.
func (p Pattern) Encode() (string, error) {
	return Encode(p.States, p.Width, p.Height)
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	s, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	decoded, err := Decode(string(text))
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
