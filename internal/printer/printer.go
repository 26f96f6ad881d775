package printer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"wireworld/pkg/sims/wireworld"

	"github.com/fatih/color"
)

func init() {
	// Users can disable with NO_COLOR
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// cellStyle renders one cell of a board dump.
var cellStyle = [wireworld.NumStates]struct {
	glyph string
	paint *color.Color
}{
	wireworld.Blank:  {".", color.New(color.FgHiBlack)},
	wireworld.Copper: {"C", color.New(color.FgYellow)},
	wireworld.Head:   {"H", color.New(color.FgHiBlue, color.Bold)},
	wireworld.Tail:   {"T", color.New(color.FgRed)},
}

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Printf("✓ %s", msg)
	} else {
		green.Print(msg)
	}
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Printf("⚠️  %s", msg)
	} else {
		yellow.Print(msg)
	}
}

// ErrReported matches errors returned by Error, whose details are already on
// stderr.
var ErrReported = errors.New("error already reported")

type reportedError struct{ title string }

func (e *reportedError) Error() string        { return e.title }
func (e *reportedError) Is(target error) bool { return target == ErrReported }

// Error prints a formatted error with title, explanation and suggestions to
// stderr and returns an error carrying only the title, for Cobra.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)
	fmt.Fprintf(os.Stderr, "%s\n", explanation)

	if len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(os.Stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(os.Stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return &reportedError{title: title}
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Printf("→ %s", fmt.Sprintf(format, a...))
}

// Board writes states as rows of colored cell glyphs, width cells per row.
func Board(w io.Writer, states []wireworld.State, width int) error {
	if width <= 0 {
		return fmt.Errorf("board dump: %w", wireworld.ErrInvalidSize)
	}
	var b strings.Builder
	for i, s := range states {
		if !s.Valid() {
			return fmt.Errorf("board dump cell %d: %w", i, wireworld.ErrInvalidState)
		}
		st := cellStyle[s]
		b.WriteString(st.paint.Sprint(st.glyph))
		if (i+1)%width == 0 {
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Census formats per-state counts as "copper=3 head=1 tail=1".
func Census(counts [wireworld.NumStates]int) string {
	parts := make([]string, 0, wireworld.NumStates-1)
	for _, s := range wireworld.States() {
		if s == wireworld.Blank {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", s, counts[s]))
	}
	return strings.Join(parts, " ")
}
