package wireworld

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a grid is created with a non-positive dimension.
	ErrInvalidSize = errors.New("wireworld: width and height must be positive")
	// ErrInvalidState is returned for cell values outside the four Wireworld states.
	ErrInvalidState = errors.New("wireworld: invalid cell state")
	// ErrOutOfRange matches every *RangeError via errors.Is.
	ErrOutOfRange = errors.New("wireworld: out of range")
)

// RangeError reports a coordinate or sequence length outside the grid.
type RangeError struct {
	Op string

	// Coordinate failures.
	X, Y int
	W, H int

	// Sequence length failures; Want is zero for coordinate failures.
	Len  int
	Want int
}

func (e *RangeError) Error() string {
	if e.Want > 0 {
		return fmt.Sprintf("wireworld: %s: sequence length %d, want %d", e.Op, e.Len, e.Want)
	}
	return fmt.Sprintf("wireworld: %s: cell (%d,%d) outside %dx%d grid", e.Op, e.X, e.Y, e.W, e.H)
}

// Is makes errors.Is(err, ErrOutOfRange) true for range errors.
func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
