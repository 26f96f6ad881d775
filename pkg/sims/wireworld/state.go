package wireworld

import (
	"fmt"
	"strings"
)

// State is the value of a single Wireworld cell.
type State uint8

const (
	Blank State = iota
	Copper
	Head
	Tail
)

// NumStates is the number of valid cell states.
const NumStates = 4

var stateNames = [NumStates]string{"blank", "copper", "head", "tail"}

// Valid reports whether s is one of the four Wireworld states.
func (s State) Valid() bool { return s < NumStates }

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("State(%d)", uint8(s))
	}
	return stateNames[s]
}

// States lists every valid state in enumeration order.
func States() []State { return []State{Blank, Copper, Head, Tail} }

// ParseState resolves a state name such as "copper" or "Head".
func ParseState(name string) (State, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range stateNames {
		if s == n {
			return State(i), nil
		}
	}
	return Blank, fmt.Errorf("%w: %q", ErrInvalidState, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// next applies the transition rule. heads is the number of Head neighbours
// and only matters for Copper.
func (s State) next(heads int) State {
	switch s {
	case Head:
		return Tail
	case Tail:
		return Copper
	case Copper:
		if heads == 1 || heads == 2 {
			return Head
		}
		return Copper
	default:
		return Blank
	}
}
