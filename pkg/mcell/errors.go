package mcell

import (
	"errors"
	"fmt"
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("mcell: malformed pattern")

// FormatError describes why pattern text could not be decoded. Offset is the
// byte position in the concatenated record body, or -1 when the problem is
// not tied to one position.
type FormatError struct {
	Reason string
	Offset int
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("mcell: %s at body offset %d", e.Reason, e.Offset)
	}
	return "mcell: " + e.Reason
}

// Is makes errors.Is(err, ErrFormat) true for format errors.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func formatErr(format string, a ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, a...), Offset: -1}
}

func formatErrAt(offset int, format string, a ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, a...), Offset: offset}
}
