package mcell

import (
	"strconv"
	"strings"

	"wireworld/pkg/sims/wireworld"
)

// Body alphabet.
const (
	blankLit  = '.'
	copperLit = 'C'
	headLit   = 'H'
	tailLit   = 'T'
	rowSep    = '$'
)

var literals = [wireworld.NumStates]byte{blankLit, copperLit, headLit, tailLit}

func literalOf(s wireworld.State) byte { return literals[s] }

func stateOf(c byte) (wireworld.State, bool) {
	switch c {
	case blankLit:
		return wireworld.Blank, true
	case copperLit:
		return wireworld.Copper, true
	case headLit:
		return wireworld.Head, true
	case tailLit:
		return wireworld.Tail, true
	}
	return wireworld.Blank, false
}

func isLiteral(c byte) bool {
	_, ok := stateOf(c)
	return ok
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// The encoder runs separateRows, trimRowBlanks, compressRuns and
// collapseBlankRows in that order; the decoder undoes them in reverse with
// padBlankRows, expandRuns, padRowBlanks and stripSeparators. Each phase
// relies on the shape left by the one before it: runs are compressed only
// after separators exist, so a run never spans two rows.

// separateRows appends a separator after every width literals.
func separateRows(lits string, width int) string {
	var b strings.Builder
	b.Grow(len(lits) + len(lits)/width + 1)
	for i := 0; i < len(lits); i += width {
		end := min(i+width, len(lits))
		b.WriteString(lits[i:end])
		b.WriteByte(rowSep)
	}
	return b.String()
}

// stripSeparators removes every row separator.
func stripSeparators(s string) string {
	return strings.ReplaceAll(s, string(rowSep), "")
}

// trimRowBlanks drops blank literals that directly precede a separator.
func trimRowBlanks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case blankLit:
			pending++
		case rowSep:
			pending = 0
			b.WriteByte(c)
		default:
			for ; pending > 0; pending-- {
				b.WriteByte(blankLit)
			}
			b.WriteByte(c)
		}
	}
	for ; pending > 0; pending-- {
		b.WriteByte(blankLit)
	}
	return b.String()
}

// padRowBlanks right-pads every row except the final implicit one to width.
// The final segment, after the last separator, must be empty.
func padRowBlanks(s string, width int) (string, error) {
	rows := strings.Split(s, string(rowSep))
	last := len(rows) - 1
	if rows[last] != "" {
		return "", formatErr("cells after the final row separator")
	}
	var b strings.Builder
	b.Grow(len(rows) * (width + 1))
	for i, row := range rows[:last] {
		if len(row) > width {
			return "", formatErr("row %d has %d cells, board width is %d", i, len(row), width)
		}
		b.WriteString(row)
		for n := len(row); n < width; n++ {
			b.WriteByte(blankLit)
		}
		b.WriteByte(rowSep)
	}
	return b.String(), nil
}

// compressRuns rewrites every maximal run of two or more identical cell
// literals as <count><literal>. Separators are never compressed.
func compressRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		j := i + 1
		if isLiteral(c) {
			for j < len(s) && s[j] == c {
				j++
			}
		}
		if n := j - i; n >= 2 {
			b.WriteString(strconv.Itoa(n))
		}
		b.WriteByte(c)
		i = j
	}
	return b.String()
}

// expandRuns replaces every <count><literal> token with count literals.
// limit bounds the expanded length so a hostile count cannot exhaust memory.
func expandRuns(s string, limit int) (string, error) {
	var b strings.Builder
	b.Grow(min(len(s)*2, limit))
	for i := 0; i < len(s); {
		c := s[i]
		if !isDigit(c) {
			if b.Len() >= limit {
				return "", formatErrAt(i, "body longer than the declared board")
			}
			b.WriteByte(c)
			i++
			continue
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == len(s) || !isLiteral(s[i]) {
			return "", formatErrAt(start, "run count %q is not followed by a cell literal", s[start:i])
		}
		n, err := strconv.Atoi(s[start:i])
		if err != nil || n > limit-b.Len() {
			return "", formatErrAt(start, "run count %s exceeds the declared board", s[start:i])
		}
		if n == 0 {
			return "", formatErrAt(start, "zero-length run")
		}
		for k := 0; k < n; k++ {
			b.WriteByte(s[i])
		}
		i++
	}
	return b.String(), nil
}

// collapseBlankRows folds the run of separators ending the body into one.
func collapseBlankRows(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == rowSep {
		end--
	}
	if end == len(s) {
		return s
	}
	return s[:end] + string(rowSep)
}

// padBlankRows appends separators until there is one per row.
func padBlankRows(s string, height int) (string, error) {
	n := strings.Count(s, string(rowSep))
	if n > height {
		return "", formatErr("%d row separators for a board %d rows high", n, height)
	}
	return s + strings.Repeat(string(rowSep), height-n), nil
}

// validateBody rejects characters outside the body alphabet.
func validateBody(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isLiteral(c) || isDigit(c) || c == rowSep {
			continue
		}
		return formatErrAt(i, "unexpected character %q", c)
	}
	return nil
}
