package wireworld

import (
	"errors"
	"slices"
	"testing"

	pcore "wireworld/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, w, h int, states ...State) *Grid {
	t.Helper()
	g, err := New(w, h, Blank)
	require.NoError(t, err)
	if len(states) > 0 {
		require.NoError(t, g.Load(states))
	}
	return g
}

func TestNewRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		def  State
		want error
	}{
		{name: "zero width", w: 0, h: 3, want: ErrInvalidSize},
		{name: "zero height", w: 3, h: 0, want: ErrInvalidSize},
		{name: "negative", w: -1, h: -1, want: ErrInvalidSize},
		{name: "unknown default", w: 2, h: 2, def: State(9), want: ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h, tt.def)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResetRestoresDefault(t *testing.T) {
	g, err := New(4, 3, Copper)
	require.NoError(t, err)

	require.NoError(t, g.Set(1, 1, Head))
	g.Step()
	g.Step()
	g.Reset()

	want := slices.Repeat([]State{Copper}, 12)
	assert.Equal(t, want, g.Save())
	assert.Zero(t, g.Generation())

	g.Reset()
	assert.Equal(t, want, g.Save())
}

func TestGetSetOutOfRange(t *testing.T) {
	g := mustGrid(t, 3, 2)
	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}}
	for _, c := range coords {
		_, err := g.Get(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "get %v", c)

		err = g.Set(c[0], c[1], Copper)
		var rerr *RangeError
		require.True(t, errors.As(err, &rerr), "set %v", c)
		assert.Equal(t, c[0], rerr.X)
		assert.Equal(t, c[1], rerr.Y)

		_, err = g.NeighborCounts(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfRange)
	}

	assert.ErrorIs(t, g.Set(0, 0, State(4)), ErrInvalidState)
}

func TestSetIsVisibleImmediately(t *testing.T) {
	g := mustGrid(t, 3, 3)
	require.NoError(t, g.Set(2, 1, Head))

	s, err := g.Get(2, 1)
	require.NoError(t, err)
	assert.Equal(t, Head, s)

	g.Step()
	s, err = g.Get(2, 1)
	require.NoError(t, err)
	assert.Equal(t, Tail, s)
}

func TestNeighborCountSums(t *testing.T) {
	g, err := New(5, 4, Copper)
	require.NoError(t, err)

	sum := func(x, y int) int {
		counts, err := g.NeighborCounts(x, y)
		require.NoError(t, err)
		total := 0
		for _, n := range counts {
			total += n
		}
		return total
	}

	assert.Equal(t, 8, sum(2, 2), "interior")
	for _, c := range [][2]int{{0, 0}, {4, 0}, {0, 3}, {4, 3}} {
		assert.Equal(t, 3, sum(c[0], c[1]), "corner %v", c)
	}
	for _, c := range [][2]int{{2, 0}, {0, 1}, {4, 2}, {3, 3}} {
		assert.Equal(t, 5, sum(c[0], c[1]), "edge %v", c)
	}
}

func TestNeighborCountsOmitsAbsentStates(t *testing.T) {
	g := mustGrid(t, 3, 3,
		Head, Copper, Blank,
		Blank, Copper, Blank,
		Tail, Blank, Blank,
	)
	counts, err := g.NeighborCounts(1, 1)
	require.NoError(t, err)
	assert.Equal(t, map[State]int{Head: 1, Copper: 1, Tail: 1, Blank: 5}, counts)

	counts, err = g.NeighborCounts(2, 2)
	require.NoError(t, err)
	assert.Equal(t, map[State]int{Copper: 1, Blank: 2}, counts)
	_, ok := counts[Head]
	assert.False(t, ok, "zero tallies must be absent")
}

func TestNeighborBoundsOnNonSquareGrid(t *testing.T) {
	// A tall thin grid catches width/height mix-ups in the bounds check.
	g := mustGrid(t, 2, 5)
	require.NoError(t, g.Set(1, 4, Head))

	counts, err := g.NeighborCounts(0, 4)
	require.NoError(t, err)
	assert.Equal(t, map[State]int{Head: 1, Blank: 2}, counts)

	counts, err = g.NeighborCounts(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[Head])
	assert.Equal(t, 4, counts[Blank])
}

func TestStepScenarios(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		before []State
		after  []State
	}{
		{
			name:   "tail cools, copper without heads stays",
			w:      3,
			h:      1,
			before: []State{Tail, Copper, Blank},
			after:  []State{Copper, Copper, Blank},
		},
		{
			name:   "head excites adjacent copper",
			w:      3,
			h:      1,
			before: []State{Head, Copper, Blank},
			after:  []State{Tail, Head, Blank},
		},
		{
			name:   "three heads do not excite",
			w:      3,
			h:      2,
			before: []State{Head, Head, Head, Blank, Copper, Blank},
			after:  []State{Tail, Tail, Tail, Blank, Copper, Blank},
		},
		{
			name:   "two heads excite diagonally",
			w:      3,
			h:      2,
			before: []State{Head, Blank, Head, Blank, Copper, Blank},
			after:  []State{Tail, Blank, Tail, Blank, Head, Blank},
		},
		{
			name:   "updates read the prior generation only",
			w:      4,
			h:      1,
			before: []State{Head, Copper, Copper, Copper},
			after:  []State{Tail, Head, Copper, Copper},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.w, tt.h, tt.before...)
			g.Step()
			assert.Equal(t, tt.after, g.Save())
			assert.Equal(t, uint64(1), g.Generation())
		})
	}
}

func TestElectronTravelsAlongWire(t *testing.T) {
	g := mustGrid(t, 6, 1, Tail, Head, Copper, Copper, Copper, Copper)

	for i := 2; i < 6; i++ {
		g.Step()
		cells := g.Save()
		for x, s := range cells {
			want := Copper
			switch x {
			case i:
				want = Head
			case i - 1:
				want = Tail
			}
			if s != want {
				t.Fatalf("step %d: cell %d = %v, expected %v", i-1, x, s, want)
			}
		}
	}
}

func TestStepFixedPoints(t *testing.T) {
	g := mustGrid(t, 7, 5)
	g.Step()
	assert.Equal(t, slices.Repeat([]State{Blank}, 35), g.Save())

	require.NoError(t, g.Set(3, 2, Copper))
	g.Step()
	s, err := g.Get(3, 2)
	require.NoError(t, err)
	assert.Equal(t, Copper, s)
}

func TestStepDeterministic(t *testing.T) {
	const w, h = 24, 17
	raw := make([]uint8, w*h)
	pcore.NewRNG(42).FillSparse(raw, NumStates, 0.6)
	states := make([]State, len(raw))
	for i, v := range raw {
		states[i] = State(v)
	}

	a := mustGrid(t, w, h, states...)
	b := mustGrid(t, w, h, states...)
	for i := 0; i < 10; i++ {
		a.Step()
		b.Step()
		require.Equal(t, a.Save(), b.Save(), "generation %d", i+1)
	}
}

func TestLoadRejectsAndPreserves(t *testing.T) {
	g := mustGrid(t, 2, 2, Copper, Head, Tail, Blank)
	g.Step()
	before := g.Save()

	err := g.Load([]State{Copper, Copper, Copper})
	var rerr *RangeError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 3, rerr.Len)
	assert.Equal(t, 4, rerr.Want)

	err = g.Load([]State{Copper, Copper, State(7), Copper})
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Equal(t, before, g.Save())
	assert.Equal(t, uint64(1), g.Generation())
}

func TestSaveReturnsCopy(t *testing.T) {
	g := mustGrid(t, 2, 1, Copper, Copper)
	out := g.Save()
	out[0] = Head

	s, err := g.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Copper, s)
}

func TestCensus(t *testing.T) {
	g := mustGrid(t, 3, 2, Copper, Copper, Head, Tail, Blank, Blank)
	census := g.Census()
	assert.Equal(t, [NumStates]int{2, 2, 1, 1}, census)
}

func TestParseState(t *testing.T) {
	for _, s := range States() {
		parsed, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	parsed, err := ParseState("  HEAD ")
	require.NoError(t, err)
	assert.Equal(t, Head, parsed)

	_, err = ParseState("electron")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "State(9)", State(9).String())
}
