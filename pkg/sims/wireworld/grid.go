package wireworld

import "wireworld/internal/core"

// Grid is a bordered Wireworld board. Cells are stored row-major in two
// buffers: cur holds the visible generation and nxt receives the generation
// being computed by Step, after which the buffers swap roles.
type Grid struct {
	w, h int
	def  State
	cur  *core.ByteGrid
	nxt  *core.ByteGrid
	gen  uint64
}

// New creates a width x height grid with every cell set to def.
func New(width, height int, def State) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if !def.Valid() {
		return nil, ErrInvalidState
	}
	g := &Grid{
		w:   width,
		h:   height,
		def: def,
		cur: core.NewByteGrid(width, height),
		nxt: core.NewByteGrid(width, height),
	}
	g.Reset()
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Default returns the state the grid was created with.
func (g *Grid) Default() State { return g.def }

// Generation counts the steps taken since creation, the last Reset or Load.
func (g *Grid) Generation() uint64 { return g.gen }

// Cells exposes the current generation as raw state values. Callers must
// not modify it; use Set or Load instead.
func (g *Grid) Cells() []uint8 { return g.cur.Cells() }

// Reset returns every cell to the default state.
func (g *Grid) Reset() {
	g.cur.Fill(uint8(g.def))
	g.nxt.Fill(uint8(g.def))
	g.gen = 0
}

func (g *Grid) check(op string, x, y int) error {
	if !g.cur.InBounds(x, y) {
		return &RangeError{Op: op, X: x, Y: y, W: g.w, H: g.h}
	}
	return nil
}

// Get returns the current state of (x, y).
func (g *Grid) Get(x, y int) (State, error) {
	if err := g.check("get", x, y); err != nil {
		return Blank, err
	}
	return State(g.cur.Cells()[g.cur.Index(x, y)]), nil
}

// Set overwrites (x, y) in both generations, so an authoring write is
// visible immediately and survives into the next Step unchanged.
func (g *Grid) Set(x, y int, s State) error {
	if err := g.check("set", x, y); err != nil {
		return err
	}
	if !s.Valid() {
		return ErrInvalidState
	}
	idx := g.cur.Index(x, y)
	g.cur.Cells()[idx] = uint8(s)
	g.nxt.Cells()[idx] = uint8(s)
	return nil
}

// tally counts neighbour states of (x, y) in the current generation.
func (g *Grid) tally(x, y int) [NumStates]int {
	var counts [NumStates]int
	g.cur.EachNeighbor(x, y, func(v uint8) {
		if v < NumStates {
			counts[v]++
		}
	})
	return counts
}

// NeighborCounts returns how many in-bounds neighbours of (x, y) are in each
// state. States that do not occur are absent from the map.
func (g *Grid) NeighborCounts(x, y int) (map[State]int, error) {
	if err := g.check("neighbors", x, y); err != nil {
		return nil, err
	}
	counts := g.tally(x, y)
	out := make(map[State]int, NumStates)
	for i, n := range counts {
		if n > 0 {
			out[State(i)] = n
		}
	}
	return out, nil
}

// Step advances the grid by one generation. Every cell is computed from the
// current buffer only; the result becomes visible when the buffers swap.
func (g *Grid) Step() {
	w, h := g.w, g.h
	cur := g.cur.Cells()
	nxt := g.nxt.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			s := State(cur[idx])
			heads := 0
			if s == Copper {
				heads = g.tally(x, y)[Head]
			}
			nxt[idx] = uint8(s.next(heads))
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.gen++
}

// Load replaces the whole grid with states, given in row-major order. The
// grid is left untouched when the sequence is rejected.
func (g *Grid) Load(states []State) error {
	if want := g.w * g.h; len(states) != want {
		return &RangeError{Op: "load", Len: len(states), Want: want}
	}
	for _, s := range states {
		if !s.Valid() {
			return ErrInvalidState
		}
	}
	cur := g.cur.Cells()
	nxt := g.nxt.Cells()
	for i, s := range states {
		cur[i] = uint8(s)
		nxt[i] = uint8(s)
	}
	g.gen = 0
	return nil
}

// Save returns a row-major copy of the current generation.
func (g *Grid) Save() []State {
	cells := g.cur.Cells()
	out := make([]State, len(cells))
	for i, v := range cells {
		out[i] = State(v)
	}
	return out
}

// Census counts the cells in each state across the whole grid.
func (g *Grid) Census() [NumStates]int {
	var counts [NumStates]int
	for _, v := range g.cur.Cells() {
		if v < NumStates {
			counts[v]++
		}
	}
	return counts
}
