package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Uint8n returns a random uint8 in [0, n).
func (r *RNG) Uint8n(n uint8) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(r.r.IntN(int(n)))
}

// IntRange returns a random int in [lo, hi]. It returns lo when hi < lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// FillSparse writes values in [1, n) into roughly density of buf and zero
// elsewhere. It is used to build random boards with long blank runs.
func (r *RNG) FillSparse(buf []uint8, n uint8, density float64) {
	for i := range buf {
		if n <= 1 || r.r.Float64() >= density {
			buf[i] = 0
			continue
		}
		buf[i] = 1 + r.Uint8n(n-1)
	}
}
