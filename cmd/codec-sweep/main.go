// Command codec-sweep round-trips random Wireworld boards through the MCell
// codec across a grid of sizes and densities, stepping each board and
// checking that every generation survives encode and decode unchanged.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	pcore "wireworld/pkg/core"
	"wireworld/pkg/mcell"
	"wireworld/pkg/sims/wireworld"
)

type scenario struct {
	width, height int
	density       float64
	seed          int64
}

func (s scenario) String() string {
	return fmt.Sprintf("%dx%d density=%.2f seed=%d", s.width, s.height, s.density, s.seed)
}

type scenarioResult struct {
	scenario    scenario
	generations int
	maxBytes    int
	ratio       float64 // encoded bytes per cell at the largest generation
	encodeTime  time.Duration
	decodeTime  time.Duration
	stepTime    time.Duration
	err         error
}

func main() {
	steps := flag.Int("steps", 32, "generations to step and round-trip per scenario")
	seeds := flag.Int("seeds", 4, "random boards per size and density")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	sizes := []struct{ w, h int }{
		{w: 1, h: 1},
		{w: 7, h: 3},
		{w: 64, h: 64},
		{w: 160, h: 120},
		{w: 333, h: 17},
	}
	densities := []float64{0, 0.02, 0.1, 0.35, 1}

	var sets []scenario
	for _, size := range sizes {
		for _, density := range densities {
			for seed := 0; seed < *seeds; seed++ {
				sets = append(sets, scenario{width: size.w, height: size.h, density: density, seed: int64(seed)})
			}
		}
	}

	fmt.Printf("Sweeping %d boards (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	failures := 0
	for res := range results {
		all = append(all, res)
		if res.err != nil {
			failures++
			fmt.Printf("FAIL %s at generation %d: %v\n", res.scenario, res.generations, res.err)
		}
	}

	slices.SortFunc(all, func(a, b scenarioResult) int {
		switch {
		case a.ratio > b.ratio:
			return -1
		case a.ratio < b.ratio:
			return 1
		}
		return 0
	})
	elapsed := time.Since(start)

	fmt.Printf("\nLeast compressible boards (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) %.3f bytes/cell maxBytes=%d encode=%s decode=%s step=%s %s\n",
			i+1, res.ratio, res.maxBytes, res.encodeTime, res.decodeTime, res.stepTime, res.scenario)
	}

	fmt.Printf("\n%d boards, %d failures\n", len(all), failures)
}

// runScenario builds a random board and checks steps generations of it
// against the codec.
func runScenario(sc scenario, steps int) scenarioResult {
	res := scenarioResult{scenario: sc}

	grid, err := wireworld.New(sc.width, sc.height, wireworld.Blank)
	if err != nil {
		res.err = err
		return res
	}

	rng := pcore.NewRNG(sc.seed)
	raw := make([]uint8, sc.width*sc.height)
	rng.FillSparse(raw, wireworld.NumStates, sc.density)
	states := make([]wireworld.State, len(raw))
	for i, v := range raw {
		states[i] = wireworld.State(v)
	}
	if err := grid.Load(states); err != nil {
		res.err = err
		return res
	}

	for gen := 0; gen <= steps; gen++ {
		res.generations = gen
		want := grid.Save()

		t0 := time.Now()
		text, err := mcell.EncodeGrid(grid)
		res.encodeTime += time.Since(t0)
		if err != nil {
			res.err = err
			return res
		}
		if len(text) > res.maxBytes {
			res.maxBytes = len(text)
			res.ratio = float64(len(text)) / float64(len(want))
		}

		t0 = time.Now()
		p, err := mcell.Decode(text)
		res.decodeTime += time.Since(t0)
		if err != nil {
			res.err = err
			return res
		}
		if !slices.Equal(p.States, want) {
			res.err = fmt.Errorf("decoded board differs from the encoded one")
			return res
		}

		t0 = time.Now()
		grid.Step()
		res.stepTime += time.Since(t0)
	}
	return res
}
