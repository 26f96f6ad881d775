package ui

import (
	"fmt"

	"wireworld/pkg/sims/wireworld"
)

// StatusLine summarises the board for the viewer's overlay.
func StatusLine(gen uint64, running bool, brush wireworld.State, census [wireworld.NumStates]int) string {
	mode := "paused"
	if running {
		mode = "running"
	}
	return fmt.Sprintf("gen %d  %s  brush %s  heads %d  tails %d  copper %d\n"+
		"space run/stop  n step  r reset  1-4 brush  s save  l load",
		gen, mode, brush, census[wireworld.Head], census[wireworld.Tail], census[wireworld.Copper])
}
