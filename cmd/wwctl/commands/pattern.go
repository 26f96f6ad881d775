package commands

import (
	"fmt"
	"io"
	"os"

	"wireworld/internal/printer"
	"wireworld/pkg/mcell"
	"wireworld/pkg/sims/wireworld"

	"github.com/spf13/cobra"
)

// readPattern decodes the pattern at path; "-" reads stdin.
func readPattern(cmd *cobra.Command, path string) (mcell.Pattern, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return mcell.Pattern{}, printer.Error(
				"cannot open pattern",
				err.Error(),
				[]string{"Check the path, or pass - to read from stdin"},
			)
		}
		defer f.Close()
		r = f
	}
	p, err := mcell.Read(r)
	if err != nil {
		return mcell.Pattern{}, printer.Error(
			fmt.Sprintf("invalid pattern in %s", path),
			err.Error(),
			[]string{"Validate the file:\n  wwctl validate " + path},
		)
	}
	return p, nil
}

// writePattern encodes p to path; "" or "-" writes to the command output.
func writePattern(cmd *cobra.Command, path string, p mcell.Pattern) error {
	if path == "" || path == "-" {
		return mcell.Write(cmd.OutOrStdout(), p)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := mcell.Write(f, p); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func census(states []wireworld.State) [wireworld.NumStates]int {
	var counts [wireworld.NumStates]int
	for _, s := range states {
		counts[s]++
	}
	return counts
}
