package commands

import (
	"fmt"

	"wireworld/internal/printer"
	"wireworld/pkg/mcell"
	"wireworld/pkg/sims/wireworld"

	"github.com/spf13/cobra"
)

var (
	stepCount  int
	stepOutput string
	stepShow   bool
)

var stepCmd = &cobra.Command{
	Use:   "step FILE",
	Short: "Advance a pattern by N generations",
	Long: `Load an MCell pattern, advance it, and write the result as MCell text.

Examples:
  # Print the board 10 generations on
  wwctl step -n 10 clock.mcl

  # Write the result to a file and show it
  wwctl step -n 100 -o later.mcl --show clock.mcl`,
	Args: cobra.ExactArgs(1),
	RunE: runStep,
}

func init() {
	stepCmd.Flags().IntVarP(&stepCount, "generations", "n", 1, "Number of generations to advance")
	stepCmd.Flags().StringVarP(&stepOutput, "output", "o", "", "Output file (default stdout)")
	stepCmd.Flags().BoolVar(&stepShow, "show", false, "Print the resulting board")
	rootCmd.AddCommand(stepCmd)
}

func runStep(cmd *cobra.Command, args []string) error {
	if stepCount < 0 {
		return printer.Error(
			"invalid generation count",
			fmt.Sprintf("Got %d.", stepCount),
			[]string{"Pass a count of zero or more with -n"},
		)
	}
	p, err := readPattern(cmd, args[0])
	if err != nil {
		return err
	}

	g, err := wireworld.New(p.Width, p.Height, wireworld.Blank)
	if err != nil {
		return err
	}
	if err := g.Load(p.States); err != nil {
		return err
	}
	for i := 0; i < stepCount; i++ {
		g.Step()
	}

	next := mcell.Pattern{Width: g.Width(), Height: g.Height(), States: g.Save()}
	if err := writePattern(cmd, stepOutput, next); err != nil {
		return err
	}
	if stepShow {
		fmt.Fprintf(cmd.OutOrStdout(), "generation %d  %s\n", g.Generation(), printer.Census(g.Census()))
		return printer.Board(cmd.OutOrStdout(), next.States, next.Width)
	}
	return nil
}
