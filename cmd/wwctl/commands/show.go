package commands

import (
	"fmt"

	"wireworld/internal/printer"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print a pattern as a colored board",
	Long: `Decode an MCell pattern and print it one row per line.

Blank cells print as '.', copper as 'C', heads as 'H' and tails as 'T'.
Set NO_COLOR to disable colors.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := readPattern(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%dx%d  %s\n", p.Width, p.Height, printer.Census(census(p.States)))
	return printer.Board(out, p.States, p.Width)
}
