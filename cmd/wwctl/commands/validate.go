package commands

import (
	"fmt"

	"wireworld/internal/printer"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check that files are well-formed MCell Wireworld patterns",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var failed []string
	for _, path := range args {
		p, err := readPattern(cmd, path)
		if err != nil {
			failed = append(failed, path)
			continue
		}
		printer.Success("%s: %dx%d board, %s\n", path, p.Width, p.Height, printer.Census(census(p.States)))
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d patterns invalid", len(failed), len(args))
	}
	return nil
}
