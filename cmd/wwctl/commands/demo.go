package commands

import (
	"fmt"
	"os"

	"wireworld/pkg/sims/wireworld"

	"github.com/spf13/cobra"
)

var demoOutput string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write the built-in 160x120 demo board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoOutput == "" || demoOutput == "-" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), wireworld.DemoPattern)
			return err
		}
		if err := os.WriteFile(demoOutput, []byte(wireworld.DemoPattern+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write demo: %w", err)
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(demoCmd)
}
