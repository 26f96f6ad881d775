package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"wireworld/internal/printer"
	"wireworld/internal/store"
	"wireworld/pkg/mcell"

	"github.com/spf13/cobra"
)

var storeGetOutput string

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the pattern library",
	Long: `Save, list, fetch and delete named patterns.

The backend is chosen by the store section of the configuration: a
directory of JSON records, or a Redis server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var storePutCmd = &cobra.Command{
	Use:   "put NAME FILE",
	Short: "Add a pattern to the library",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readPattern(cmd, args[1])
		if err != nil {
			return err
		}
		text, err := p.Encode()
		if err != nil {
			return err
		}
		return withStore(cmd, func(st store.Store) error {
			rec, err := st.Put(cmd.Context(), args[0], text)
			if err != nil {
				return err
			}
			printer.Success("stored %q as %s\n", rec.Name, rec.ID)
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Print a stored pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st store.Store) error {
			rec, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return storeError(args[0], err)
			}
			p, err := mcell.Decode(rec.Pattern)
			if err != nil {
				return fmt.Errorf("stored pattern %s is corrupt: %w", rec.ID, err)
			}
			return writePattern(cmd, storeGetOutput, p)
		})
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st store.Store) error {
			recs, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				printer.Info("No stored patterns\n")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSIZE\tCREATED")
			for _, r := range recs {
				created := time.UnixMilli(r.CreatedAtMs).UTC().Format(time.RFC3339)
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\n", r.ID, r.Name, r.Width, r.Height, created)
			}
			return tw.Flush()
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a stored pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st store.Store) error {
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return storeError(args[0], err)
			}
			printer.Success("deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	storeGetCmd.Flags().StringVarP(&storeGetOutput, "output", "o", "", "Output file (default stdout)")
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return printer.Error(
			"cannot open pattern store",
			err.Error(),
			[]string{"Check the store section of the configuration"},
		)
	}
	defer st.Close()
	return fn(st)
}

func storeError(id string, err error) error {
	if store.IsNotFound(err) {
		return printer.Error(
			fmt.Sprintf("pattern '%s' not found", id),
			"No stored pattern has that ID.",
			[]string{"List stored patterns:\n  wwctl store list"},
		)
	}
	return err
}
