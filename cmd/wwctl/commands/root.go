package commands

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"wireworld/internal/config"
	"wireworld/internal/printer"

	"github.com/spf13/cobra"
)

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "WIREWORLD_CONFIG"

var (
	configPath string
	debug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wwctl",
	Short: "wwctl - Wireworld pattern tool and board server",
	Long: `wwctl inspects, validates and steps Wireworld boards stored in the
MCell text format, keeps a library of named patterns in a directory or in
Redis, and serves a live board over HTTP and WebSocket.

Configuration is read from --config, or from the file named by
WIREWORLD_CONFIG (which may be set in a .env file).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// Report writes err to w unless printer.Error has already described it.
func Report(w io.Writer, err error) {
	if err == nil || errors.Is(err, printer.ErrReported) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to wireworld.yml (default $"+ConfigEnv+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log file and line numbers")
}

// loadConfig resolves the config file from the flag or environment.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{fmt.Sprintf("Fix the file, or unset $%s to use the defaults", ConfigEnv)},
		)
	}
	return cfg, nil
}
