// Package cli implements the targo command line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/targo-project/targo/internal/store"
	"github.com/targo-project/targo/pkg/config"
	"github.com/targo-project/targo/pkg/logging"
	"github.com/targo-project/targo/pkg/version"
)

var (
	jsonOutput bool
	verbosity  int
	storeFlag  string

	rootCmd = &cobra.Command{
		Use:   "targo",
		Short: "Targo - shared cargo target directory store",
		Long: `Targo wraps cargo and redirects each workspace's target directory into
a shared, versioned store, so build output can live on another volume
and be consolidated across checkouts. The workspace keeps a symlink;
cargo never notices.`,
		Version:       version.Client,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig()
			if err != nil {
				// Commands report the config error themselves; fall back
				// to defaults so early log lines still come out.
				cfg = config.Default()
			}
			logging.Setup(effectiveVerbosity(verbosity, cfg))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "override the store root directory")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// effectiveVerbosity resolves the logging verbosity: -v on the command
// line wins, the config's logging.verbosity applies when no flag is
// given.
func effectiveVerbosity(flag int, cfg *config.Config) int {
	if flag > 0 {
		return flag
	}
	return cfg.Logging.Verbosity
}

// loadConfig reads the user config; a missing file yields defaults.
func loadConfig() (*config.Config, error) {
	return config.Load(config.Path())
}

// openStore resolves the store root (flag, config, cargo home) and
// opens it.
func openStore(cfg *config.Config) (*store.Store, error) {
	root := storeFlag
	if root == "" {
		var err error
		if root, err = cfg.StoreDir(); err != nil {
			return nil, err
		}
	}
	return store.Open(root)
}

// outputJSON prints v as JSON if --json flag is set, otherwise does nothing.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// mustOutputJSON is outputJSON for command bodies: an encode failure is
// reported on stderr and ends the process.
func mustOutputJSON(v any) {
	if err := outputJSON(v); err != nil {
		fmtErr("encode JSON output: %v", err)
		os.Exit(1)
	}
}

// fmtErr prints a formatted error line to stderr.
func fmtErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
