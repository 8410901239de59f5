package cli

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/targo-project/targo/internal/cargo"
	"github.com/targo-project/targo/pkg/logging"
	"github.com/targo-project/targo/pkg/pathutil"
)

var wrapCmd = &cobra.Command{
	Use:   "wrap [cargo args...]",
	Short: "Run cargo with its target directory redirected into the store",
	Long: `Run cargo, first redirecting the workspace's target directory into the
targo store. Arguments are passed to cargo unchanged; a leading "--"
separator is accepted and dropped. A target path targo does not own (a
foreign symlink or file) is left alone and cargo runs as-is.

Typically installed as a cargo alias so every cargo invocation goes
through targo.`,
	// Everything after `wrap` belongs to cargo, including flags.
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Component("wrap")

		inv, err := cargo.ParseArgs(args)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		cfg, err := loadConfig()
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		located, err := cargo.LocateWorkspace(cfg.CargoBin, inv.ManifestPath)
		if err != nil {
			fmtErr("locate workspace: %v", err)
			os.Exit(1)
		}
		workspace, err := pathutil.Canonicalize(located)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		s, err := openStore(cfg)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		outputPath := filepath.Join(workspace, "target")
		entry, err := s.Redirect(workspace, outputPath)
		if err != nil {
			fmtErr("redirect %s: %v", outputPath, err)
			os.Exit(1)
		}
		if entry == nil {
			log.Debug().Str("path", outputPath).Msg("target dir not managed, running cargo as-is")
		}

		if err := cargo.New(cfg.CargoBin).Args(inv.Args...).RunOrExec(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				os.Exit(exitErr.ExitCode())
			}
			fmtErr("%v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(wrapCmd)
}
