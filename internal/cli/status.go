package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/targo-project/targo/pkg/model"
	"github.com/targo-project/targo/pkg/pathutil"
)

var statusCmd = &cobra.Command{
	Use:   "status [workspace-dir]",
	Short: "Show how a workspace's target directory is classified",
	Long: `Classify the workspace's target path without changing anything:
absent, a plain directory (would be replaced on the next wrap), a
managed targo symlink, or foreign (never touched).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		workspace, err := pathutil.Canonicalize(abs)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		cfg, err := loadConfig()
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
		state, err := s.Classify(workspace, outputPath)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if jsonOutput {
			mustOutputJSON(map[string]any{
				"workspace":   workspace,
				"output_path": outputPath,
				"state":       state.Kind,
				"identifier":  state.Identifier,
			})
			return
		}

		switch state.Kind {
		case model.StateManagedLink:
			fmt.Printf("%s: managed by targo (entry %s)\n", outputPath, state.Identifier)
		case model.StateAbsent:
			fmt.Printf("%s: absent (next wrap will redirect it)\n", outputPath)
		case model.StatePlainDirectory:
			fmt.Printf("%s: plain directory (next wrap will REPLACE it)\n", outputPath)
		case model.StateForeign:
			fmt.Printf("%s: foreign, targo will not touch it\n", outputPath)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
