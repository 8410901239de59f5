package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/targo-project/targo/pkg/version"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or verify the targo store",
	Long: `Create the store directory if absent and write its metadata record.
Opening an existing store verifies the record and upgrades it in place
when written by an older client. A store written by a newer client is
rejected.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
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

		if jsonOutput {
			mustOutputJSON(map[string]any{
				"store_root":    s.Root(),
				"store_version": version.StoreVersion,
			})
		} else {
			fmt.Printf("Store ready at %s (store version %d)\n", s.Root(), version.StoreVersion)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
