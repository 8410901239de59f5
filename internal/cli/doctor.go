package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/targo-project/targo/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the store for inconsistencies",
	Args:  cobra.NoArgs,
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

		result, err := doctor.New(s.Root()).Check()
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if jsonOutput {
			mustOutputJSON(result)
		} else if len(result.Findings) == 0 {
			fmt.Printf("Store %s is healthy\n", s.Root())
		} else {
			for _, f := range result.Findings {
				fmt.Printf("[%s] %s: %s", f.Severity, f.Category, f.Description)
				if f.Path != "" {
					fmt.Printf(" (%s)", f.Path)
				}
				fmt.Println()
			}
		}

		if !result.Healthy {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
