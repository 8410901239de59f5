package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type entryInfo struct {
	Identifier string     `json:"identifier"`
	Backlinks  []string   `json:"backlinks"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List store entries",
	Long: `List every entry in the store with its backlinks and last-used time.
Targo never prunes entries; this is the view for deciding what to
remove by hand.`,
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

		ids, err := s.Entries()
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		infos := make([]entryInfo, 0, len(ids))
		for _, id := range ids {
			info := entryInfo{Identifier: id}
			meta, ok, err := s.EntryMetadata(id)
			if err != nil {
				fmtErr("%v", err)
				os.Exit(1)
			}
			if ok {
				info.Backlinks = meta.Backlinks
				info.LastUsed = &meta.LastUsed
			}
			infos = append(infos, info)
		}

		if jsonOutput {
			mustOutputJSON(map[string]any{
				"store_root": s.Root(),
				"entries":    infos,
			})
			return
		}

		if len(infos) == 0 {
			fmt.Printf("Store %s is empty\n", s.Root())
			return
		}
		for _, info := range infos {
			fmt.Println(info.Identifier)
			if info.LastUsed != nil {
				fmt.Printf("  last used: %s\n", info.LastUsed.Local().Format(time.RFC3339))
			}
			for _, backlink := range info.Backlinks {
				fmt.Printf("  backlink: %s\n", backlink)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
