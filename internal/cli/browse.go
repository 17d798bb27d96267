// internal/cli/browse.go
package cpgreport

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/cpgreport/internal/tui"
)

// browseCmd opens the interactive summary browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse rankings and summary tables interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		doc, _, err := buildDocument(cfg)
		if err != nil {
			return err
		}
		return tui.Run(doc.Summary)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
