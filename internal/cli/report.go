// internal/cli/report.go
package cpgreport

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/cpgreport/internal/report"
)

// reportCmd loads every model, aggregates, and writes all report artifacts.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write Markdown, HTML, TSV, YAML, JSON and PDF reports",
	Long: `Resolve each configured model's metrics and curves files, rank models and
annotations by mean AUC, and write the summary tables, rendered documents and
charts into the output directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		doc, _, err := buildDocument(cfg)
		if err != nil {
			return err
		}

		paths, err := report.Generate(cfg.OutputDirectory(), doc)
		if err != nil {
			return err
		}
		ok := color.New(color.FgGreen)
		for _, p := range paths {
			ok.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("output", "o", "", "directory for report artifacts (default \"reports\")")
	reportCmd.Flags().String("title", "", "report title")
	_ = viper.BindPFlag("outputDir", reportCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("title", reportCmd.Flags().Lookup("title"))

	rootCmd.AddCommand(reportCmd)
}
