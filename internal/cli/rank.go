// internal/cli/rank.go
package cpgreport

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/cpgreport/internal/metrics"
	"github.com/mwiater/cpgreport/internal/report"
)

var rankBy string

// rankCmd prints the model or annotation ranking.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print models or annotations ordered by mean AUC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		by, err := metrics.ParseGroupKey(rankBy)
		if err != nil {
			return err
		}
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		doc, _, err := buildDocument(cfg)
		if err != nil {
			return err
		}
		return writeRanking(cmd, doc, by)
	},
}

func writeRanking(cmd *cobra.Command, doc report.Document, by metrics.GroupKey) error {
	s := doc.Summary
	if by == metrics.KeyAnnotation {
		title := fmt.Sprintf("Annotations by mean %s", s.AnchorMetric)
		return report.WriteOrder(cmd.OutOrStdout(), title, s.AnnotationOrder, s.AnnotationMeans)
	}
	title := fmt.Sprintf("Models by mean %s at %s", s.AnchorMetric, s.AnchorAnnotation)
	return report.WriteOrder(cmd.OutOrStdout(), title, s.ModelOrder, s.ModelMeans)
}

func init() {
	rankCmd.Flags().StringVar(&rankBy, "by", string(metrics.KeyModel), "rank models (model) or annotations (anno)")
	rootCmd.AddCommand(rankCmd)
}
