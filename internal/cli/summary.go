// internal/cli/summary.go
package cpgreport

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwiater/cpgreport/internal/metrics"
	"github.com/mwiater/cpgreport/internal/report"
)

type summaryOptions struct {
	by        string
	tsv       bool
	precision int
}

var summaryOpts summaryOptions

// summaryCmd prints a pivoted summary table.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print mean metrics pivoted by model and/or annotation",
	Long: `Pivot the loaded metrics into one row per group and one column per metric,
sorted by AUC. Grouping by model alone summarizes the anchor annotation; any
grouping that includes anno covers every selected annotation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := parseKeys(strings.Split(summaryOpts.by, ","))
		if err != nil {
			return err
		}
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		doc, ds, err := buildDocument(cfg)
		if err != nil {
			return err
		}

		table, err := summaryTable(doc.Summary, cfg.MetricOptions().Select(ds.Metrics), keys)
		if err != nil {
			return err
		}
		if summaryOpts.tsv {
			return report.WriteTSV(cmd.OutOrStdout(), table)
		}
		return report.WriteTable(cmd.OutOrStdout(), table, report.TableOptions{
			Styled:    !color.NoColor,
			Precision: summaryOpts.precision,
		})
	},
}

func parseKeys(values []string) ([]metrics.GroupKey, error) {
	keys := make([]metrics.GroupKey, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		k, err := metrics.ParseGroupKey(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one grouping key is required (model, anno)")
	}
	return keys, nil
}

// summaryTable reuses the precomputed pivots and builds the annotation-only one on demand.
func summaryTable(s metrics.Summary, rows []metrics.MetricRow, keys []metrics.GroupKey) (metrics.PivotTable, error) {
	switch {
	case len(keys) == 1 && keys[0] == metrics.KeyModel:
		return s.ByModel, nil
	case len(keys) == 2 && keys[0] != keys[1]:
		return s.ByModelAnno, nil
	default:
		return metrics.PivotSummary(rows, keys...)
	}
}

func init() {
	summaryCmd.Flags().StringVar(&summaryOpts.by, "by", string(metrics.KeyModel), "grouping keys: model, anno, or model,anno")
	summaryCmd.Flags().BoolVar(&summaryOpts.tsv, "tsv", false, "write tab-separated values instead of an aligned table")
	summaryCmd.Flags().IntVar(&summaryOpts.precision, "precision", 3, "decimal places in the aligned table")
	rootCmd.AddCommand(summaryCmd)
}
