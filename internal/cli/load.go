// internal/cli/load.go
package cpgreport

import (
	"errors"
	"fmt"
	"time"

	"github.com/mwiater/cpgreport/internal/appconfig"
	"github.com/mwiater/cpgreport/internal/logging"
	"github.com/mwiater/cpgreport/internal/metrics"
	"github.com/mwiater/cpgreport/internal/report"
	"github.com/mwiater/cpgreport/internal/resolve"
	"github.com/mwiater/cpgreport/internal/tabular"
)

// loadDataset resolves and reads every configured model's tables. Loading stops at the first fatal error.
// A model without a curves file keeps its metrics and contributes no curves.
func loadDataset(cfg *appconfig.Config) (metrics.Dataset, []report.SourceFile, error) {
	var (
		ds      metrics.Dataset
		sources []report.SourceFile
	)
	if err := appconfig.Validate(*cfg); err != nil {
		return ds, nil, err
	}

	for _, model := range cfg.Models {
		found, err := resolve.One(model, cfg.MetricsGlob())
		if err != nil {
			return ds, nil, fmt.Errorf("unable to locate metrics file: %w", err)
		}
		rows, stats, err := tabular.LoadMetricsFile(model.Name, found.Path)
		if err != nil {
			return ds, nil, err
		}
		ds.Metrics = append(ds.Metrics, rows...)
		src := report.SourceFile{Model: model.Name, Metrics: found.Path, Rows: stats.Rows, Dropped: stats.Dropped}

		found, err = resolve.One(model, cfg.CurvesGlob())
		switch {
		case errors.Is(err, resolve.ErrNoMatch):
			logging.Warnf("[LOAD] model %q has no curves file matching %q", model.Name, cfg.CurvesGlob())
		case err != nil:
			return ds, nil, fmt.Errorf("unable to locate curves file: %w", err)
		default:
			curves, curveStats, err := tabular.LoadCurvesFile(model.Name, found.Path)
			if err != nil {
				return ds, nil, err
			}
			ds.Curves = append(ds.Curves, curves...)
			src.Curves = found.Path
			src.Rows += curveStats.Rows
			src.Dropped += curveStats.Dropped
		}
		sources = append(sources, src)
	}
	return ds, sources, nil
}

// buildDocument loads, aggregates, and wraps everything a report renders.
func buildDocument(cfg *appconfig.Config) (report.Document, metrics.Dataset, error) {
	ds, sources, err := loadDataset(cfg)
	if err != nil {
		return report.Document{}, ds, err
	}

	s, err := metrics.Summarize(ds, cfg.MetricOptions())
	if err != nil {
		return report.Document{}, ds, fmt.Errorf("unable to summarize metrics: %w", err)
	}
	for _, w := range s.Warnings {
		logging.Warnf("[RANK] %s", w)
	}
	logging.LogEvent("[RANK] %d models, %d annotations ranked by %s", len(s.ModelOrder), len(s.AnnotationOrder), s.AnchorMetric)

	doc := report.Document{
		Title:       cfg.ReportTitle(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Sources:     sources,
		Summary:     s,
	}
	return doc, ds, nil
}

func requireConfig() (*appconfig.Config, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration is not initialized")
	}
	return cfg, nil
}
