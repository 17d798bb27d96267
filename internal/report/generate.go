package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mwiater/cpgreport/internal/logging"
	"github.com/mwiater/cpgreport/internal/metrics"
	"github.com/mwiater/cpgreport/internal/util"
)

// Artifact file names written under the output directory.
const (
	MarkdownFile = "summary.md"
	HTMLFile     = "report.html"
	YAMLFile     = "report.yaml"
	JSONFile     = "report.json"
	ChartsFile   = "charts.pdf"
)

// TSVFile names the export of a pivot grouped by keys, e.g. summary_model_anno.tsv.
func TSVFile(keys []metrics.GroupKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return "summary_" + util.Slug(strings.Join(parts, ",")) + ".tsv"
}

// Generate writes every report artifact for doc into outputDir and returns the written paths in order.
func Generate(outputDir string, doc Document) ([]string, error) {
	if err := util.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("unable to create output directory %s: %w", outputDir, err)
	}

	var written []string
	write := func(name string, render func(*bytes.Buffer) error) error {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return fmt.Errorf("unable to render %s: %w", name, err)
		}
		path := filepath.Join(outputDir, name)
		if err := util.WriteFile(path, buf.Bytes()); err != nil {
			return fmt.Errorf("unable to write %s: %w", path, err)
		}
		logging.LogEvent("[REPORT] wrote %s (%d bytes)", path, buf.Len())
		written = append(written, path)
		return nil
	}

	s := doc.Summary
	steps := []struct {
		name   string
		render func(*bytes.Buffer) error
	}{
		{MarkdownFile, func(b *bytes.Buffer) error {
			b.WriteString(Markdown(doc))
			return nil
		}},
		{HTMLFile, func(b *bytes.Buffer) error {
			page, err := HTML(doc)
			b.WriteString(page)
			return err
		}},
		{TSVFile(s.ByModel.Keys), func(b *bytes.Buffer) error { return WriteTSV(b, s.ByModel) }},
		{TSVFile(s.ByModelAnno.Keys), func(b *bytes.Buffer) error { return WriteTSV(b, s.ByModelAnno) }},
		{YAMLFile, func(b *bytes.Buffer) error { return WriteYAML(b, doc) }},
		{JSONFile, func(b *bytes.Buffer) error { return WriteJSON(b, doc) }},
		{ChartsFile, func(b *bytes.Buffer) error { return WriteCharts(b, doc.Title, s) }},
	}
	for _, step := range steps {
		if err := write(step.name, step.render); err != nil {
			return written, err
		}
	}
	return written, nil
}
