package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mwiater/cpgreport/internal/metrics"
)

// WriteTSV writes table as tab-separated values. Undefined cells are left empty.
func WriteTSV(w io.Writer, table metrics.PivotTable) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := make([]string, 0, len(table.Keys)+len(table.Columns))
	for _, k := range table.Keys {
		header = append(header, string(k))
	}
	header = append(header, table.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range table.Rows {
		record := append([]string{}, row.Key...)
		for _, col := range table.Columns {
			cell := row.Get(col)
			if cell.Valid {
				record = append(record, strconv.FormatFloat(cell.Value, 'g', -1, 64))
			} else {
				record = append(record, "")
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// yamlDocument is the YAML projection of a report. Pivot rows become maps so the
// file reads naturally; undefined cells are omitted.
type yamlDocument struct {
	Title           string           `yaml:"title"`
	GeneratedAt     string           `yaml:"generatedAt,omitempty"`
	Anchor          string           `yaml:"anchor"`
	ModelOrder      []string         `yaml:"modelOrder"`
	AnnotationOrder []string         `yaml:"annotationOrder"`
	Sources         []SourceFile     `yaml:"sources,omitempty"`
	ByModel         []map[string]any `yaml:"byModel"`
	ByModelAnno     []map[string]any `yaml:"byModelAnno"`
	Warnings        []string         `yaml:"warnings,omitempty"`
}

// WriteYAML writes the rankings and summary tables of doc as YAML.
func WriteYAML(w io.Writer, doc Document) error {
	s := doc.Summary
	out := yamlDocument{
		Title:           doc.Title,
		GeneratedAt:     doc.GeneratedAt,
		Anchor:          fmt.Sprintf("%s@%s", s.AnchorMetric, s.AnchorAnnotation),
		ModelOrder:      s.ModelOrder,
		AnnotationOrder: s.AnnotationOrder,
		Sources:         doc.Sources,
		ByModel:         tableRecords(s.ByModel),
		ByModelAnno:     tableRecords(s.ByModelAnno),
	}
	for _, warning := range s.Warnings {
		out.Warnings = append(out.Warnings, warning.String())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("unable to encode YAML report: %w", err)
	}
	return enc.Close()
}

func tableRecords(table metrics.PivotTable) []map[string]any {
	records := make([]map[string]any, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := make(map[string]any, len(table.Keys)+len(table.Columns))
		for i, k := range table.Keys {
			rec[string(k)] = row.Key[i]
		}
		for _, col := range table.Columns {
			if cell := row.Get(col); cell.Valid {
				rec[col] = cell.Value
			}
		}
		records = append(records, rec)
	}
	return records
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal analysis JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
