package report

import (
	"fmt"
	"strings"

	"github.com/mwiater/cpgreport/internal/metrics"
)

// Document is everything a rendered report needs.
type Document struct {
	Title       string          `json:"title" yaml:"title"`
	GeneratedAt string          `json:"generatedAt" yaml:"generatedAt"`
	Sources     []SourceFile    `json:"sources" yaml:"sources"`
	Summary     metrics.Summary `json:"summary" yaml:"-"`
}

// SourceFile records which files a model's rows were read from.
type SourceFile struct {
	Model   string `json:"model" yaml:"model"`
	Metrics string `json:"metrics" yaml:"metrics"`
	Curves  string `json:"curves,omitempty" yaml:"curves,omitempty"`
	Rows    int    `json:"rows" yaml:"rows"`
	Dropped int    `json:"dropped" yaml:"dropped"`
}

// Markdown renders doc as a Markdown document with GFM tables.
func Markdown(doc Document) string {
	var b strings.Builder
	s := doc.Summary

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	if doc.GeneratedAt != "" {
		fmt.Fprintf(&b, "_Generated %s_\n\n", doc.GeneratedAt)
	}

	if len(doc.Sources) > 0 {
		b.WriteString("## Inputs\n\n| model | metrics file | curves file | rows | dropped |\n|---|---|---|---:|---:|\n")
		for _, src := range doc.Sources {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %d |\n", escape(src.Model), escape(src.Metrics), escape(src.Curves), src.Rows, src.Dropped)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Model ranking\n\nRanked by mean %s at `%s`.\n\n", s.AnchorMetric, s.AnchorAnnotation)
	writeOrderList(&b, s.ModelOrder)

	fmt.Fprintf(&b, "## Annotation ranking\n\nRanked by mean %s over all models and outputs.\n\n", s.AnchorMetric)
	writeOrderList(&b, s.AnnotationOrder)

	fmt.Fprintf(&b, "## Performance at `%s`\n\n", s.AnchorAnnotation)
	writeMarkdownTable(&b, s.ByModel)

	b.WriteString("## Performance by annotation\n\n")
	writeMarkdownTable(&b, s.ByModelAnno)

	if len(s.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "- %s\n", escape(w.String()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeOrderList(b *strings.Builder, order metrics.Order) {
	if len(order) == 0 {
		b.WriteString("_No rows._\n\n")
		return
	}
	for i, name := range order {
		fmt.Fprintf(b, "%d. %s\n", i+1, escape(name))
	}
	b.WriteString("\n")
}

func writeMarkdownTable(b *strings.Builder, table metrics.PivotTable) {
	if len(table.Rows) == 0 {
		b.WriteString("_No rows._\n\n")
		return
	}
	head := make([]string, 0, len(table.Keys)+len(table.Columns))
	align := make([]string, 0, cap(head))
	for _, k := range table.Keys {
		head = append(head, string(k))
		align = append(align, "---")
	}
	for _, c := range table.Columns {
		head = append(head, c)
		align = append(align, "---:")
	}
	fmt.Fprintf(b, "| %s |\n|%s|\n", strings.Join(head, " | "), strings.Join(align, "|"))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(head))
		for _, k := range row.Key {
			cells = append(cells, escape(k))
		}
		for _, c := range table.Columns {
			cells = append(cells, FormatCell(row.Get(c), 3))
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	}
	b.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
