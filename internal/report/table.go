package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mwiater/cpgreport/internal/metrics"
)

// Missing is how undefined pivot cells are rendered.
const Missing = "-"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	leaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

// TableOptions controls terminal table rendering.
type TableOptions struct {
	// Styled enables lipgloss colouring of the header and the best row.
	Styled    bool
	Precision int
}

// FormatCell renders a pivot cell with the given number of decimals.
func FormatCell(c metrics.Cell, precision int) string {
	if !c.Valid {
		return Missing
	}
	return fmt.Sprintf("%.*f", precision, c.Value)
}

// WriteTable writes an aligned text rendering of table to w.
func WriteTable(w io.Writer, table metrics.PivotTable, opts TableOptions) error {
	if opts.Precision <= 0 {
		opts.Precision = 3
	}

	header := make([]string, 0, len(table.Keys)+len(table.Columns))
	for _, k := range table.Keys {
		header = append(header, string(k))
	}
	header = append(header, table.Columns...)

	body := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		line := append([]string{}, row.Key...)
		for _, col := range table.Columns {
			line = append(line, FormatCell(row.Get(col), opts.Precision))
		}
		body = append(body, line)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, line := range body {
		for i, cell := range line {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	render := func(cells []string, style *lipgloss.Style) string {
		padded := make([]string, len(cells))
		numKeys := len(table.Keys)
		for i, cell := range cells {
			if i < numKeys {
				padded[i] = runewidth.FillRight(cell, widths[i])
			} else {
				padded[i] = runewidth.FillLeft(cell, widths[i])
			}
		}
		line := strings.Join(padded, "  ")
		if opts.Styled && style != nil {
			line = style.Render(line)
		}
		return line
	}

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}

	if _, err := fmt.Fprintln(w, render(header, &headerStyle)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(rule, "  ")); err != nil {
		return err
	}
	for i, line := range body {
		var style *lipgloss.Style
		if i == 0 {
			style = &leaderStyle
		}
		if _, err := fmt.Fprintln(w, render(line, style)); err != nil {
			return err
		}
	}
	return nil
}

// WriteOrder writes a numbered ranking, one name per line.
func WriteOrder(w io.Writer, title string, order metrics.Order, means map[string]metrics.RunningStat) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	for i, name := range order {
		line := fmt.Sprintf("%3d. %s", i+1, name)
		if rs, ok := means[name]; ok {
			line += fmt.Sprintf("  (mean %.4f, n=%d)", rs.Mean, rs.Count)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
