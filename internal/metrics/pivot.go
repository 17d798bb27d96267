package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// SortMetric is the column pivot tables are ranked by when present.
const SortMetric = "AUC"

// PivotSummary builds a wide table keyed by keys with one column per distinct metric.
// Each cell is the mean value over the dimensions not in keys (typically outputs).
// Non-finite values leave their cell invalid rather than entering a mean.
// Rows are ordered by descending AUC when that column exists, otherwise by first appearance.
func PivotSummary(rows []MetricRow, keys ...GroupKey) (PivotTable, error) {
	keys, err := canonicalKeys(keys)
	if err != nil {
		return PivotTable{}, err
	}

	var (
		columns   []string
		seenCols  = make(map[string]bool)
		groupKeys [][]string
		groups    = make(map[string]map[string]*RunningStat)
	)

	for _, row := range rows {
		if !seenCols[row.Metric] {
			seenCols[row.Metric] = true
			columns = append(columns, row.Metric)
		}
		key := rowKey(row, keys)
		id := strings.Join(key, "\x00")
		cells, ok := groups[id]
		if !ok {
			cells = make(map[string]*RunningStat)
			groups[id] = cells
			groupKeys = append(groupKeys, key)
		}
		rs, ok := cells[row.Metric]
		if !ok {
			rs = &RunningStat{}
			cells[row.Metric] = rs
		}
		if finite(row.Value) {
			updateRunningStat(rs, row.Value)
		}
	}

	table := PivotTable{Keys: keys, Columns: columns, Rows: make([]PivotRow, 0, len(groupKeys))}
	for _, key := range groupKeys {
		stats := groups[strings.Join(key, "\x00")]
		cells := make(map[string]Cell, len(stats))
		for metric, rs := range stats {
			cells[metric] = Cell{Value: rs.Mean, Valid: rs.Count > 0}
		}
		table.Rows = append(table.Rows, PivotRow{Key: key, Cells: cells})
	}

	if seenCols[SortMetric] {
		sort.SliceStable(table.Rows, func(i, j int) bool {
			a, b := table.Rows[i].Get(SortMetric), table.Rows[j].Get(SortMetric)
			if a.Valid != b.Valid {
				return a.Valid
			}
			return a.Valid && a.Value > b.Value
		})
	}
	return table, nil
}

// canonicalKeys rejects unknown or repeated keys and orders them model first.
func canonicalKeys(keys []GroupKey) ([]GroupKey, error) {
	var hasModel, hasAnno bool
	for _, k := range keys {
		switch k {
		case KeyModel:
			if hasModel {
				return nil, fmt.Errorf("duplicate group key %q", k)
			}
			hasModel = true
		case KeyAnnotation:
			if hasAnno {
				return nil, fmt.Errorf("duplicate group key %q", k)
			}
			hasAnno = true
		default:
			return nil, fmt.Errorf("unknown group key %q", k)
		}
	}
	out := make([]GroupKey, 0, 2)
	if hasModel {
		out = append(out, KeyModel)
	}
	if hasAnno {
		out = append(out, KeyAnnotation)
	}
	return out, nil
}

func rowKey(row MetricRow, keys []GroupKey) []string {
	key := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case KeyModel:
			key = append(key, row.Model)
		case KeyAnnotation:
			key = append(key, row.Annotation)
		}
	}
	return key
}
