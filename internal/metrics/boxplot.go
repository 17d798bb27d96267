package metrics

import (
	"math"
	"sort"
)

// BoxPlot computes distribution statistics of rows grouped by one dimension.
// Groups follow order; groups missing from order are appended in first-seen order.
// Groups without rows do not appear.
func BoxPlot(rows []MetricRow, by GroupKey, order Order) []BoxStats {
	values := make(map[string][]float64)
	var seen []string
	for _, row := range rows {
		if !finite(row.Value) {
			continue
		}
		group := row.Model
		if by == KeyAnnotation {
			group = row.Annotation
		}
		if _, ok := values[group]; !ok {
			seen = append(seen, group)
		}
		values[group] = append(values[group], row.Value)
	}

	groups := make([]string, 0, len(seen))
	for _, g := range order {
		if _, ok := values[g]; ok {
			groups = append(groups, g)
		}
	}
	for _, g := range seen {
		if !order.Contains(g) {
			groups = append(groups, g)
		}
	}

	out := make([]BoxStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, boxStats(g, values[g]))
	}
	return out
}

func boxStats(group string, values []float64) BoxStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var rs RunningStat
	for _, v := range sorted {
		updateRunningStat(&rs, v)
	}
	return BoxStats{
		Group:  group,
		N:      len(sorted),
		Min:    sorted[0],
		Q1:     percentileSorted(sorted, 25),
		Median: percentileSorted(sorted, 50),
		Q3:     percentileSorted(sorted, 75),
		Max:    sorted[len(sorted)-1],
		Mean:   rs.Mean,
	}
}

// percentileSorted interpolates linearly between closest ranks of an ascending slice.
func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	pos := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	weight := pos - float64(lower)
	return sorted[lower] + weight*(sorted[upper]-sorted[lower])
}
