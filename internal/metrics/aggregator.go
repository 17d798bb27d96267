// internal/metrics/aggregator.go
package metrics

import (
	"math"
	"sort"
)

// accumulator groups running statistics by key while remembering first-seen order.
type accumulator struct {
	order []string
	stats map[string]*RunningStat
}

func newAccumulator() *accumulator {
	return &accumulator{stats: make(map[string]*RunningStat)}
}

// add records value under key. Non-finite values never enter a mean.
func (a *accumulator) add(key string, value float64) {
	if !finite(value) {
		return
	}
	rs, ok := a.stats[key]
	if !ok {
		rs = &RunningStat{}
		a.stats[key] = rs
		a.order = append(a.order, key)
	}
	updateRunningStat(rs, value)
}

// rankDescending returns keys sorted by mean, highest first, ties in first-seen order.
func (a *accumulator) rankDescending() Order {
	ranked := make(Order, len(a.order))
	copy(ranked, a.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return a.stats[ranked[i]].Mean > a.stats[ranked[j]].Mean
	})
	return ranked
}

// RankModels orders models by their mean value of anchorMetric at anchorAnnotation.
// Models without a matching row are left out.
func RankModels(rows []MetricRow, anchorAnnotation, anchorMetric string) Order {
	acc := newAccumulator()
	for _, row := range rows {
		if row.Annotation != anchorAnnotation || row.Metric != anchorMetric {
			continue
		}
		acc.add(row.Model, row.Value)
	}
	return acc.rankDescending()
}

// RankAnnotations orders annotations by the mean of anchorMetric over all models and outputs.
func RankAnnotations(rows []MetricRow, anchorMetric string) Order {
	acc := newAccumulator()
	for _, row := range rows {
		if row.Metric != anchorMetric {
			continue
		}
		acc.add(row.Annotation, row.Value)
	}
	return acc.rankDescending()
}

// ModelMeans returns the running statistics behind RankModels, keyed by model.
func ModelMeans(rows []MetricRow, anchorAnnotation, anchorMetric string) map[string]RunningStat {
	acc := newAccumulator()
	for _, row := range rows {
		if row.Annotation == anchorAnnotation && row.Metric == anchorMetric {
			acc.add(row.Model, row.Value)
		}
	}
	return acc.snapshot()
}

// AnnotationMeans returns the running statistics behind RankAnnotations, keyed by annotation.
func AnnotationMeans(rows []MetricRow, anchorMetric string) map[string]RunningStat {
	acc := newAccumulator()
	for _, row := range rows {
		if row.Metric == anchorMetric {
			acc.add(row.Annotation, row.Value)
		}
	}
	return acc.snapshot()
}

func (a *accumulator) snapshot() map[string]RunningStat {
	out := make(map[string]RunningStat, len(a.stats))
	for k, v := range a.stats {
		out[k] = *v
	}
	return out
}

// MissingFromOrder lists expected names absent from order, as warnings.
func MissingFromOrder(order Order, dimension, reason string, expected []string) []EmptyGroupWarning {
	var warnings []EmptyGroupWarning
	for _, name := range expected {
		if !order.Contains(name) {
			warnings = append(warnings, EmptyGroupWarning{Dimension: dimension, Group: name, Reason: reason})
		}
	}
	return warnings
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}

// StdDev returns the sample standard deviation, 0 with fewer than two values.
func (rs RunningStat) StdDev() float64 {
	if rs.Count < 2 {
		return 0
	}
	return math.Sqrt(rs.M2 / float64(rs.Count-1))
}
