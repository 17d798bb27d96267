package metrics

import (
	"math"
	"sort"
)

// DefaultCurveBins is used when SmoothCurves is asked for fewer than one bin.
const DefaultCurveBins = 50

type seriesKey struct {
	model, curve, anno string
}

// SmoothCurves averages each (model, curve, annotation) series over outputs by
// splitting the observed x range into equal-width bins. Empty bins are skipped.
// Series are returned in first-seen order with points ascending by x.
func SmoothCurves(rows []CurveRow, bins int) []CurveSeries {
	if bins < 1 {
		bins = DefaultCurveBins
	}

	var keys []seriesKey
	points := make(map[seriesKey][]CurveRow)
	for _, row := range rows {
		if !finite(row.X) || !finite(row.Y) {
			continue
		}
		k := seriesKey{row.Model, row.Curve, row.Annotation}
		if _, ok := points[k]; !ok {
			keys = append(keys, k)
		}
		points[k] = append(points[k], row)
	}

	out := make([]CurveSeries, 0, len(keys))
	for _, k := range keys {
		out = append(out, CurveSeries{
			Model:      k.model,
			Curve:      k.curve,
			Annotation: k.anno,
			Points:     smooth(points[k], bins),
		})
	}
	return out
}

func smooth(rows []CurveRow, bins int) []CurvePoint {
	lo, hi := rows[0].X, rows[0].X
	for _, r := range rows[1:] {
		lo = math.Min(lo, r.X)
		hi = math.Max(hi, r.X)
	}

	xs := make([]RunningStat, bins)
	ys := make([]RunningStat, bins)
	for _, r := range rows {
		b := binIndex(r.X, lo, hi, bins)
		updateRunningStat(&xs[b], r.X)
		updateRunningStat(&ys[b], r.Y)
	}

	pts := make([]CurvePoint, 0, bins)
	for b := 0; b < bins; b++ {
		if ys[b].Count == 0 {
			continue
		}
		pts = append(pts, CurvePoint{X: xs[b].Mean, Y: ys[b].Mean, N: int(ys[b].Count)})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}

// binIndex determines the bucket of x within [lo, hi].
func binIndex(x, lo, hi float64, bins int) int {
	if hi <= lo {
		return 0
	}
	b := int((x - lo) / (hi - lo) * float64(bins))
	if b >= bins {
		b = bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// SortSeries orders series by model rank, keeping the existing order within a model.
// Unranked models follow the ranked ones.
func SortSeries(series []CurveSeries, order Order) {
	pos := order.Positions()
	rank := func(model string) int {
		if p, ok := pos[model]; ok {
			return p
		}
		return len(order)
	}
	sort.SliceStable(series, func(i, j int) bool {
		return rank(series[i].Model) < rank(series[j].Model)
	})
}
