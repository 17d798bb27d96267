package metrics

// MetricFilter selects metric rows. An empty field places no constraint.
type MetricFilter struct {
	Models      []string
	Annotations []string
	Metrics     []string
}

// CurveFilter selects curve rows. An empty field places no constraint.
type CurveFilter struct {
	Models      []string
	Annotations []string
	Curves      []string
}

// FilterMetrics returns the rows matching f in input order.
func FilterMetrics(rows []MetricRow, f MetricFilter) []MetricRow {
	models, annos, names := toSet(f.Models), toSet(f.Annotations), toSet(f.Metrics)
	out := make([]MetricRow, 0, len(rows))
	for _, row := range rows {
		if matches(models, row.Model) && matches(annos, row.Annotation) && matches(names, row.Metric) {
			out = append(out, row)
		}
	}
	return out
}

// FilterCurves returns the rows matching f in input order.
func FilterCurves(rows []CurveRow, f CurveFilter) []CurveRow {
	models, annos, names := toSet(f.Models), toSet(f.Annotations), toSet(f.Curves)
	out := make([]CurveRow, 0, len(rows))
	for _, row := range rows {
		if matches(models, row.Model) && matches(annos, row.Annotation) && matches(names, row.Curve) {
			out = append(out, row)
		}
	}
	return out
}

// Distinct returns the distinct values picked from rows in first-seen order.
func Distinct[T any](rows []T, pick func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		v := pick(row)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func matches(set map[string]bool, v string) bool {
	return set == nil || set[v]
}
