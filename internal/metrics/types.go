// internal/metrics/types.go
package metrics

import "fmt"

// MetricRow is a single (annotation, metric, output, value) measurement for a model.
type MetricRow struct {
	Model      string  `json:"model" yaml:"model"`
	Annotation string  `json:"anno" yaml:"anno"`
	Metric     string  `json:"metric" yaml:"metric"`
	Output     string  `json:"output" yaml:"output"`
	Value      float64 `json:"value" yaml:"value"`
}

// CurveRow is a single sampled point of a performance curve for a model.
type CurveRow struct {
	Model      string  `json:"model"`
	Annotation string  `json:"anno"`
	Curve      string  `json:"curve"`
	Output     string  `json:"output"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Threshold  float64 `json:"thr"`
}

// Order is an explicit ranking of names, best first. Renderers use it as a sort key.
type Order []string

// Index returns the position of name in the order, or -1 when absent.
func (o Order) Index(name string) int {
	for i, n := range o {
		if n == name {
			return i
		}
	}
	return -1
}

// Contains reports whether name is ranked.
func (o Order) Contains(name string) bool {
	return o.Index(name) >= 0
}

// Positions maps each ranked name to its index.
func (o Order) Positions() map[string]int {
	pos := make(map[string]int, len(o))
	for i, n := range o {
		if _, dup := pos[n]; !dup {
			pos[n] = i
		}
	}
	return pos
}

// GroupKey names a dimension a pivot table can be keyed by.
type GroupKey string

const (
	KeyModel      GroupKey = "model"
	KeyAnnotation GroupKey = "anno"
)

// ParseGroupKey accepts "model", "anno" or "annotation".
func ParseGroupKey(s string) (GroupKey, error) {
	switch s {
	case "model":
		return KeyModel, nil
	case "anno", "annotation":
		return KeyAnnotation, nil
	default:
		return "", fmt.Errorf("unknown group key %q (want model or anno)", s)
	}
}

// Cell is one pivoted value. Valid is false when the group had no rows for the metric.
type Cell struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// PivotRow is one row of a PivotTable, keyed by the table's group keys.
type PivotRow struct {
	Key   []string        `json:"key"`
	Cells map[string]Cell `json:"cells"`
}

// Get returns the cell for metric, invalid when absent.
func (r PivotRow) Get(metric string) Cell {
	return r.Cells[metric]
}

// PivotTable is a wide summary: one row per group, one column per metric.
type PivotTable struct {
	Keys    []GroupKey `json:"keys"`
	Columns []string   `json:"columns"`
	Rows    []PivotRow `json:"rows"`
}

// Lookup finds the row whose key matches exactly.
func (t PivotTable) Lookup(key ...string) (PivotRow, bool) {
	for _, row := range t.Rows {
		if equalKeys(row.Key, key) {
			return row, true
		}
	}
	return PivotRow{}, false
}

// Column returns the cells of metric in row order.
func (t PivotTable) Column(metric string) []Cell {
	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, row.Get(metric))
	}
	return cells
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BoxStats summarizes the distribution of a metric within one group.
type BoxStats struct {
	Group  string  `json:"group"`
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// CurvePoint is a smoothed curve coordinate.
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	N int     `json:"n"`
}

// CurveSeries is one smoothed curve for a model.
type CurveSeries struct {
	Model      string       `json:"model"`
	Curve      string       `json:"curve"`
	Annotation string       `json:"anno"`
	Points     []CurvePoint `json:"points"`
}

// EmptyGroupWarning reports a requested group that had no contributing rows.
// It is never fatal; callers log it.
type EmptyGroupWarning struct {
	Dimension string
	Group     string
	Reason    string
}

func (w EmptyGroupWarning) String() string {
	return fmt.Sprintf("no %s rows for %s %q", w.Reason, w.Dimension, w.Group)
}

// RunningStat holds the necessary values for online calculation of mean and variance.
type RunningStat struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"-"` // Sum of squares of differences from the current mean
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}
