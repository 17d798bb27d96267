package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMetrics(t *testing.T) {
	rows := []MetricRow{
		{Model: "A", Annotation: "global", Metric: "AUC"},
		{Model: "A", Annotation: "exons", Metric: "AUC"},
		{Model: "B", Annotation: "global", Metric: "ACC"},
	}
	assert.Len(t, FilterMetrics(rows, MetricFilter{}), 3)
	assert.Equal(t, rows[:2], FilterMetrics(rows, MetricFilter{Metrics: []string{"AUC"}}))
	assert.Equal(t, []MetricRow{rows[2]}, FilterMetrics(rows, MetricFilter{Models: []string{"B"}, Annotations: []string{"global"}}))
}

func TestFilterCurves(t *testing.T) {
	rows := []CurveRow{
		{Model: "A", Annotation: "global", Curve: "ROC"},
		{Model: "A", Annotation: "global", Curve: "PR"},
	}
	assert.Equal(t, []CurveRow{rows[1]}, FilterCurves(rows, CurveFilter{Curves: []string{"PR"}}))
}

func TestBoxPlotQuartiles(t *testing.T) {
	rows := []MetricRow{
		auc("A", "global", 1), auc("A", "global", 2), auc("A", "global", 3), auc("A", "global", 4), auc("A", "global", 5),
		auc("B", "global", 0.5),
	}
	boxes := BoxPlot(rows, KeyModel, Order{"B", "A"})
	require.Len(t, boxes, 2)
	assert.Equal(t, "B", boxes[0].Group)
	assert.Equal(t, 1, boxes[0].N)
	assert.Equal(t, 0.5, boxes[0].Median)

	a := boxes[1]
	assert.Equal(t, BoxStats{Group: "A", N: 5, Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5, Mean: 3}, a)
}

func TestBoxPlotAppendsUnorderedGroups(t *testing.T) {
	rows := []MetricRow{auc("A", "exons", 0.2), auc("B", "introns", 0.4), auc("C", "global", math.NaN())}
	boxes := BoxPlot(rows, KeyAnnotation, Order{"introns"})
	require.Len(t, boxes, 2)
	assert.Equal(t, "introns", boxes[0].Group)
	assert.Equal(t, "exons", boxes[1].Group)
}

func TestSmoothCurves(t *testing.T) {
	rows := []CurveRow{
		{Model: "A", Curve: "ROC", Annotation: "global", Output: "c1", X: 0, Y: 0},
		{Model: "A", Curve: "ROC", Annotation: "global", Output: "c2", X: 0.1, Y: 0.2},
		{Model: "A", Curve: "ROC", Annotation: "global", Output: "c1", X: 1, Y: 1},
		{Model: "A", Curve: "ROC", Annotation: "global", Output: "c2", X: 0.95, Y: 0.9},
		{Model: "B", Curve: "ROC", Annotation: "global", Output: "c1", X: 0.5, Y: math.NaN()},
	}
	series := SmoothCurves(rows, 2)
	require.Len(t, series, 1)
	pts := series[0].Points
	require.Len(t, pts, 2)
	assert.InDelta(t, 0.05, pts[0].X, 1e-12)
	assert.InDelta(t, 0.1, pts[0].Y, 1e-12)
	assert.Equal(t, 2, pts[0].N)
	assert.InDelta(t, 0.975, pts[1].X, 1e-12)
	assert.InDelta(t, 0.95, pts[1].Y, 1e-12)
}

func TestSmoothCurvesSinglePoint(t *testing.T) {
	series := SmoothCurves([]CurveRow{{Model: "A", Curve: "PR", X: 0.3, Y: 0.7}}, 0)
	require.Len(t, series, 1)
	assert.Equal(t, []CurvePoint{{X: 0.3, Y: 0.7, N: 1}}, series[0].Points)
}

func TestSortSeries(t *testing.T) {
	series := []CurveSeries{{Model: "A", Curve: "ROC"}, {Model: "B", Curve: "ROC"}, {Model: "A", Curve: "PR"}}
	SortSeries(series, Order{"B", "A"})
	assert.Equal(t, "B", series[0].Model)
	assert.Equal(t, "ROC", series[1].Curve)
	assert.Equal(t, "PR", series[2].Curve)
}

func TestSortSeriesUnrankedLast(t *testing.T) {
	series := []CurveSeries{{Model: "X", Curve: "ROC"}, {Model: "A"}, {Model: "Y"}, {Model: "B"}}
	SortSeries(series, Order{"B", "A"})
	var got []string
	for _, s := range series {
		got = append(got, s.Model)
	}
	assert.Equal(t, []string{"B", "A", "X", "Y"}, got)
}

func TestSummarize(t *testing.T) {
	ds := Dataset{
		Metrics: []MetricRow{
			auc("A", "global", 0.8), auc("A", "global", 0.9), auc("B", "global", 0.95),
			auc("A", "exons", 0.7), auc("B", "exons", 0.6),
			{Model: "A", Annotation: "global", Metric: "ACC", Value: 0.75},
			{Model: "A", Annotation: "global", Metric: "TPR", Value: 0.1},
		},
		Curves: []CurveRow{
			{Model: "A", Annotation: "global", Curve: "ROC", X: 0, Y: 0},
			{Model: "B", Annotation: "global", Curve: "ROC", X: 0, Y: 0},
			{Model: "B", Annotation: "exons", Curve: "ROC", X: 0, Y: 0},
		},
	}
	s, err := Summarize(ds, Options{
		AnchorAnnotation: "global",
		AnchorMetric:     "AUC",
		Metrics:          []string{"AUC", "ACC"},
		Curves:           []string{"ROC"},
		Models:           []string{"A", "B", "C"},
	})
	require.NoError(t, err)

	assert.Equal(t, Order{"B", "A"}, s.ModelOrder)
	assert.Equal(t, Order{"global", "exons"}, s.AnnotationOrder)
	assert.InDelta(t, 0.85, s.ModelMeans["A"].Mean, 1e-12)
	assert.InDelta(t, 0.65, s.AnnotationMeans["exons"].Mean, 1e-12)
	assert.Equal(t, []string{"AUC", "ACC"}, s.ByModel.Columns)
	assert.Equal(t, []string{"AUC", "ACC"}, s.BoxMetrics)
	require.Len(t, s.ModelBoxes["AUC"], 2)
	assert.Equal(t, "B", s.ModelBoxes["AUC"][0].Group)
	require.Len(t, s.Curves, 2)
	assert.Equal(t, "B", s.Curves[0].Model)
	require.Len(t, s.Warnings, 1)
	assert.Equal(t, "C", s.Warnings[0].Group)
	assert.Len(t, s.ByModelAnno.Rows, 4)
}

func TestAnnotationsWithAnchor(t *testing.T) {
	assert.Nil(t, annotationsWithAnchor(Options{AnchorAnnotation: "global"}))
	assert.Equal(t, []string{"exons", "global"}, annotationsWithAnchor(Options{AnchorAnnotation: "global", Annotations: []string{"exons"}}))
	assert.Equal(t, []string{"global"}, annotationsWithAnchor(Options{AnchorAnnotation: "global", Annotations: []string{"global"}}))
}
