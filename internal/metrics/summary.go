package metrics

// Options is the explicit configuration an aggregation run is evaluated with.
type Options struct {
	AnchorAnnotation string
	AnchorMetric     string
	Metrics          []string
	Curves           []string
	Annotations      []string
	CurveBins        int
	// Models lists the configured model names so absent ones can be reported.
	Models []string
}

// Dataset holds every row loaded for a report.
type Dataset struct {
	Metrics []MetricRow `json:"-"`
	Curves  []CurveRow  `json:"-"`
}

// Summary is every derived view a report renders.
type Summary struct {
	AnchorAnnotation string                 `json:"anchorAnnotation"`
	AnchorMetric     string                 `json:"anchorMetric"`
	ModelOrder       Order                  `json:"modelOrder"`
	AnnotationOrder  Order                  `json:"annotationOrder"`
	ModelMeans       map[string]RunningStat `json:"modelMeans"`
	AnnotationMeans  map[string]RunningStat `json:"annotationMeans"`
	ByModel          PivotTable             `json:"byModel"`
	ByModelAnno      PivotTable             `json:"byModelAnno"`
	BoxMetrics       []string               `json:"boxMetrics"`
	ModelBoxes       map[string][]BoxStats  `json:"modelBoxes"`
	AnnotationBoxes  []BoxStats             `json:"annotationBoxes"`
	Curves           []CurveSeries          `json:"curves"`
	Warnings         []EmptyGroupWarning    `json:"-"`
}

// Summarize ranks, pivots and smooths ds according to opts.
func Summarize(ds Dataset, opts Options) (Summary, error) {
	rows := opts.Select(ds.Metrics)

	s := Summary{
		AnchorAnnotation: opts.AnchorAnnotation,
		AnchorMetric:     opts.AnchorMetric,
		ModelOrder:       RankModels(rows, opts.AnchorAnnotation, opts.AnchorMetric),
		AnnotationOrder:  RankAnnotations(rows, opts.AnchorMetric),
		ModelMeans:       ModelMeans(rows, opts.AnchorAnnotation, opts.AnchorMetric),
		AnnotationMeans:  AnnotationMeans(rows, opts.AnchorMetric),
		ModelBoxes:       make(map[string][]BoxStats),
	}
	s.Warnings = MissingFromOrder(s.ModelOrder, "model", opts.AnchorMetric+"@"+opts.AnchorAnnotation, opts.Models)

	anchorRows := FilterMetrics(rows, MetricFilter{Annotations: []string{opts.AnchorAnnotation}})
	var err error
	if s.ByModel, err = PivotSummary(anchorRows, KeyModel); err != nil {
		return Summary{}, err
	}
	if s.ByModelAnno, err = PivotSummary(rows, KeyModel, KeyAnnotation); err != nil {
		return Summary{}, err
	}

	s.BoxMetrics = Distinct(anchorRows, func(r MetricRow) string { return r.Metric })
	for _, metric := range s.BoxMetrics {
		s.ModelBoxes[metric] = BoxPlot(FilterMetrics(anchorRows, MetricFilter{Metrics: []string{metric}}), KeyModel, s.ModelOrder)
	}
	s.AnnotationBoxes = BoxPlot(FilterMetrics(rows, MetricFilter{Metrics: []string{opts.AnchorMetric}}), KeyAnnotation, s.AnnotationOrder)

	curves := FilterCurves(ds.Curves, CurveFilter{Curves: opts.Curves, Annotations: []string{opts.AnchorAnnotation}})
	s.Curves = SmoothCurves(curves, opts.CurveBins)
	SortSeries(s.Curves, s.ModelOrder)
	return s, nil
}

// Select keeps the rows of the configured metrics and annotations.
func (o Options) Select(rows []MetricRow) []MetricRow {
	return FilterMetrics(rows, MetricFilter{Metrics: o.Metrics, Annotations: annotationsWithAnchor(o)})
}

// annotationsWithAnchor keeps the anchor annotation in any configured annotation filter.
func annotationsWithAnchor(opts Options) []string {
	if len(opts.Annotations) == 0 {
		return nil
	}
	for _, a := range opts.Annotations {
		if a == opts.AnchorAnnotation {
			return opts.Annotations
		}
	}
	return append(append([]string{}, opts.Annotations...), opts.AnchorAnnotation)
}
