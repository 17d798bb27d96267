package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/mwiater/cpgreport/internal/metrics"
	"github.com/mwiater/cpgreport/internal/util"
)

// Page geometry in millimetres for A4 landscape.
const (
	pageMarginLeft   = 25.0
	pageMarginTop    = 25.0
	plotWidth        = 220.0
	plotHeight       = 140.0
	axisLabelMaxRune = 18
)

var palette = [][3]int{
	{59, 130, 246}, {16, 185, 129}, {245, 158, 11}, {239, 68, 68},
	{139, 92, 246}, {20, 184, 166}, {236, 72, 153}, {100, 116, 139},
}

// plotArea maps data coordinates onto the page.
type plotArea struct {
	x, y, w, h float64
	yMin, yMax float64
	xMin, xMax float64
}

func (p plotArea) px(v float64) float64 {
	if p.xMax <= p.xMin {
		return p.x
	}
	return p.x + (v-p.xMin)/(p.xMax-p.xMin)*p.w
}

func (p plotArea) py(v float64) float64 {
	if p.yMax <= p.yMin {
		return p.y + p.h
	}
	return p.y + p.h - (v-p.yMin)/(p.yMax-p.yMin)*p.h
}

// WriteCharts renders boxplots and smoothed curves for s as a multi-page PDF.
func WriteCharts(w io.Writer, title string, s metrics.Summary) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(false, 0)
	// Core fonts are cp1252; labels outside it render as '.'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, metric := range s.BoxMetrics {
		boxPage(pdf, tr, fmt.Sprintf("%s per model at %s", metric, s.AnchorAnnotation), metric, s.ModelBoxes[metric])
	}
	if len(s.AnnotationBoxes) > 0 {
		boxPage(pdf, tr, fmt.Sprintf("%s per annotation", s.AnchorMetric), s.AnchorMetric, s.AnnotationBoxes)
	}
	for _, curve := range metrics.Distinct(s.Curves, func(c metrics.CurveSeries) string { return c.Curve }) {
		var series []metrics.CurveSeries
		for _, c := range s.Curves {
			if c.Curve == curve {
				series = append(series, c)
			}
		}
		curvePage(pdf, tr, fmt.Sprintf("%s curves at %s", curve, s.AnchorAnnotation), curve, series)
	}
	if pdf.PageCount() == 0 {
		pdf.AddPage()
		heading(pdf, tr(title))
		pdf.SetFont("Helvetica", "", 11)
		pdf.Text(pageMarginLeft, pageMarginTop+20, "No data to plot.")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("unable to render charts: %w", err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageMarginLeft, pageMarginTop-8, text)
}

// chartLabel shortens s for an axis or legend and maps it onto the font code page.
func chartLabel(tr func(string) string, s string) string {
	return tr(util.TruncateRunes(s, axisLabelMaxRune))
}

func boxPage(pdf *fpdf.Fpdf, tr func(string) string, title, yLabel string, boxes []metrics.BoxStats) {
	pdf.AddPage()
	heading(pdf, tr(title))
	if len(boxes) == 0 {
		return
	}

	lo, hi := boxes[0].Min, boxes[0].Max
	for _, b := range boxes[1:] {
		lo = math.Min(lo, b.Min)
		hi = math.Max(hi, b.Max)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.05
	}
	area := plotArea{x: pageMarginLeft, y: pageMarginTop, w: plotWidth, h: plotHeight, yMin: lo - pad, yMax: hi + pad}
	axes(pdf, area, chartLabel(tr, yLabel), "")

	slot := area.w / float64(len(boxes))
	boxW := math.Min(slot*0.6, 30)
	pdf.SetFont("Helvetica", "", 8)
	for i, b := range boxes {
		color := palette[i%len(palette)]
		cx := area.x + slot*(float64(i)+0.5)

		pdf.SetDrawColor(51, 65, 85)
		pdf.SetLineWidth(0.3)
		pdf.Line(cx, area.py(b.Min), cx, area.py(b.Q1))
		pdf.Line(cx, area.py(b.Q3), cx, area.py(b.Max))
		pdf.Line(cx-boxW/4, area.py(b.Min), cx+boxW/4, area.py(b.Min))
		pdf.Line(cx-boxW/4, area.py(b.Max), cx+boxW/4, area.py(b.Max))

		pdf.SetFillColor(color[0], color[1], color[2])
		pdf.Rect(cx-boxW/2, area.py(b.Q3), boxW, area.py(b.Q1)-area.py(b.Q3), "FD")
		pdf.SetLineWidth(0.6)
		pdf.Line(cx-boxW/2, area.py(b.Median), cx+boxW/2, area.py(b.Median))
		pdf.Circle(cx, area.py(b.Mean), 0.8, "D")

		label := chartLabel(tr, b.Group)
		pdf.SetTextColor(15, 23, 42)
		pdf.Text(cx-pdf.GetStringWidth(label)/2, area.y+area.h+6, label)
		n := fmt.Sprintf("n=%d", b.N)
		pdf.Text(cx-pdf.GetStringWidth(n)/2, area.y+area.h+10, n)
	}
}

func curvePage(pdf *fpdf.Fpdf, tr func(string) string, title, curve string, series []metrics.CurveSeries) {
	pdf.AddPage()
	heading(pdf, tr(title))

	xLabel, yLabel := "x", "y"
	switch curve {
	case "ROC":
		xLabel, yLabel = "false positive rate", "true positive rate"
	case "PR":
		xLabel, yLabel = "recall", "precision"
	}

	area := plotArea{x: pageMarginLeft, y: pageMarginTop, w: plotWidth - 40, h: plotHeight, xMin: 0, xMax: 1, yMin: 0, yMax: 1}
	for _, s := range series {
		for _, p := range s.Points {
			area.xMin = math.Min(area.xMin, p.X)
			area.xMax = math.Max(area.xMax, p.X)
			area.yMin = math.Min(area.yMin, p.Y)
			area.yMax = math.Max(area.yMax, p.Y)
		}
	}
	axes(pdf, area, yLabel, xLabel)

	pdf.SetFont("Helvetica", "", 8)
	for i, s := range series {
		color := palette[i%len(palette)]
		pdf.SetDrawColor(color[0], color[1], color[2])
		pdf.SetLineWidth(0.5)
		for j := 1; j < len(s.Points); j++ {
			a, b := s.Points[j-1], s.Points[j]
			pdf.Line(area.px(a.X), area.py(a.Y), area.px(b.X), area.py(b.Y))
		}

		ly := area.y + 6*float64(i)
		lx := area.x + area.w + 6
		pdf.Line(lx, ly, lx+6, ly)
		pdf.SetTextColor(15, 23, 42)
		pdf.Text(lx+8, ly+1, chartLabel(tr, s.Model))
	}
}

func axes(pdf *fpdf.Fpdf, area plotArea, yLabel, xLabel string) {
	pdf.SetDrawColor(100, 116, 139)
	pdf.SetLineWidth(0.3)
	pdf.Line(area.x, area.y, area.x, area.y+area.h)
	pdf.Line(area.x, area.y+area.h, area.x+area.w, area.y+area.h)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 116, 139)
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := area.yMin + (area.yMax-area.yMin)*float64(i)/ticks
		y := area.py(v)
		pdf.Line(area.x-1.5, y, area.x, y)
		label := fmt.Sprintf("%.2f", v)
		pdf.Text(area.x-2.5-pdf.GetStringWidth(label), y+1, label)
	}
	if xLabel != "" {
		for i := 0; i <= ticks; i++ {
			v := area.xMin + (area.xMax-area.xMin)*float64(i)/ticks
			x := area.px(v)
			pdf.Line(x, area.y+area.h, x, area.y+area.h+1.5)
			label := fmt.Sprintf("%.2f", v)
			pdf.Text(x-pdf.GetStringWidth(label)/2, area.y+area.h+5, label)
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Text(area.x+area.w/2-pdf.GetStringWidth(xLabel)/2, area.y+area.h+11, xLabel)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.TransformBegin()
	pdf.TransformRotate(90, area.x-14, area.y+area.h/2)
	pdf.Text(area.x-14-pdf.GetStringWidth(yLabel)/2, area.y+area.h/2, yLabel)
	pdf.TransformEnd()
}
