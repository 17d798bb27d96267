// Package tabular reads per-model metric and curve tables from tab-separated files.
package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mwiater/cpgreport/internal/logging"
	"github.com/mwiater/cpgreport/internal/metrics"
)

// OutputPrefix is stripped from output labels.
const OutputPrefix = "cpg/"

var (
	metricColumns = []string{"anno", "metric", "output", "value"}
	curveColumns  = []string{"anno", "curve", "output", "x", "y", "thr"}
)

// missingTokens mark an absent numeric cell. Rows holding one are dropped, not rejected.
var missingTokens = map[string]bool{"": true, "NA": true, "NaN": true, "nan": true, "null": true, "NULL": true}

// LoadStats describes what a load kept and dropped.
type LoadStats struct {
	Rows    int
	Dropped int
}

// LoadMetrics parses a metrics table for model.
func LoadMetrics(model string, r io.Reader) ([]metrics.MetricRow, error) {
	rows, _, err := readMetrics(model, "", r)
	return rows, err
}

// LoadCurves parses a curves table for model.
func LoadCurves(model string, r io.Reader) ([]metrics.CurveRow, error) {
	rows, _, err := readCurves(model, "", r)
	return rows, err
}

// LoadMetricsFile opens path (plain or gzip), parses it and closes it before returning.
func LoadMetricsFile(model, path string) ([]metrics.MetricRow, LoadStats, error) {
	var (
		rows  []metrics.MetricRow
		stats LoadStats
	)
	err := withFile(model, path, func(r io.Reader) error {
		var err error
		rows, stats, err = readMetrics(model, path, r)
		return err
	})
	if err != nil {
		return nil, LoadStats{}, err
	}
	logLoad("metrics", model, path, stats)
	return rows, stats, nil
}

// LoadCurvesFile opens path (plain or gzip), parses it and closes it before returning.
func LoadCurvesFile(model, path string) ([]metrics.CurveRow, LoadStats, error) {
	var (
		rows  []metrics.CurveRow
		stats LoadStats
	)
	err := withFile(model, path, func(r io.Reader) error {
		var err error
		rows, stats, err = readCurves(model, path, r)
		return err
	})
	if err != nil {
		return nil, LoadStats{}, err
	}
	logLoad("curves", model, path, stats)
	return rows, stats, nil
}

func logLoad(kind, model, path string, stats LoadStats) {
	logging.LogEvent("[LOAD] %s model=%s path=%s rows=%d", kind, model, path, stats.Rows)
	if stats.Dropped > 0 {
		logging.Warnf("[LOAD] %s model=%s dropped %d rows with missing values", kind, model, stats.Dropped)
	}
}

// withFile opens path, transparently decompressing gzip content.
func withFile(model, path string, fn func(io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return &IOError{Model: model, Path: path, Err: err}
	}
	defer file.Close()

	br := bufio.NewReader(file)
	var r io.Reader = br
	if isGzip(br) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return &IOError{Model: model, Path: path, Err: err}
		}
		defer zr.Close()
		r = zr
	}
	return fn(r)
}

func isGzip(br *bufio.Reader) bool {
	magic, err := br.Peek(2)
	return err == nil && magic[0] == 0x1f && magic[1] == 0x8b
}

// NormalizeOutput strips any leading "cpg/" prefixes from an output label.
func NormalizeOutput(output string) string {
	output = strings.TrimSpace(output)
	for strings.HasPrefix(output, OutputPrefix) {
		output = strings.TrimPrefix(output, OutputPrefix)
	}
	return output
}

// table is a header-indexed view over a tab-separated stream.
type table struct {
	model, path string
	reader      *csv.Reader
	index       map[string]int
	line        int
	caser       cases.Caser
}

func openTable(model, path string, r io.Reader, required []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	t := &table{model: model, path: path, reader: reader, caser: cases.Upper(language.Und)}
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, t.malformed("", "missing header row", nil)
		}
		return nil, t.wrap(err)
	}
	t.line = 1

	t.index = make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, t.malformed(col, "required column missing", nil)
		}
	}
	return t, nil
}

// next returns the following record, or io.EOF.
func (t *table) next() ([]string, error) {
	record, err := t.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, t.wrap(err)
	}
	t.line, _ = t.reader.FieldPos(0)
	return record, nil
}

func (t *table) field(record []string, col string) string {
	return strings.TrimSpace(record[t.index[col]])
}

// number parses a numeric cell. ok is false when the cell holds a missing-value
// token or parses to NaN or an infinity, in any spelling ParseFloat accepts.
func (t *table) number(record []string, col string) (value float64, ok bool, err error) {
	raw := t.field(record, col)
	if missingTokens[raw] {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, t.malformed(col, "unparseable number "+strconv.Quote(raw), nil)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, nil
	}
	return v, true, nil
}

func (t *table) upper(s string) string {
	return t.caser.String(s)
}

// wrap classifies a reader failure: CSV layout problems are malformed input, everything else is I/O.
func (t *table) wrap(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &MalformedInputError{Model: t.model, Path: t.path, Line: parseErr.Line, Reason: "invalid row", Err: parseErr.Err}
	}
	return &IOError{Model: t.model, Path: t.path, Err: err}
}

func (t *table) malformed(col, reason string, err error) error {
	return &MalformedInputError{Model: t.model, Path: t.path, Line: t.line, Column: col, Reason: reason, Err: err}
}

func readMetrics(model, path string, r io.Reader) ([]metrics.MetricRow, LoadStats, error) {
	t, err := openTable(model, path, r, metricColumns)
	if err != nil {
		return nil, LoadStats{}, err
	}

	var (
		rows  []metrics.MetricRow
		stats LoadStats
	)
	for {
		record, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadStats{}, err
		}
		value, ok, err := t.number(record, "value")
		if err != nil {
			return nil, LoadStats{}, err
		}
		if !ok {
			stats.Dropped++
			continue
		}
		rows = append(rows, metrics.MetricRow{
			Model:      model,
			Annotation: t.field(record, "anno"),
			Metric:     t.upper(t.field(record, "metric")),
			Output:     NormalizeOutput(t.field(record, "output")),
			Value:      value,
		})
	}
	stats.Rows = len(rows)
	return rows, stats, nil
}

func readCurves(model, path string, r io.Reader) ([]metrics.CurveRow, LoadStats, error) {
	t, err := openTable(model, path, r, curveColumns)
	if err != nil {
		return nil, LoadStats{}, err
	}

	var (
		rows  []metrics.CurveRow
		stats LoadStats
	)
	for {
		record, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadStats{}, err
		}

		var coords [3]float64
		complete := true
		for i, col := range []string{"x", "y", "thr"} {
			v, ok, err := t.number(record, col)
			if err != nil {
				return nil, LoadStats{}, err
			}
			if !ok {
				complete = false
				break
			}
			coords[i] = v
		}
		if !complete {
			stats.Dropped++
			continue
		}
		rows = append(rows, metrics.CurveRow{
			Model:      model,
			Annotation: t.field(record, "anno"),
			Curve:      t.upper(t.field(record, "curve")),
			Output:     NormalizeOutput(t.field(record, "output")),
			X:          coords[0],
			Y:          coords[1],
			Threshold:  coords[2],
		})
	}
	stats.Rows = len(rows)
	return rows, stats, nil
}
