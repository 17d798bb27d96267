// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/cpgreport/internal/metrics"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultMetricsPattern locates a model's metrics table inside its directory.
	DefaultMetricsPattern = "**/metrics.tsv*"
	// DefaultCurvesPattern locates a model's curves table inside its directory.
	DefaultCurvesPattern = "**/curves.tsv*"
	// DefaultAnchorAnnotation is the whole-genome annotation models are ranked at.
	DefaultAnchorAnnotation = "global"
	// DefaultAnchorMetric is the metric models and annotations are ranked by.
	DefaultAnchorMetric = "AUC"
	// defaultOutputDir receives report artifacts when the config omits outputDir.
	defaultOutputDir = "reports"
	defaultTitle     = "Model evaluation report"
)

var (
	// DefaultMetrics are the metrics reported when the config does not list any.
	DefaultMetrics = []string{"AUC", "ACC", "F1", "MCC", "TPR", "TNR"}
	// DefaultCurves are the curves plotted when the config does not list any.
	DefaultCurves = []string{"ROC", "PR"}
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the top-level application configuration.
type Config struct {
	Models           []ModelSource `json:"models"`
	MetricsPattern   string        `json:"metricsPattern,omitempty"`
	CurvesPattern    string        `json:"curvesPattern,omitempty"`
	AnchorAnnotation string        `json:"anchorAnnotation,omitempty"`
	AnchorMetric     string        `json:"anchorMetric,omitempty"`
	Metrics          []string      `json:"metrics,omitempty"`
	Curves           []string      `json:"curves,omitempty"`
	Annotations      []string      `json:"annotations,omitempty"`
	CurveBins        int           `json:"curveBins,omitempty"`
	OutputDir        string        `json:"outputDir,omitempty"`
	Title            string        `json:"title,omitempty"`
	LogFile          string        `json:"logFile,omitempty"`
	LogLevel         string        `json:"logLevel,omitempty"`
	Debug            bool          `json:"debug"`
	ConfigPath       string        `json:"-"`
}

// ModelSource names a model and the directory holding its evaluation files.
type ModelSource struct {
	Name string `json:"name"`
	Dir  string `json:"dir"`
}

// ModelNames returns the configured model names in order.
func (c Config) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for _, m := range c.Models {
		names = append(names, m.Name)
	}
	return names
}

// MetricsGlob returns the metrics file pattern, falling back to the default.
func (c Config) MetricsGlob() string {
	return orDefault(c.MetricsPattern, DefaultMetricsPattern)
}

// CurvesGlob returns the curves file pattern, falling back to the default.
func (c Config) CurvesGlob() string {
	return orDefault(c.CurvesPattern, DefaultCurvesPattern)
}

// OutputDirectory returns where report artifacts are written.
func (c Config) OutputDirectory() string {
	return orDefault(c.OutputDir, defaultOutputDir)
}

// ReportTitle returns the heading used in rendered reports.
func (c Config) ReportTitle() string {
	return orDefault(c.Title, defaultTitle)
}

// LogFilePath returns the path to the application log file. Empty disables the file sink.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// LogLevelName returns the configured log level, with debug forcing "debug".
func (c Config) LogLevelName() string {
	if c.Debug {
		return "debug"
	}
	return orDefault(c.LogLevel, "info")
}

// MetricOptions converts the configuration into aggregation options.
func (c Config) MetricOptions() metrics.Options {
	return metrics.Options{
		AnchorAnnotation: orDefault(c.AnchorAnnotation, DefaultAnchorAnnotation),
		AnchorMetric:     strings.ToUpper(orDefault(c.AnchorMetric, DefaultAnchorMetric)),
		Metrics:          upperAll(orDefaultList(c.Metrics, DefaultMetrics)),
		Curves:           upperAll(orDefaultList(c.Curves, DefaultCurves)),
		Annotations:      c.Annotations,
		CurveBins:        c.CurveBins,
		Models:           c.ModelNames(),
	}
}

// Load reads the application configuration from a JSON file and validates it.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := validateDocument(data); err != nil {
		return Config{}, fmt.Errorf("config file %q: %w", path, err)
	}

	var config Config
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("could not decode config file %q: %w", path, err)
	}
	if err := Validate(config); err != nil {
		return Config{}, fmt.Errorf("config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func orDefaultList(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

func upperAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(strings.TrimSpace(v))
	}
	return out
}
