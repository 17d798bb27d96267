// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad verifies a valid configuration loads with defaults applied and that
// invalid JSON, schema violations, duplicate models and missing files fail.
func TestLoad(t *testing.T) {
	validConfig := `{
        "models": [
            {"name": "DNA model", "dir": "data/dna"},
            {"name": "CpG model", "dir": "data/cpg"}
        ],
        "metrics": ["auc", "acc"]
    }`
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if len(cfg.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(cfg.Models))
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.ConfigPath)
	}
	if cfg.MetricsGlob() != DefaultMetricsPattern || cfg.CurvesGlob() != DefaultCurvesPattern {
		t.Fatalf("unexpected default patterns: %q %q", cfg.MetricsGlob(), cfg.CurvesGlob())
	}
	if cfg.OutputDirectory() != "reports" {
		t.Fatalf("expected default output dir, got %q", cfg.OutputDirectory())
	}

	opts := cfg.MetricOptions()
	if opts.AnchorAnnotation != "global" || opts.AnchorMetric != "AUC" {
		t.Fatalf("unexpected anchor: %+v", opts)
	}
	if !reflect.DeepEqual(opts.Metrics, []string{"AUC", "ACC"}) {
		t.Fatalf("expected uppercased metrics, got %v", opts.Metrics)
	}
	if !reflect.DeepEqual(opts.Curves, DefaultCurves) {
		t.Fatalf("expected default curves, got %v", opts.Curves)
	}
	if !reflect.DeepEqual(opts.Models, []string{"DNA model", "CpG model"}) {
		t.Fatalf("unexpected model names: %v", opts.Models)
	}

	invalid := map[string]string{
		"invalid json":    `{ "models": [`,
		"no models":       `{ "models": [] }`,
		"missing dir":     `{ "models": [{"name": "m"}] }`,
		"bad bins":        `{ "models": [{"name": "m", "dir": "d"}], "curveBins": -1 }`,
		"bad level":       `{ "models": [{"name": "m", "dir": "d"}], "logLevel": "loud" }`,
		"duplicate model": `{ "models": [{"name": "m", "dir": "a"}, {"name": "m", "dir": "b"}] }`,
	}
	for name, content := range invalid {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("Load() with %s should have failed", name)
		} else if name != "invalid json" && !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.json")); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestLogLevelName(t *testing.T) {
	if got := (Config{}).LogLevelName(); got != "info" {
		t.Fatalf("expected info, got %q", got)
	}
	if got := (Config{LogLevel: "warn"}).LogLevelName(); got != "warn" {
		t.Fatalf("expected warn, got %q", got)
	}
	if got := (Config{LogLevel: "warn", Debug: true}).LogLevelName(); got != "debug" {
		t.Fatalf("expected debug, got %q", got)
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Models: []ModelSource{{Name: "DNA model", Dir: "data/dna"}}, LogFile: "cpg.log"}
	ShowConfig(&buf, "config.json", cfg)

	out := buf.String()
	for _, want := range []string{"Config file: config.json", "DNA model => data/dna", "AUC @ global", "cpg.log"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "", nil)
	if !strings.Contains(buf.String(), "No config file loaded") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestDumpConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpConfig(&buf, &Config{Title: "Weekly"}); err != nil {
		t.Fatalf("DumpConfig error: %v", err)
	}
	if !strings.Contains(buf.String(), "Weekly") {
		t.Fatalf("expected title in dump, got %s", buf.String())
	}
}
