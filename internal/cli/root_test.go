package cpgreport

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/mwiater/cpgreport/internal/appconfig"
	"github.com/mwiater/cpgreport/internal/logging"
	"github.com/mwiater/cpgreport/internal/report"
	"github.com/mwiater/cpgreport/internal/resolve"
)

const (
	metricsA = "anno\tmetric\toutput\tvalue\n" +
		"global\tAUC\tcpg/liver\t0.8\n" +
		"global\tAUC\tcpg/blood\t0.9\n" +
		"global\tacc\tcpg/liver\t0.7\n" +
		"exons\tAUC\tcpg/liver\t0.75\n"
	metricsB = "anno\tmetric\toutput\tvalue\n" +
		"global\tAUC\tcpg/liver\t0.95\n" +
		"exons\tAUC\tcpg/liver\tNA\n" +
		"exons\tAUC\tcpg/blood\t0.5\n"
	curvesA = "anno\tcurve\toutput\tx\ty\tthr\n" +
		"global\troc\tcpg/liver\t0\t0\t1\n" +
		"global\troc\tcpg/liver\t0.5\t0.7\t0.5\n" +
		"global\troc\tcpg/liver\t1\t1\t0\n"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeProject lays out two model directories and a config pointing at them.
func writeProject(t *testing.T) (configPath, root string) {
	t.Helper()
	root = t.TempDir()
	writeFixture(t, filepath.Join(root, "a", "eval", "metrics.tsv"), metricsA)
	writeFixture(t, filepath.Join(root, "a", "eval", "curves.tsv"), curvesA)
	writeFixture(t, filepath.Join(root, "b", "metrics.tsv"), metricsB)

	configPath = filepath.Join(root, "config.json")
	writeFixture(t, configPath, `{
  "models": [
    {"name": "A", "dir": "`+filepath.ToSlash(filepath.Join(root, "a"))+`"},
    {"name": "B", "dir": "`+filepath.ToSlash(filepath.Join(root, "b"))+`"}
  ],
  "curveBins": 4,
  "title": "Fixture report"
}`)
	return configPath, root
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { _ = logging.Close() })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPersistentPreRunELoadsConfig(t *testing.T) {
	configPath, _ := writeProject(t)

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil || cfg.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s, got %+v", configPath, cfg)
	}
	if got := cfg.ModelNames(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("unexpected models: %v", got)
	}
	if cfg.CurveBins != 4 || cfg.ReportTitle() != "Fixture report" {
		t.Fatalf("expected file values to flow into config: %+v", cfg)
	}
}

func TestEnsureConfigLoadedMissingFile(t *testing.T) {
	prev := envFile
	envFile = filepath.Join(t.TempDir(), "missing.env")
	viper.SetConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	t.Cleanup(func() {
		envFile = prev
		viper.SetConfigFile(cfgFile)
	})

	if err := ensureConfigLoaded(); err != nil {
		t.Fatalf("missing config and env files should be tolerated: %v", err)
	}
}

func TestEnsureConfigLoadedDotenv(t *testing.T) {
	dir := t.TempDir()
	prev := envFile
	envFile = filepath.Join(dir, "test.env")
	writeFixture(t, envFile, "CPGREPORT_DOTENV_PROBE=loaded\n")
	viper.SetConfigFile(filepath.Join(dir, "missing.json"))
	t.Cleanup(func() {
		envFile = prev
		viper.SetConfigFile(cfgFile)
		_ = os.Unsetenv("CPGREPORT_DOTENV_PROBE")
	})

	if err := ensureConfigLoaded(); err != nil {
		t.Fatalf("ensureConfigLoaded error: %v", err)
	}
	if got := os.Getenv("CPGREPORT_DOTENV_PROBE"); got != "loaded" {
		t.Fatalf("expected dotenv value in environment, got %q", got)
	}
}

func TestReportCommandWritesArtifacts(t *testing.T) {
	configPath, root := writeProject(t)
	outDir := filepath.Join(root, "out")

	out, err := runRoot(t, "report", "--config", configPath, "--output", outDir)
	if err != nil {
		t.Fatalf("report command error: %v\n%s", err, out)
	}

	for _, name := range []string{report.MarkdownFile, report.HTMLFile, "summary_model.tsv", "summary_model_anno.tsv", report.YAMLFile, report.JSONFile, report.ChartsFile} {
		path := filepath.Join(outDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
		if !strings.Contains(out, path) {
			t.Fatalf("expected output to mention %s, got:\n%s", path, out)
		}
	}

	md, err := os.ReadFile(filepath.Join(outDir, report.MarkdownFile))
	if err != nil {
		t.Fatalf("read markdown: %v", err)
	}
	if !strings.Contains(string(md), "# Fixture report") || !strings.Contains(string(md), "1. B\n2. A\n") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
}

func TestRankCommand(t *testing.T) {
	configPath, _ := writeProject(t)

	out, err := runRoot(t, "rank", "--config", configPath, "--by", "model")
	if err != nil {
		t.Fatalf("rank command error: %v", err)
	}
	b := strings.Index(out, "1. B")
	a := strings.Index(out, "2. A")
	if b < 0 || a < 0 || b > a {
		t.Fatalf("expected B ranked before A, got:\n%s", out)
	}

	out, err = runRoot(t, "rank", "--config", configPath, "--by", "anno")
	if err != nil {
		t.Fatalf("rank --by anno error: %v", err)
	}
	if !strings.Contains(out, "1. global") || !strings.Contains(out, "2. exons") {
		t.Fatalf("unexpected annotation ranking:\n%s", out)
	}

	if _, err := runRoot(t, "rank", "--config", configPath, "--by", "output"); err == nil {
		t.Fatalf("expected error for unknown grouping key")
	}
}

func TestSummaryCommandTSV(t *testing.T) {
	configPath, _ := writeProject(t)

	out, err := runRoot(t, "summary", "--config", configPath, "--by", "anno", "--tsv")
	if err != nil {
		t.Fatalf("summary command error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got:\n%s", out)
	}
	if lines[0] != "anno\tAUC\tACC" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "global\t") || !strings.HasPrefix(lines[2], "exons\t0.625\t") {
		t.Fatalf("unexpected rows:\n%s", out)
	}
}

func TestSummaryCommandTable(t *testing.T) {
	configPath, _ := writeProject(t)

	out, err := runRoot(t, "summary", "--config", configPath, "--by", "model", "--tsv=false")
	if err != nil {
		t.Fatalf("summary command error: %v", err)
	}
	if !strings.Contains(out, report.Missing) {
		t.Fatalf("expected model B's missing ACC rendered as %q:\n%s", report.Missing, out)
	}
}

func TestLoadDatasetMissingMetrics(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := &appconfig.Config{Models: []appconfig.ModelSource{{Name: "A", Dir: filepath.Join(root, "empty")}}}

	_, _, err := loadDataset(cfg)
	if !errors.Is(err, resolve.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestLoadDatasetInvalidConfig(t *testing.T) {
	_, _, err := loadDataset(&appconfig.Config{})
	if !errors.Is(err, appconfig.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadDatasetSources(t *testing.T) {
	configPath, _ := writeProject(t)
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ds, sources, err := loadDataset(&cfg)
	if err != nil {
		t.Fatalf("loadDataset error: %v", err)
	}
	if len(ds.Metrics) != 6 || len(ds.Curves) != 3 {
		t.Fatalf("unexpected row counts: %d metrics, %d curves", len(ds.Metrics), len(ds.Curves))
	}
	if len(sources) != 2 || sources[1].Curves != "" || sources[1].Dropped != 1 {
		t.Fatalf("unexpected sources: %+v", sources)
	}
}

func TestShowCommands(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCommandTree(&buf, rootCmd); err != nil {
		t.Fatalf("writeCommandTree error: %v", err)
	}
	for _, want := range []string{"cpgreport report", "cpgreport show config", "cpgreport summary"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "completion") {
		t.Fatalf("completion command should be hidden:\n%s", buf.String())
	}
}

func TestShowConfigCommand(t *testing.T) {
	configPath, _ := writeProject(t)

	out, err := runRoot(t, "show", "config", "--config", configPath)
	if err != nil {
		t.Fatalf("show config error: %v", err)
	}
	if !strings.Contains(out, "Config file: "+configPath) || !strings.Contains(out, "- A => ") {
		t.Fatalf("unexpected show config output:\n%s", out)
	}
}
