package appconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/k0kubun/pp/v3"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		fmt.Fprintln(out, "  (configuration is not initialized)")
		return
	}

	opts := cfg.MetricOptions()
	fmt.Fprintf(out, "  Models:            %d\n", len(cfg.Models))
	for _, m := range cfg.Models {
		fmt.Fprintf(out, "    - %s => %s\n", m.Name, m.Dir)
	}
	fmt.Fprintf(out, "  Metrics Pattern:   %s\n", cfg.MetricsGlob())
	fmt.Fprintf(out, "  Curves Pattern:    %s\n", cfg.CurvesGlob())
	fmt.Fprintf(out, "  Anchor:            %s @ %s\n", opts.AnchorMetric, opts.AnchorAnnotation)
	fmt.Fprintf(out, "  Metrics:           %s\n", strings.Join(opts.Metrics, ", "))
	fmt.Fprintf(out, "  Curves:            %s\n", strings.Join(opts.Curves, ", "))
	if len(opts.Annotations) > 0 {
		fmt.Fprintf(out, "  Annotations:       %s\n", strings.Join(opts.Annotations, ", "))
	}
	fmt.Fprintf(out, "  Output Dir:        %s\n", cfg.OutputDirectory())
	fmt.Fprintf(out, "  Log Level:         %s\n", cfg.LogLevelName())
	if path := cfg.LogFilePath(); path != "" {
		fmt.Fprintf(out, "  Log File:          %s\n", path)
	}
}

// DumpConfig pretty-prints the raw configuration struct.
func DumpConfig(out io.Writer, cfg *Config) error {
	printer := pp.New()
	printer.SetOutput(out)
	printer.SetColoringEnabled(false)
	_, err := printer.Println(cfg)
	return err
}
