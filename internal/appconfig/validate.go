package appconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema describes the accepted configuration document.
var configSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]any{
		"models": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "minLength": 1},
					"dir":  map[string]any{"type": "string", "minLength": 1},
				},
				"required": []string{"name", "dir"},
			},
		},
		"metricsPattern":   map[string]any{"type": "string"},
		"curvesPattern":    map[string]any{"type": "string"},
		"anchorAnnotation": map[string]any{"type": "string"},
		"anchorMetric":     map[string]any{"type": "string"},
		"metrics":          stringList,
		"curves":           stringList,
		"annotations":      stringList,
		"curveBins":        map[string]any{"type": "integer", "minimum": 0},
		"outputDir":        map[string]any{"type": "string"},
		"title":            map[string]any{"type": "string"},
		"logFile":          map[string]any{"type": "string"},
		"logLevel":         map[string]any{"enum": []string{"", "debug", "info", "warn", "error"}},
		"debug":            map[string]any{"type": "boolean"},
	},
	"required": []string{"models"},
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string", "minLength": 1},
}

// Validate checks a configuration against the schema and the rules the schema cannot express.
func Validate(cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := validateDocument(data); err != nil {
		return err
	}

	seen := make(map[string]bool, len(cfg.Models))
	for _, m := range cfg.Models {
		if seen[m.Name] {
			return fmt.Errorf("%w: duplicate model name %q", ErrInvalidConfig, m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// validateDocument runs the JSON schema over a raw configuration document.
func validateDocument(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(configSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, ", "))
}
