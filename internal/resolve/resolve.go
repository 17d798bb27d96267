// Package resolve maps each configured model to the one input file matching a pattern.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mwiater/cpgreport/internal/appconfig"
)

var (
	// ErrNoMatch means a model directory holds no file matching the pattern.
	ErrNoMatch = errors.New("no file matches pattern")
	// ErrAmbiguous means more than one file matched.
	ErrAmbiguous = errors.New("pattern matches more than one file")
)

// Source is a resolved input file for one model.
type Source struct {
	Model string
	Path  string
}

// Resolve finds exactly one file under each model directory matching pattern.
// Results follow the order of models.
func Resolve(models []appconfig.ModelSource, pattern string) ([]Source, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	sources := make([]Source, 0, len(models))
	for _, m := range models {
		src, err := One(m, pattern)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// One finds the single file under model's directory matching pattern.
func One(model appconfig.ModelSource, pattern string) (Source, error) {
	if !doublestar.ValidatePattern(pattern) {
		return Source{}, fmt.Errorf("invalid pattern %q", pattern)
	}
	path, err := resolveOne(model.Dir, pattern)
	if err != nil {
		return Source{}, fmt.Errorf("model %q (%s): %w", model.Name, model.Dir, err)
	}
	return Source{Model: model.Name, Path: path}, nil
}

func resolveOne(dir, pattern string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("unable to stat directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory")
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("unable to glob %q: %w", pattern, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w %q", ErrNoMatch, pattern)
	case 1:
		return filepath.Join(dir, filepath.FromSlash(matches[0])), nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("%w %q: %v", ErrAmbiguous, pattern, matches)
	}
}
