package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/cpgreport/internal/appconfig"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("anno\n"), 0o644))
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "dna", "eval", "metrics.tsv.gz"))
	touch(t, filepath.Join(root, "cpg", "metrics.tsv"))

	models := []appconfig.ModelSource{
		{Name: "DNA model", Dir: filepath.Join(root, "dna")},
		{Name: "CpG model", Dir: filepath.Join(root, "cpg")},
	}
	sources, err := Resolve(models, "**/metrics.tsv*")
	require.NoError(t, err)
	assert.Equal(t, []Source{
		{Model: "DNA model", Path: filepath.Join(root, "dna", "eval", "metrics.tsv.gz")},
		{Model: "CpG model", Path: filepath.Join(root, "cpg", "metrics.tsv")},
	}, sources)
}

func TestResolveErrors(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "two", "a", "metrics.tsv"))
	touch(t, filepath.Join(root, "two", "b", "metrics.tsv"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	_, err := Resolve([]appconfig.ModelSource{{Name: "m", Dir: filepath.Join(root, "empty")}}, "**/metrics.tsv*")
	assert.True(t, errors.Is(err, ErrNoMatch))
	assert.Contains(t, err.Error(), `model "m"`)

	_, err = Resolve([]appconfig.ModelSource{{Name: "m", Dir: filepath.Join(root, "two")}}, "**/metrics.tsv*")
	assert.True(t, errors.Is(err, ErrAmbiguous))

	_, err = Resolve([]appconfig.ModelSource{{Name: "m", Dir: filepath.Join(root, "nope")}}, "**/metrics.tsv*")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Resolve(nil, "[")
	assert.Error(t, err)
}

func TestOne(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "curves.tsv"))

	src, err := One(appconfig.ModelSource{Name: "m", Dir: root}, "**/curves.tsv*")
	require.NoError(t, err)
	assert.Equal(t, Source{Model: "m", Path: filepath.Join(root, "curves.tsv")}, src)

	_, err = One(appconfig.ModelSource{Name: "m", Dir: root}, "**/metrics.tsv*")
	assert.ErrorIs(t, err, ErrNoMatch)
}
