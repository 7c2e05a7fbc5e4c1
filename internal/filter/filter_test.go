package filter_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/scrambler/internal/filter"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.bin", "b.zip", "sub/c.zip", "sub/d.txt", "skip/e.zip")

	t.Run("walk everything", func(t *testing.T) {
		res, err := filter.Resolve([]string{root}, filter.Selection{})
		require.NoError(t, err)

		assert.Len(t, res.Files, 5)
		assert.Equal(t, 5, res.Scanned)
		assert.Zero(t, res.Excluded())
	})

	t.Run("include and exclude", func(t *testing.T) {
		res, err := filter.Resolve([]string{root}, filter.Selection{
			Include: []string{"*.zip"},
			Exclude: []string{"*/skip/*"},
		})
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			filepath.Join(root, "b.zip"),
			filepath.Join(root, "sub", "c.zip"),
		}, res.Files)
		assert.Equal(t, 3, res.Excluded())
	})

	t.Run("explicit files bypass patterns", func(t *testing.T) {
		file := filepath.Join(root, "a.bin")

		res, err := filter.Resolve([]string{file, file}, filter.Selection{Include: []string{"*.zip"}})
		require.NoError(t, err)

		assert.Equal(t, []string{file}, res.Files)
		assert.Equal(t, 2, res.Scanned)
	})
}

func TestResolve_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := filter.Resolve([]string{filepath.Join(root, "missing")}, filter.Selection{})
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = filter.Resolve([]string{root}, filter.Selection{})
	require.ErrorIs(t, err, filter.ErrNoFiles)

	touch(t, root, "a.bin")

	_, err = filter.Resolve([]string{root}, filter.Selection{Include: []string{"[bad"}})
	require.Error(t, err)
}

func TestLoadPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.jsonc")

	content := `[
  // archives only
  "*.zip",
  "*/keep/*", /* trailing comma below */
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	patterns, err := filter.LoadPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.zip", "*/keep/*"}, patterns)

	_, err = filter.LoadPatterns(filepath.Join(t.TempDir(), "missing.jsonc"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.jsonc")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not": "an array"}`), 0o600))

	_, err = filter.LoadPatterns(bad)
	require.Error(t, err)
}
