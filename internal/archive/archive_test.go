package archive_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/scrambler/internal/archive"
)

func writeArchive(t *testing.T, entries []archive.Entry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.zip")

	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, archive.Bundle(f, entries))
	require.NoError(t, f.Close())

	return path
}

func TestBundleAndList(t *testing.T) {
	entries := []archive.Entry{
		{Name: "doc0.txt", Data: []byte("first")},
		{Name: "doc1.txt", Data: []byte("second")},
		{Name: "doc.seal", Data: []byte{0x00, 0xff}},
	}

	listed, err := archive.List(writeArchive(t, entries))
	require.NoError(t, err)
	assert.Equal(t, entries, listed)
}

func TestBundleDir(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"doc10.txt", "doc2.txt", "doc1.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	var buf bytes.Buffer
	require.NoError(t, archive.BundleDir(&buf, dir))

	path := filepath.Join(t.TempDir(), "dir.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	listed, err := archive.List(path)
	require.NoError(t, err)

	names := make([]string, len(listed))
	for i, e := range listed {
		names[i] = e.Name
		assert.Equal(t, e.Name, string(e.Data))
	}

	assert.Equal(t, []string{"doc1.txt", "doc2.txt", "doc10.txt"}, names)
}

func TestBundle_UnsafeName(t *testing.T) {
	for _, name := range []string{"../escape.txt", "dir/file.txt", `dir\file.txt`, "", ".", "..", "/abs.txt"} {
		err := archive.Bundle(&bytes.Buffer{}, []archive.Entry{{Name: name}})
		assert.ErrorIs(t, err, archive.ErrUnsafeEntry, name)
	}
}

func TestBundle_DottedNames(t *testing.T) {
	entries := []archive.Entry{
		{Name: "my..notes0.txt", Data: []byte("first")},
		{Name: "v1..20.txt", Data: []byte("second")},
		{Name: ".hidden0.txt", Data: []byte("third")},
		{Name: "my..notes.seal", Data: []byte{0x01}},
	}

	listed, err := archive.List(writeArchive(t, entries))
	require.NoError(t, err)
	assert.Equal(t, entries, listed)
}

func TestList_UnsafeName(t *testing.T) {
	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../../etc/passwd")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "evil.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	_, err = archive.List(path)
	assert.ErrorIs(t, err, archive.ErrUnsafeEntry)
}

func TestList_Missing(t *testing.T) {
	_, err := archive.List(filepath.Join(t.TempDir(), "missing.zip"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := archive.List(path)
	assert.Error(t, err)
}
