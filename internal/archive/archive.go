// Package archive bundles named blobs into a zip container and lists them back out.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnsafeEntry is returned for entries whose names could escape a flat directory.
var ErrUnsafeEntry = errors.New("unsafe archive entry")

// Entry is one named blob of an archive.
type Entry struct {
	Name string
	Data []byte
}

// Bundle writes entries to w as a zip archive, in the given order.
func Bundle(w io.Writer, entries []Entry) (err error) {
	zw := zip.NewWriter(w)

	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing archive: %w", cerr)
		}
	}()

	for _, entry := range entries {
		if err := checkName(entry.Name); err != nil {
			return err
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("creating entry %q: %w", entry.Name, err)
		}

		if _, err := fw.Write(entry.Data); err != nil {
			return fmt.Errorf("writing entry %q: %w", entry.Name, err)
		}
	}

	return nil
}

// BundleDir writes every regular file directly inside dir to w.
// Entries are sorted in natural order, so "a2.txt" comes before "a10.txt".
func BundleDir(w io.Writer, dir string) error {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading staging directory: %w", err)
	}

	var entries []Entry

	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			return fmt.Errorf("reading %q: %w", de.Name(), err)
		}

		entries = append(entries, Entry{Name: de.Name(), Data: data})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return naturalCompare(a.Name, b.Name)
	})

	return Bundle(w, entries)
}

// List returns every file entry of the zip archive at path.
func List(path string) ([]Entry, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	entries := make([]Entry, 0, len(reader.File))

	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}

		if err := checkName(f.Name); err != nil {
			return nil, err
		}

		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{Name: f.Name, Data: data})
	}

	return entries, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading entry %q: %w", f.Name, err)
	}

	return data, nil
}

// checkName only admits flat, relative entry names.
// Dots inside a name are fine; "." and ".." as a whole are not.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}

	return nil
}
