// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const ownerReadWrite = 0o600

// AtomicFile is an output written to a temporary file next to its destination
// and renamed into place on Commit.
type AtomicFile struct {
	// Source describes the input the output is derived from.
	Source os.FileInfo

	tmp  *os.File
	dest string
	done bool
}

// CreateAtomic stats source and creates a temporary file in the directory of dest.
// Callers must defer Abort.
func CreateAtomic(source, dest string) (*AtomicFile, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", source, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &AtomicFile{Source: info, tmp: tmp, dest: dest}, nil
}

// Write implements io.Writer on the temporary file.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.tmp.Write(p) //nolint:wrapcheck
}

// Commit closes the temporary file, moves it to the destination and returns
// the size of the result. With preserveTimestamps the source modification
// time is carried over.
func (a *AtomicFile) Commit(preserveTimestamps bool) (int64, error) {
	if err := a.tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Chmod(a.tmp.Name(), ownerReadWrite); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := os.Rename(a.tmp.Name(), a.dest); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	a.done = true

	if preserveTimestamps {
		modTime := a.Source.ModTime()
		if err := os.Chtimes(a.dest, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(a.dest)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", a.dest, err)
	}

	return info.Size(), nil
}

// Abort removes the temporary file unless Commit already moved it.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}

	a.tmp.Close()           //nolint:errcheck,gosec // best-effort cleanup
	os.Remove(a.tmp.Name()) //nolint:errcheck,gosec // best-effort cleanup
}
