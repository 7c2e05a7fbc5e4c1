package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Staging is a scoped scratch directory. It must be removed with Cleanup on every path.
type Staging struct {
	dir string
}

// NewStaging creates a fresh directory under parent; an empty parent means the
// system temp directory.
func NewStaging(parent, pattern string) (*Staging, error) {
	dir, err := os.MkdirTemp(parent, pattern)
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	return &Staging{dir: dir}, nil
}

// Dir returns the staging directory path.
func (s *Staging) Dir() string {
	return s.dir
}

// Put writes data to name inside the staging directory.
func (s *Staging) Put(name string, data []byte) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("staging %q: name must not contain a directory", name)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, ownerReadWrite); err != nil {
		return fmt.Errorf("staging %q: %w", name, err)
	}

	return nil
}

// Cleanup removes the staging directory and everything in it.
func (s *Staging) Cleanup() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing staging directory: %w", err)
	}

	return nil
}
