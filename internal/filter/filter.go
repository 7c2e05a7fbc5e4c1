// Package filter turns command-line paths into the list of files to process.
//
// Files named explicitly are always selected. Directories are walked
// recursively and their files kept when they match an include pattern (or no
// include patterns were given) and match no exclude pattern.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoFiles is returned when nothing was selected.
var ErrNoFiles = errors.New("no files selected")

// Selection holds the include and exclude patterns applied inside directories.
type Selection struct {
	Include []string
	Exclude []string
}

// Result is the outcome of Resolve.
type Result struct {
	// Files are the selected paths, in argument and walk order, without duplicates.
	Files []string
	// Scanned counts every file considered, selected or not.
	Scanned int
}

// Excluded returns how many scanned files were not selected.
func (r Result) Excluded() int {
	return r.Scanned - len(r.Files)
}

// Resolve expands args into files. A missing argument yields an error wrapping fs.ErrNotExist.
func Resolve(args []string, sel Selection) (Result, error) {
	includes, err := CompileGlobs(sel.Include)
	if err != nil {
		return Result{}, fmt.Errorf("include patterns: %w", err)
	}

	excludes, err := CompileGlobs(sel.Exclude)
	if err != nil {
		return Result{}, fmt.Errorf("exclude patterns: %w", err)
	}

	keep := func(path string) bool {
		path = filepath.ToSlash(path)

		return (len(includes) == 0 || includes.Any(path)) && !excludes.Any(path)
	}

	var res Result

	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		res.Files = append(res.Files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return Result{}, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			res.Scanned++
			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.Type().IsRegular() {
				return nil
			}

			res.Scanned++

			if keep(path) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return Result{}, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(res.Files) == 0 {
		return res, fmt.Errorf("%w from %v", ErrNoFiles, args)
	}

	return res, nil
}
