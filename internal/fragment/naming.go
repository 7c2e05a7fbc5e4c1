package fragment

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Ext is the extension every fragment entry carries.
const Ext = ".txt"

// Name returns the entry name of fragment index for a file whose name without extension is base.
func Name(base string, index int) string {
	return base + strconv.Itoa(index) + Ext
}

// IsFragment reports whether name looks like a fragment entry.
func IsFragment(name string) bool {
	return strings.HasSuffix(name, Ext) && len(name) > len(Ext)
}

// Base returns the name of path without directory and extension.
// Dotfiles such as ".hidden" keep their full name.
func Base(path string) string {
	name := filepath.Base(path)

	if stem := strings.TrimSuffix(name, filepath.Ext(name)); stem != "" {
		return stem
	}

	return name
}

// Order recovers fragment order from entry names. The returned slice maps
// fragment index to position in names: names[order[i]] is fragment i.
//
// Names are first matched as <base><index>.txt. If any of them does not match,
// for instance because the archive was renamed, the longest common prefix of
// the stems is used as base instead.
// The indices must be exactly 0..len(names)-1.
func Order(names []string, base string) ([]int, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no fragments", ErrMissingFragment)
	}

	if err := ValidateCount(len(names)); err != nil {
		return nil, err
	}

	stems := make([]string, len(names))

	for i, name := range names {
		if !IsFragment(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognizedName, name)
		}

		stems[i] = strings.TrimSuffix(name, Ext)
	}

	indices, err := indicesFor(stems, base)
	if err != nil {
		indices, err = indicesFor(stems, commonPrefix(stems))
		if err != nil {
			return nil, err
		}
	}

	order := make([]int, len(names))
	seen := make([]bool, len(names))

	for pos, index := range indices {
		if index >= len(names) {
			return nil, fmt.Errorf("%w: index %d with only %d fragments", ErrMissingFragment, index, len(names))
		}

		if seen[index] {
			return nil, fmt.Errorf("%w: index %d", ErrDuplicateFragment, index)
		}

		seen[index] = true
		order[index] = pos
	}

	return order, nil
}

// indicesFor parses the decimal index that follows base in every stem.
func indicesFor(stems []string, base string) ([]int, error) {
	indices := make([]int, len(stems))

	for i, stem := range stems {
		digits, ok := strings.CutPrefix(stem, base)
		if !ok || digits == "" {
			return nil, fmt.Errorf("%w: %q does not start with %q", ErrUnrecognizedName, stem+Ext, base)
		}

		index, err := strconv.Atoi(digits)
		if err != nil || index < 0 || strings.ContainsAny(digits, "+-") {
			return nil, fmt.Errorf("%w: %q has no numeric index", ErrUnrecognizedName, stem+Ext)
		}

		indices[i] = index
	}

	return indices, nil
}

// commonPrefix returns the longest common prefix of stems, shortened so that
// every stem keeps at least one trailing digit.
func commonPrefix(stems []string) string {
	prefix := stems[0]

	for _, stem := range stems[1:] {
		for !strings.HasPrefix(stem, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for _, stem := range stems {
		if len(stem) == len(prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	return prefix
}
