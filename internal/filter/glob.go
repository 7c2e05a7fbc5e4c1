package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Glob is a compiled find -path style pattern.
//
// Unlike filepath.Match, every wildcard crosses directory separators:
// '*' matches any run of characters including '/', '?' matches one character,
// "[...]" and "[!...]" match one character from a set and '\' escapes the next
// character.
type Glob struct {
	pattern string
	re      *regexp.Regexp
}

// CompileGlob compiles pattern. A leading "./" is ignored.
func CompileGlob(pattern string) (*Glob, error) {
	expr, err := globToRegexp(strings.TrimPrefix(pattern, "./"))
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	return &Glob{pattern: pattern, re: re}, nil
}

// Match reports whether path, with forward slashes, matches the pattern.
func (g *Glob) Match(path string) bool {
	return g.re.MatchString(path)
}

// String returns the source pattern.
func (g *Glob) String() string {
	return g.pattern
}

// Globs is a set of compiled patterns.
type Globs []*Glob

// CompileGlobs compiles every pattern.
func CompileGlobs(patterns []string) (Globs, error) {
	globs := make(Globs, 0, len(patterns))

	for _, p := range patterns {
		g, err := CompileGlob(p)
		if err != nil {
			return nil, err
		}

		globs = append(globs, g)
	}

	return globs, nil
}

// Any reports whether path matches at least one pattern.
func (gs Globs) Any(path string) bool {
	for _, g := range gs {
		if g.Match(path) {
			return true
		}
	}

	return false
}

func globToRegexp(pattern string) (string, error) {
	var buf strings.Builder

	buf.WriteByte('^')

	for pos := 0; pos < len(pattern); {
		switch c := pattern[pos]; c {
		case '*':
			buf.WriteString(".*")
			pos++
		case '?':
			buf.WriteByte('.')
			pos++
		case '[':
			end, err := classEnd(pattern, pos)
			if err != nil {
				return "", err
			}

			class := pattern[pos+1 : end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}

			buf.WriteByte('[')
			buf.WriteString(class)
			buf.WriteByte(']')

			pos = end + 1
		case '\\':
			if pos+1 == len(pattern) {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			buf.WriteString(regexp.QuoteMeta(pattern[pos+1 : pos+2]))
			pos += 2
		default:
			buf.WriteString(regexp.QuoteMeta(pattern[pos : pos+1]))
			pos++
		}
	}

	buf.WriteByte('$')

	return buf.String(), nil
}

// classEnd returns the index of the ']' closing the class opened at pos.
// A ']' directly after "[" or "[!" is a literal member.
func classEnd(pattern string, pos int) (int, error) {
	idx := pos + 1

	if idx < len(pattern) && pattern[idx] == '!' {
		idx++
	}

	if idx < len(pattern) && pattern[idx] == ']' {
		idx++
	}

	if end := strings.IndexByte(pattern[idx:], ']'); end >= 0 {
		return idx + end, nil
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}
