// Package glob implements the shell's pattern matching: `*` matches any run
// of characters, `?` matches a single character, and every other character
// matches itself. Patterns are compiled to regular expressions.
package glob

import (
	"regexp"
	"strings"
)

// Compile translates a glob pattern to an anchored regular expression.
func Compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^" + Translate(pattern) + "$")
}

// Translate returns the unanchored regular expression source for a glob
// pattern: `*` becomes `.*`, `?` becomes `.`, and regexp metacharacters are
// escaped.
func Translate(pattern string) string {
	var sb strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteByte('.')
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return sb.String()
}

// Match reports whether the whole of s matches the glob pattern. A pattern
// that fails to compile matches nothing.
func Match(pattern, s string) bool {
	re, err := Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
