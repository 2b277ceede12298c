package glob

import "unicode/utf8"

// StripPrefix removes the prefix of s matching the glob pattern. With longest
// false the shortest match is removed, otherwise the longest. If no prefix
// matches, s is returned unchanged.
func StripPrefix(s, pattern string, longest bool) string {
	re, err := Compile(pattern)
	if err != nil {
		return s
	}
	if longest {
		for i := len(s); i >= 0; i-- {
			if !utf8.RuneStart(safeByte(s, i)) {
				continue
			}
			if re.MatchString(s[:i]) {
				return s[i:]
			}
		}
	} else {
		for i := 0; i <= len(s); i++ {
			if !utf8.RuneStart(safeByte(s, i)) {
				continue
			}
			if re.MatchString(s[:i]) {
				return s[i:]
			}
		}
	}
	return s
}

// StripSuffix removes the suffix of s matching the glob pattern. With longest
// false the shortest match is removed, otherwise the longest. If no suffix
// matches, s is returned unchanged.
func StripSuffix(s, pattern string, longest bool) string {
	re, err := Compile(pattern)
	if err != nil {
		return s
	}
	if longest {
		for i := 0; i <= len(s); i++ {
			if !utf8.RuneStart(safeByte(s, i)) {
				continue
			}
			if re.MatchString(s[i:]) {
				return s[:i]
			}
		}
	} else {
		for i := len(s); i >= 0; i-- {
			if !utf8.RuneStart(safeByte(s, i)) {
				continue
			}
			if re.MatchString(s[i:]) {
				return s[:i]
			}
		}
	}
	return s
}

// safeByte returns the byte at i, or a boundary-safe sentinel at the ends so
// that both 0 and len(s) count as rune boundaries.
func safeByte(s string, i int) byte {
	if i <= 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
