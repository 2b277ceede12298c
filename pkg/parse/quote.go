package parse

import "strings"

// Quote returns a shell word that expands to exactly s. If s is a safe
// bareword it is returned as is; otherwise it is single-quoted, with any
// embedded single quote spliced out as a backslash escape.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if isBareword(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			sb.WriteString(`'\''`)
		} else {
			sb.WriteByte(s[i])
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

func isBareword(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isNameChar(c):
		case strings.IndexByte(".,-+/:%@^=", c) >= 0:
		default:
			return false
		}
	}
	// A word that would be taken for an assignment or reserved word still
	// needs quoting to stay inert.
	return !IsReservedWord(s) && !isAssignmentWord(s)
}
