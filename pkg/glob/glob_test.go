package glob

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"", "", true},
		{"abc", "abc", true},
		{"abc", "abcd", false},
		{"a*", "abc", true},
		{"a*c", "abc", true},
		{"a*c", "ac", true},
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"*.txt", "note.txt", true},
		{"*.txt", "note.txtx", false},
		{"a.b", "axb", false},
		{"[ab]", "[ab]", true},
		{"[ab]", "a", false},
	}
	for _, test := range tests {
		if got := Match(test.pattern, test.s); got != test.want {
			t.Errorf("Match(%q, %q) = %v, want %v", test.pattern, test.s, got, test.want)
		}
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		s       string
		pattern string
		longest bool
		want    string
	}{
		{"aabbcc", "a*", false, "abbcc"},
		{"aabbcc", "a*", true, ""},
		{"aabbcc", "a*b", false, "bcc"},
		{"aabbcc", "a*b", true, "cc"},
		{"aabbcc", "x*", false, "aabbcc"},
		{"src/file.go", "*/", false, "file.go"},
	}
	for _, test := range tests {
		if got := StripPrefix(test.s, test.pattern, test.longest); got != test.want {
			t.Errorf("StripPrefix(%q, %q, %v) = %q, want %q",
				test.s, test.pattern, test.longest, got, test.want)
		}
	}
}

func TestStripSuffix(t *testing.T) {
	tests := []struct {
		s       string
		pattern string
		longest bool
		want    string
	}{
		{"file.tar.gz", ".*", false, "file.tar"},
		{"file.tar.gz", ".*", true, "file"},
		{"aabbcc", "c*", false, "aabbc"},
		{"aabbcc", "*c", true, ""},
		{"aabbcc", "x*", false, "aabbcc"},
	}
	for _, test := range tests {
		if got := StripSuffix(test.s, test.pattern, test.longest); got != test.want {
			t.Errorf("StripSuffix(%q, %q, %v) = %q, want %q",
				test.s, test.pattern, test.longest, got, test.want)
		}
	}
}
