package diag

import (
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	src := "echo |\nnext"
	err := &Error{
		Type:    "parse error",
		Message: "expected command",
		Context: *NewContext("test", src, Ranging{From: 5, To: 6}),
	}
	msg := err.Error()
	for _, want := range []string{"parse error", "test", "line 1", "expected command"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if got := err.Range(); got != (Ranging{From: 5, To: 6}) {
		t.Errorf("Range() = %v, want {5 6}", got)
	}
}

func TestPositionAt(t *testing.T) {
	src := "ab\ncde"
	tests := []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself
		{3, 2, 1},
		{6, 2, 4},
	}
	for _, test := range tests {
		got := PositionAt(src, test.offset)
		if got.Line != test.line || got.Column != test.col || got.Offset != test.offset {
			t.Errorf("PositionAt(%d) = %+v, want line %d col %d",
				test.offset, got, test.line, test.col)
		}
	}
}

func TestShowIncludesCulprit(t *testing.T) {
	src := "echo 'unterminated"
	err := &Error{
		Type:    "parse error",
		Message: "string not terminated",
		Context: *NewContext("test", src, Ranging{From: 5, To: len(src)}),
	}
	shown := err.Show("")
	if !strings.Contains(shown, "'unterminated") {
		t.Errorf("Show() = %q, missing culprit text", shown)
	}
}
