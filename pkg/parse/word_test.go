package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseWordForTest(t *testing.T, raw string) WordNode {
	t.Helper()
	w, err := ParseWord("test", raw, 0, raw)
	if err != nil {
		t.Fatalf("ParseWord(%q): %v", raw, err)
	}
	return w
}

func TestParseWord(t *testing.T) {
	tests := []struct {
		raw  string
		want WordNode
	}{
		{
			raw:  "plain",
			want: &StringWord{Value: "plain", SplitFields: true},
		},
		{
			// The fast path keeps backslashes verbatim.
			raw:  `a\ b`,
			want: &StringWord{Value: `a\ b`, SplitFields: true},
		},
		{
			raw:  "'single quoted'",
			want: &StringWord{Value: "single quoted", SingleQuoted: true},
		},
		{
			raw:  "''",
			want: &StringWord{Value: "", SingleQuoted: true},
		},
		{
			raw:  `"a b"`,
			want: &StringWord{Value: "a b"},
		},
		{
			// Backslash escapes survive inside double quotes.
			raw:  `"line1\nline2"`,
			want: &StringWord{Value: `line1\nline2`},
		},
		{
			raw:  "$X",
			want: &ParamWord{Name: "X"},
		},
		{
			raw:  "$?",
			want: &ParamWord{Name: "?"},
		},
		{
			raw:  "${X}",
			want: &ParamWord{Name: "X"},
		},
		{
			raw: "${X:-def}",
			want: &ParamWord{
				Name: "X", Op: OpMinus, Colon: true,
				Arg: &StringWord{Value: "def", SplitFields: true},
			},
		},
		{
			raw: "${X=def}",
			want: &ParamWord{
				Name: "X", Op: OpEqual,
				Arg: &StringWord{Value: "def", SplitFields: true},
			},
		},
		{
			raw:  "${#X}",
			want: &ParamWord{Name: "X", Op: OpLength},
		},
		{
			raw: "${X##*/}",
			want: &ParamWord{
				Name: "X", Op: OpDHash,
				Arg: &StringWord{Value: "*/", SplitFields: true},
			},
		},
		{
			raw: "${X%.*}",
			want: &ParamWord{
				Name: "X", Op: OpPercent,
				Arg: &StringWord{Value: ".*", SplitFields: true},
			},
		},
		{
			raw: "a$X",
			want: &ListWord{Children: []WordNode{
				&StringWord{Value: "a", SplitFields: true},
				&ParamWord{Name: "X"},
			}},
		},
		{
			raw: `"pre $X post"`,
			want: &ListWord{
				Children: []WordNode{
					&StringWord{Value: "pre "},
					&ParamWord{Name: "X"},
					&StringWord{Value: " post"},
				},
				DoubleQuoted: true,
			},
		},
		{
			raw:  `""`,
			want: &StringWord{Value: ""},
		},
		{
			raw: "$((1 + 2))",
			want: &ArithWord{
				Body: &StringWord{Value: "1 + 2", SplitFields: true},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			got := parseWordForTest(t, test.raw)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseWord(%q) mismatch (-want +got):\n%s", test.raw, diff)
			}
		})
	}
}

func TestParseWordCommandSub(t *testing.T) {
	w := parseWordForTest(t, "$(echo hi)")
	cw, ok := w.(*CommandWord)
	if !ok {
		t.Fatalf("ParseWord($(echo hi)) = %T, want *CommandWord", w)
	}
	if cw.BackQuoted {
		t.Error("$(…) should not be marked back-quoted")
	}
	if cw.Program == nil || len(cw.Program.Commands) != 1 {
		t.Fatalf("substitution body not parsed: %+v", cw.Program)
	}

	w = parseWordForTest(t, "`echo hi`")
	cw, ok = w.(*CommandWord)
	if !ok {
		t.Fatalf("ParseWord(`echo hi`) = %T, want *CommandWord", w)
	}
	if !cw.BackQuoted {
		t.Error("`…` should be marked back-quoted")
	}
	if cw.Program == nil || len(cw.Program.Commands) != 1 {
		t.Fatalf("substitution body not parsed: %+v", cw.Program)
	}
}

func TestParseWordNestedSub(t *testing.T) {
	// A quoted ')' must not close the substitution early.
	w := parseWordForTest(t, `$(echo ")" done)`)
	cw, ok := w.(*CommandWord)
	if !ok {
		t.Fatalf("got %T, want *CommandWord", w)
	}
	cmd, ok := cw.Program.Commands[0].AndOr.First.Commands[0].(*Simple)
	if !ok {
		t.Fatalf("body is %T, want *Simple", cw.Program.Commands[0].AndOr.First.Commands[0])
	}
	if len(cmd.Args) != 2 {
		t.Fatalf("body args = %d, want 2", len(cmd.Args))
	}
}

func TestParseWordBadSubstitution(t *testing.T) {
	for _, raw := range []string{"${}", "${X!}", "${:-x}"} {
		if _, err := ParseWord("test", raw, 0, raw); err == nil {
			t.Errorf("ParseWord(%q) succeeded, want error", raw)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"plain", "plain"},
		{"a b", "'a b'"},
		{"don't", `'don'\''t'`},
		{"$X", "'$X'"},
		{"if", "'if'"},
	}
	for _, test := range tests {
		if got := Quote(test.in); got != test.want {
			t.Errorf("Quote(%q) = %s, want %s", test.in, got, test.want)
		}
	}
}
