package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Shorthands for building expected trees.
func str(s string) WordNode { return &StringWord{Value: s, SplitFields: true} }

func simple(name string, args ...string) *Simple {
	cmd := &Simple{Name: str(name)}
	for _, a := range args {
		cmd.Args = append(cmd.Args, str(a))
	}
	return cmd
}

func list(cmds ...CommandNode) *CommandList {
	p := &Pipeline{Commands: cmds}
	return &CommandList{AndOr: &AndOr{First: p}}
}

func prog(lists ...*CommandList) *Program {
	return &Program{Commands: lists}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Program
	}{
		{
			name: "empty program",
			src:  "  \n ; \n",
			want: &Program{},
		},
		{
			name: "simple command",
			src:  "echo hello world",
			want: prog(list(simple("echo", "hello", "world"))),
		},
		{
			name: "pipeline",
			src:  "a | b | c",
			want: prog(list(simple("a"), simple("b"), simple("c"))),
		},
		{
			name: "negated pipeline",
			src:  "! a",
			want: prog(&CommandList{AndOr: &AndOr{
				First: &Pipeline{Negated: true, Commands: []CommandNode{simple("a")}},
			}}),
		},
		{
			name: "and-or list",
			src:  "a && b || c",
			want: prog(&CommandList{AndOr: &AndOr{
				First: &Pipeline{Commands: []CommandNode{simple("a")}},
				Rest: []AndOrItem{
					{Or: false, Pipeline: &Pipeline{Commands: []CommandNode{simple("b")}}},
					{Or: true, Pipeline: &Pipeline{Commands: []CommandNode{simple("c")}}},
				},
			}}),
		},
		{
			name: "async flag",
			src:  "a &",
			want: prog(&CommandList{
				AndOr: &AndOr{First: &Pipeline{Commands: []CommandNode{simple("a")}}},
				Async: true,
			}),
		},
		{
			name: "assignments before the name",
			src:  "X=1 Y=2 cmd Z=3",
			want: prog(list(&Simple{
				Name: str("cmd"),
				Args: []WordNode{str("Z=3")},
				Assignments: []*Assignment{
					{Name: "X", Value: str("1")},
					{Name: "Y", Value: str("2")},
				},
			})),
		},
		{
			name: "assignment-only command",
			src:  "X=1",
			want: prog(list(&Simple{
				Assignments: []*Assignment{{Name: "X", Value: str("1")}},
			})),
		},
		{
			name: "redirects with io numbers",
			src:  "cmd >out 2>err <in",
			want: prog(list(&Simple{
				Name: str("cmd"),
				Redirects: []*IoRedirect{
					{IoNumber: -1, Op: RedirOut, Name: str("out")},
					{IoNumber: 2, Op: RedirOut, Name: str("err")},
					{IoNumber: -1, Op: RedirIn, Name: str("in")},
				},
			})),
		},
		{
			name: "brace group",
			src:  "{ a; b; }",
			want: prog(list(&BraceGroup{Body: []*CommandList{
				list(simple("a")), list(simple("b")),
			}})),
		},
		{
			name: "subshell",
			src:  "(a; b)",
			want: prog(list(&Subshell{Body: []*CommandList{
				list(simple("a")), list(simple("b")),
			}})),
		},
		{
			name: "if else",
			src:  "if a; then b; else c; fi",
			want: prog(list(&If{
				Cond: []*CommandList{list(simple("a"))},
				Then: []*CommandList{list(simple("b"))},
				Else: []*CommandList{list(simple("c"))},
			})),
		},
		{
			name: "elif nests in else",
			src:  "if a; then b; elif c; then d; fi",
			want: prog(list(&If{
				Cond: []*CommandList{list(simple("a"))},
				Then: []*CommandList{list(simple("b"))},
				Else: []*CommandList{list(&If{
					Cond: []*CommandList{list(simple("c"))},
					Then: []*CommandList{list(simple("d"))},
				})},
			})),
		},
		{
			name: "for with words",
			src:  "for i in a b; do echo; done",
			want: prog(list(&For{
				Name:  "i",
				HasIn: true,
				Words: []WordNode{str("a"), str("b")},
				Body:  []*CommandList{list(simple("echo"))},
			})),
		},
		{
			name: "for without in iterates nothing",
			src:  "for i; do echo; done",
			want: prog(list(&For{
				Name: "i",
				Body: []*CommandList{list(simple("echo"))},
			})),
		},
		{
			name: "while loop",
			src:  "while a; do b; done",
			want: prog(list(&Loop{
				Cond: []*CommandList{list(simple("a"))},
				Body: []*CommandList{list(simple("b"))},
			})),
		},
		{
			name: "until loop",
			src:  "until a; do b; done",
			want: prog(list(&Loop{
				Until: true,
				Cond:  []*CommandList{list(simple("a"))},
				Body:  []*CommandList{list(simple("b"))},
			})),
		},
		{
			name: "case",
			src:  "case x in (a|b) one;; *) two;; esac",
			want: prog(list(&Case{
				Word: str("x"),
				Items: []*CaseItem{
					{
						Patterns: []WordNode{str("a"), str("b")},
						Body:     []*CommandList{list(simple("one"))},
					},
					{
						Patterns: []WordNode{str("*")},
						Body:     []*CommandList{list(simple("two"))},
					},
				},
			})),
		},
		{
			name: "function definition",
			src:  "f() { a; }",
			want: prog(list(&FunctionDef{
				Name: "f",
				Body: &BraceGroup{Body: []*CommandList{list(simple("a"))}},
			})),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse("test", test.src)
			if err != nil {
				t.Fatalf("Parse(%q): %v", test.src, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.src, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src     string
		wantMsg string
	}{
		{"echo |", "command after '|'"},
		{"a &&", "command"},
		{"!", "command"},
		{"if a; then b", "\"fi\""},
		{"{ a", "\"}\""},
		{"( a", "\")\""},
		{"while a do done", "expected"},
		{"case x in a) y;;", "'esac'"},
		{"cmd >", "redirection target"},
	}
	for _, test := range tests {
		_, err := Parse("test", test.src)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error containing %q", test.src, test.wantMsg)
			continue
		}
		if !strings.Contains(err.Error(), test.wantMsg) {
			t.Errorf("Parse(%q) error %q does not contain %q", test.src, err, test.wantMsg)
		}
	}
}
