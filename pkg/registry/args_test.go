package registry

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testCommand() *Command {
	return &Command{
		Name: "t",
		Params: []Param{
			{Name: "lines", Type: Bool, Short: 'l'},
			{Name: "output", Type: String, Short: 'o'},
			{Name: "count", Type: Number, Default: int64(10)},
			{Name: "include", Type: Array, Short: 'I'},
		},
		FlagAliases: map[string]string{"n": "count"},
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Args
	}{
		{
			name: "positional only",
			argv: []string{"a", "b"},
			want: Args{
				Options:    map[string]any{"count": int64(10)},
				Positional: []string{"a", "b"},
			},
		},
		{
			name: "long with value",
			argv: []string{"--output=x.txt"},
			want: Args{
				Options: map[string]any{"output": "x.txt", "count": int64(10)},
			},
		},
		{
			name: "long consumes next",
			argv: []string{"--output", "x.txt", "rest"},
			want: Args{
				Options:    map[string]any{"output": "x.txt", "count": int64(10)},
				Positional: []string{"rest"},
			},
		},
		{
			name: "long bool does not consume",
			argv: []string{"--lines", "f"},
			want: Args{
				Options:    map[string]any{"lines": true, "count": int64(10)},
				Positional: []string{"f"},
			},
		},
		{
			name: "short flag",
			argv: []string{"-l", "f"},
			want: Args{
				Options:    map[string]any{"lines": true, "count": int64(10)},
				Positional: []string{"f"},
			},
		},
		{
			name: "short alias to number",
			argv: []string{"-n", "3"},
			want: Args{
				Options: map[string]any{"count": int64(3)},
			},
		},
		{
			name: "unknown short records true",
			argv: []string{"-z"},
			want: Args{
				Options: map[string]any{"z": true, "count": int64(10)},
			},
		},
		{
			name: "array accumulates",
			argv: []string{"-I", "a", "-I", "b"},
			want: Args{
				Options: map[string]any{"include": []string{"a", "b"}, "count": int64(10)},
			},
		},
		{
			name: "dash-prefixed word is positional",
			argv: []string{"-eq"},
			want: Args{
				Options:    map[string]any{"count": int64(10)},
				Positional: []string{"-eq"},
			},
		},
	}
	cmd := testCommand()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := cmd.ParseArgs(test.argv)
			if err != nil {
				t.Fatalf("ParseArgs(%v): %v", test.argv, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseArgs(%v) mismatch (-want +got):\n%s", test.argv, diff)
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	cmd := testCommand()
	if _, err := cmd.ParseArgs([]string{"--count=x"}); err == nil {
		t.Error("non-numeric --count should fail")
	}
	if _, err := cmd.ParseArgs([]string{"--output"}); err == nil {
		t.Error("--output without value should fail")
	}

	required := &Command{Name: "r", Params: []Param{{Name: "must", Type: String, Required: true}}}
	_, err := required.ParseArgs(nil)
	if err == nil || !strings.Contains(err.Error(), "must") {
		t.Errorf("missing required option: got %v", err)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := New()
	r.Register(&Command{Name: "echo", Aliases: []string{"print"}})
	r.Register(&Command{Name: "secret", Hidden: true})

	if _, ok := r.Get("echo"); !ok {
		t.Error("Get(echo) missed")
	}
	if cmd, ok := r.Get("print"); !ok || cmd.Name != "echo" {
		t.Errorf("Get(print) = %v, %v; want echo", cmd, ok)
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("Get(nope) should miss")
	}
	if got := len(r.List()); got != 2 {
		t.Errorf("List() len = %d, want 2", got)
	}
	if got := len(r.ListVisible()); got != 1 {
		t.Errorf("ListVisible() len = %d, want 1", got)
	}
}
