package builtins

import (
	"strings"

	"github.com/benhoyt/goawk/interp"
	"github.com/benhoyt/goawk/parser"

	"github.com/nicomt/vanilla-shell/pkg/registry"
	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

// writerFunc adapts a stream callback to io.Writer for goawk.
type writerFunc func(string)

func (w writerFunc) Write(p []byte) (int, error) {
	w(string(p))
	return len(p), nil
}

func awkCmd() *registry.Command {
	return &registry.Command{
		Name:        "awk",
		Description: "Pattern scanning and processing language.",
		Category:    "text",
		Params: []registry.Param{
			{Name: "field-separator", Type: registry.String, Short: 'F', Usage: "field separator"},
			{Name: "assign", Type: registry.Array, Short: 'v', Usage: "assign VAR=VALUE before execution"},
		},
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) == 0 {
				return registry.UsageError(ctx, "awk", "missing program")
			}
			src := args.Positional[0]
			files := args.Positional[1:]

			prog, err := parser.ParseProgram([]byte(src), nil)
			if err != nil {
				ctx.Errorf("awk: %v\n", err)
				return registry.ExitUsage
			}

			// Inputs are staged as strings through the sandboxed filesystem;
			// goawk never touches real files.
			input := ctx.Stdin
			if len(files) > 0 {
				var sb strings.Builder
				for _, name := range files {
					data, err := ctx.FS.ReadFile(vfs.AbsPath(ctx.Cwd, name))
					if err != nil {
						return registry.FileError(ctx, "awk", name, err)
					}
					sb.WriteString(data)
				}
				input = sb.String()
			}

			config := &interp.Config{
				Stdin:        strings.NewReader(input),
				Output:       writerFunc(ctx.Stdout),
				Error:        writerFunc(ctx.Stderr),
				Args:         []string{"-"},
				NoFileReads:  true,
				NoFileWrites: true,
				NoExec:       true,
			}
			if sep := args.String("field-separator"); sep != "" {
				config.Vars = append(config.Vars, "FS", sep)
			}
			for _, assign := range args.Array("assign") {
				name, value, ok := strings.Cut(assign, "=")
				if !ok {
					return registry.UsageError(ctx, "awk", "invalid -v assignment "+assign)
				}
				config.Vars = append(config.Vars, name, value)
			}

			status, err := interp.ExecProgram(prog, config)
			if err != nil {
				ctx.Errorf("awk: %v\n", err)
				return registry.ExitFailure
			}
			return status
		},
	}
}
