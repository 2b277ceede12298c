package builtins

import (
	"fmt"
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/registry"
	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

func wcCmd() *registry.Command {
	return &registry.Command{
		Name:        "wc",
		Description: "Count lines, words and bytes.",
		Category:    "text",
		Params: []registry.Param{
			{Name: "lines", Type: registry.Bool, Short: 'l', Usage: "print the newline count"},
			{Name: "words", Type: registry.Bool, Short: 'w', Usage: "print the word count"},
			{Name: "bytes", Type: registry.Bool, Short: 'c', Usage: "print the byte count"},
		},
		Run: func(ctx *registry.Context, args registry.Args) int {
			lines, words, bytes := args.Bool("lines"), args.Bool("words"), args.Bool("bytes")
			if !lines && !words && !bytes {
				lines, words, bytes = true, true, true
			}
			format := func(data, label string) string {
				var sb strings.Builder
				if lines {
					sb.WriteString(fmt.Sprintf("%8d", strings.Count(data, "\n")))
				}
				if words {
					sb.WriteString(fmt.Sprintf("%8d", len(strings.Fields(data))))
				}
				if bytes {
					sb.WriteString(fmt.Sprintf("%8d", len(data)))
				}
				if label != "" {
					sb.WriteString(" " + label)
				}
				sb.WriteString("\n")
				return sb.String()
			}

			if len(args.Positional) == 0 {
				ctx.Stdout(format(ctx.Stdin, ""))
				return registry.ExitSuccess
			}
			code := registry.ExitSuccess
			for _, name := range args.Positional {
				data, err := ctx.FS.ReadFile(vfs.AbsPath(ctx.Cwd, name))
				if err != nil {
					code = registry.FileError(ctx, "wc", name, err)
					continue
				}
				ctx.Stdout(format(data, name))
			}
			return code
		},
	}
}
