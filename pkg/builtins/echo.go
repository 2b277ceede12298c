package builtins

import (
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/registry"
)

var echoEscapes = strings.NewReplacer(
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\\`, `\`,
	`\a`, "\a",
	`\b`, "\b",
	`\f`, "\f",
	`\v`, "\v",
)

func echoCmd() *registry.Command {
	return &registry.Command{
		Name:        "echo",
		Description: "Display a line of text.",
		Category:    "text",
		Params: []registry.Param{
			{Name: "n", Type: registry.Bool, Short: 'n', Usage: "do not output the trailing newline"},
			{Name: "e", Type: registry.Bool, Short: 'e', Usage: "interpret backslash escapes"},
		},
		Run: func(ctx *registry.Context, args registry.Args) int {
			line := strings.Join(args.Positional, " ")
			if args.Bool("e") {
				line = echoEscapes.Replace(line)
			}
			if !args.Bool("n") {
				line += "\n"
			}
			ctx.Stdout(line)
			return registry.ExitSuccess
		},
	}
}
