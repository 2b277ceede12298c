package builtins

import (
	"strconv"

	"github.com/nicomt/vanilla-shell/pkg/registry"
)

func exitCmd() *registry.Command {
	return &registry.Command{
		Name:        "exit",
		Description: "Exit the shell.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			code := ctx.Shell.LastExitCode()
			if len(args.Positional) > 0 {
				n, err := strconv.Atoi(args.Positional[0])
				if err != nil {
					return registry.UsageError(ctx, "exit", "numeric argument required")
				}
				code = n
			}
			ctx.Shell.Exit(code)
			return code
		},
	}
}

func trueCmd() *registry.Command {
	return &registry.Command{
		Name:        "true",
		Description: "Return success.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			return registry.ExitSuccess
		},
	}
}

func falseCmd() *registry.Command {
	return &registry.Command{
		Name:        "false",
		Description: "Return failure.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			return registry.ExitFailure
		},
	}
}

func typeCmd() *registry.Command {
	return &registry.Command{
		Name:        "type",
		Aliases:     []string{"which"},
		Description: "Describe how a command name would be resolved.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			code := registry.ExitSuccess
			for _, name := range args.Positional {
				if value, ok := ctx.Shell.Aliases()[name]; ok {
					ctx.Printf("%s is aliased to '%s'\n", name, value)
					continue
				}
				if _, ok := ctx.Registry.Describe(name); ok {
					ctx.Printf("%s is a shell builtin\n", name)
					continue
				}
				ctx.Errorf("type: %s: not found\n", name)
				code = registry.ExitFailure
			}
			return code
		},
	}
}
