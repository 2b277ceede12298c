package builtins

import (
	"sort"
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/registry"
)

func exportCmd() *registry.Command {
	return &registry.Command{
		Name:        "export",
		Description: "Set environment variables.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) == 0 {
				for _, name := range ctx.Env.Names() {
					value, _ := ctx.Env.Get(name)
					ctx.Printf("export %s=\"%s\"\n", name, value)
				}
				return registry.ExitSuccess
			}
			for _, arg := range args.Positional {
				name, value, ok := strings.Cut(arg, "=")
				if !ok {
					// A bare name is kept as-is; all variables are exported.
					continue
				}
				ctx.Shell.SetEnv(name, value)
			}
			return registry.ExitSuccess
		},
	}
}

func unsetCmd() *registry.Command {
	return &registry.Command{
		Name:        "unset",
		Description: "Unset environment variables.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			for _, name := range args.Positional {
				ctx.Shell.UnsetEnv(name)
			}
			return registry.ExitSuccess
		},
	}
}

func aliasCmd() *registry.Command {
	return &registry.Command{
		Name:        "alias",
		Description: "Define or display aliases.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) == 0 {
				aliases := ctx.Shell.Aliases()
				names := make([]string, 0, len(aliases))
				for name := range aliases {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					ctx.Printf("alias %s='%s'\n", name, aliases[name])
				}
				return registry.ExitSuccess
			}
			code := registry.ExitSuccess
			for _, arg := range args.Positional {
				name, value, ok := strings.Cut(arg, "=")
				if !ok {
					if v, found := ctx.Shell.Aliases()[arg]; found {
						ctx.Printf("alias %s='%s'\n", arg, v)
					} else {
						ctx.Errorf("alias: %s: not found\n", arg)
						code = registry.ExitFailure
					}
					continue
				}
				ctx.Shell.SetAlias(name, value)
			}
			return code
		},
	}
}

func unaliasCmd() *registry.Command {
	return &registry.Command{
		Name:        "unalias",
		Description: "Remove aliases.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			code := registry.ExitSuccess
			for _, name := range args.Positional {
				if _, ok := ctx.Shell.Aliases()[name]; !ok {
					ctx.Errorf("unalias: %s: not found\n", name)
					code = registry.ExitFailure
					continue
				}
				ctx.Shell.UnsetAlias(name)
			}
			return code
		},
	}
}
