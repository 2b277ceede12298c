package builtins

import "github.com/nicomt/vanilla-shell/pkg/registry"

func helpCmd() *registry.Command {
	return &registry.Command{
		Name:        "help",
		Description: "List available commands.",
		Category:    "shell",
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) > 0 {
				cmd, ok := ctx.Registry.Describe(args.Positional[0])
				if !ok {
					ctx.Errorf("help: %s: not found\n", args.Positional[0])
					return registry.ExitFailure
				}
				ctx.Printf("%s - %s\n", cmd.Name, cmd.Description)
				for _, p := range cmd.Params {
					if p.Short != 0 {
						ctx.Printf("  -%c, --%s  %s\n", p.Short, p.Name, p.Usage)
					} else {
						ctx.Printf("  --%s  %s\n", p.Name, p.Usage)
					}
				}
				return registry.ExitSuccess
			}
			for _, cmd := range ctx.Registry.ListVisible() {
				ctx.Printf("%-10s %s\n", cmd.Name, cmd.Description)
			}
			return registry.ExitSuccess
		},
	}
}
