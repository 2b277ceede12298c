package builtins

import (
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/env"
	"github.com/nicomt/vanilla-shell/pkg/registry"
)

func cdCmd() *registry.Command {
	return &registry.Command{
		Name:        "cd",
		Description: "Change the working directory.",
		Category:    "file",
		Run: func(ctx *registry.Context, args registry.Args) int {
			home := ctx.Env.GetDefault(env.HOME, "")
			var target string
			printTarget := false
			switch {
			case len(args.Positional) == 0:
				if home == "" {
					return registry.UsageError(ctx, "cd", "HOME not set")
				}
				target = home
			case args.Positional[0] == "-":
				old, ok := ctx.Env.Get(env.OLDPWD)
				if !ok {
					ctx.Errorf("cd: OLDPWD not set\n")
					return registry.ExitFailure
				}
				target = old
				printTarget = true
			default:
				target = expandTilde(args.Positional[0], home)
			}

			oldCwd := ctx.Cwd
			if err := ctx.Shell.SetCwd(target); err != nil {
				return registry.FileError(ctx, "cd", target, err)
			}
			ctx.Shell.SetEnv(env.OLDPWD, oldCwd)
			if printTarget {
				ctx.Stdout(ctx.Shell.GetCwd() + "\n")
			}
			return registry.ExitSuccess
		},
	}
}

// expandTilde resolves a leading ~ against home. Only cd does this; the word
// engine performs no tilde expansion.
func expandTilde(target, home string) string {
	if home == "" {
		return target
	}
	if target == "~" {
		return home
	}
	if strings.HasPrefix(target, "~/") {
		return home + target[1:]
	}
	return target
}
