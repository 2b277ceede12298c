package builtins

import (
	"github.com/nicomt/vanilla-shell/pkg/registry"
	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

func catCmd() *registry.Command {
	return &registry.Command{
		Name:        "cat",
		Description: "Concatenate files to standard output.",
		Category:    "file",
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) == 0 {
				ctx.Stdout(ctx.Stdin)
				return registry.ExitSuccess
			}
			code := registry.ExitSuccess
			for _, name := range args.Positional {
				if name == "-" {
					ctx.Stdout(ctx.Stdin)
					continue
				}
				data, err := ctx.FS.ReadFile(vfs.AbsPath(ctx.Cwd, name))
				if err != nil {
					code = registry.FileError(ctx, "cat", name, err)
					continue
				}
				ctx.Stdout(data)
			}
			return code
		},
	}
}

func pwdCmd() *registry.Command {
	return &registry.Command{
		Name:        "pwd",
		Description: "Print the current working directory.",
		Category:    "file",
		Run: func(ctx *registry.Context, args registry.Args) int {
			ctx.Stdout(ctx.Cwd + "\n")
			return registry.ExitSuccess
		},
	}
}

func mkdirCmd() *registry.Command {
	return &registry.Command{
		Name:        "mkdir",
		Description: "Create directories.",
		Category:    "file",
		Params: []registry.Param{
			{Name: "parents", Type: registry.Bool, Short: 'p', Usage: "make parent directories as needed"},
		},
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) == 0 {
				return registry.UsageError(ctx, "mkdir", "missing operand")
			}
			code := registry.ExitSuccess
			for _, name := range args.Positional {
				err := ctx.FS.Mkdir(vfs.AbsPath(ctx.Cwd, name), args.Bool("parents"))
				if err != nil {
					ctx.Errorf("mkdir: cannot create directory '%s': %s\n",
						name, vfs.Strerror(vfs.ErrorCode(err)))
					code = registry.ExitFailure
				}
			}
			return code
		},
	}
}

func lsCmd() *registry.Command {
	return &registry.Command{
		Name:        "ls",
		Description: "List directory contents.",
		Category:    "file",
		Params: []registry.Param{
			{Name: "long", Type: registry.Bool, Short: 'l', Usage: "use a long listing format"},
		},
		Run: func(ctx *registry.Context, args registry.Args) int {
			targets := args.Positional
			if len(targets) == 0 {
				targets = []string{"."}
			}
			code := registry.ExitSuccess
			for _, name := range targets {
				abs := vfs.AbsPath(ctx.Cwd, name)
				info, err := ctx.FS.Stat(abs)
				if err != nil {
					code = registry.FileError(ctx, "ls", name, err)
					continue
				}
				if info.IsFile {
					ctx.Stdout(name + "\n")
					continue
				}
				entries, err := ctx.FS.ReadDir(abs)
				if err != nil {
					code = registry.FileError(ctx, "ls", name, err)
					continue
				}
				for _, e := range entries {
					if args.Bool("long") {
						kind := "-"
						if e.IsDirectory {
							kind = "d"
						}
						ctx.Printf("%s %8d %s\n", kind, e.Size, e.Name)
					} else {
						ctx.Stdout(e.Name + "\n")
					}
				}
			}
			return code
		},
	}
}

func rmCmd() *registry.Command {
	return &registry.Command{
		Name:        "rm",
		Description: "Remove files.",
		Category:    "file",
		Params: []registry.Param{
			{Name: "recursive", Type: registry.Bool, Short: 'r', Usage: "remove directories and their contents"},
			{Name: "force", Type: registry.Bool, Short: 'f', Usage: "ignore nonexistent files"},
		},
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) == 0 {
				return registry.UsageError(ctx, "rm", "missing operand")
			}
			code := registry.ExitSuccess
			for _, name := range args.Positional {
				abs := vfs.AbsPath(ctx.Cwd, name)
				err := removePath(ctx.FS, abs, args.Bool("recursive"))
				if err != nil && !args.Bool("force") {
					ctx.Errorf("rm: cannot remove '%s': %s\n",
						name, vfs.Strerror(vfs.ErrorCode(err)))
					code = registry.ExitFailure
				}
			}
			return code
		},
	}
}

func cpCmd() *registry.Command {
	return &registry.Command{
		Name:        "cp",
		Description: "Copy a file.",
		Category:    "file",
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) != 2 {
				return registry.UsageError(ctx, "cp", "usage: cp SOURCE DEST")
			}
			src := vfs.AbsPath(ctx.Cwd, args.Positional[0])
			dst := vfs.AbsPath(ctx.Cwd, args.Positional[1])
			if info, err := ctx.FS.Stat(dst); err == nil && info.IsDirectory {
				dst = vfs.AbsPath(dst, lastSegment(src))
			}
			if err := ctx.FS.CopyFile(src, dst); err != nil {
				return registry.FileError(ctx, "cp", args.Positional[0], err)
			}
			return registry.ExitSuccess
		},
	}
}

func mvCmd() *registry.Command {
	return &registry.Command{
		Name:        "mv",
		Description: "Move or rename a file.",
		Category:    "file",
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) != 2 {
				return registry.UsageError(ctx, "mv", "usage: mv SOURCE DEST")
			}
			src := vfs.AbsPath(ctx.Cwd, args.Positional[0])
			dst := vfs.AbsPath(ctx.Cwd, args.Positional[1])
			if info, err := ctx.FS.Stat(dst); err == nil && info.IsDirectory {
				dst = vfs.AbsPath(dst, lastSegment(src))
			}
			if err := ctx.FS.Rename(src, dst); err != nil {
				return registry.FileError(ctx, "mv", args.Positional[0], err)
			}
			return registry.ExitSuccess
		},
	}
}

func realpathCmd() *registry.Command {
	return &registry.Command{
		Name:        "realpath",
		Description: "Print the resolved absolute path.",
		Category:    "file",
		Run: func(ctx *registry.Context, args registry.Args) int {
			if len(args.Positional) == 0 {
				return registry.UsageError(ctx, "realpath", "missing operand")
			}
			code := registry.ExitSuccess
			for _, name := range args.Positional {
				resolved, err := ctx.FS.Realpath(vfs.AbsPath(ctx.Cwd, name))
				if err != nil {
					code = registry.FileError(ctx, "realpath", name, err)
					continue
				}
				ctx.Stdout(resolved + "\n")
			}
			return code
		},
	}
}

func lastSegment(abs string) string {
	i := len(abs) - 1
	for i >= 0 && abs[i] != '/' {
		i--
	}
	return abs[i+1:]
}

func removePath(fs vfs.FS, abs string, recursive bool) error {
	info, err := fs.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDirectory {
		return fs.Unlink(abs)
	}
	if !recursive {
		return &vfs.Error{Op: "rm", Path: abs, Code: vfs.EISDIR}
	}
	entries, err := fs.ReadDir(abs)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := removePath(fs, abs+"/"+e.Name, true); err != nil {
			return err
		}
	}
	return fs.Rmdir(abs)
}
