package builtins

import (
	"fmt"
	"strconv"

	"github.com/nicomt/vanilla-shell/pkg/registry"
	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

func testCmd() *registry.Command {
	return &registry.Command{
		Name:        "test",
		Aliases:     []string{"["},
		Description: "Evaluate a conditional expression.",
		Category:    "shell",
		Params: []registry.Param{
			{Name: "z", Type: registry.Bool, Short: 'z', Usage: "string is empty"},
			{Name: "n", Type: registry.Bool, Short: 'n', Usage: "string is not empty"},
			{Name: "f", Type: registry.Bool, Short: 'f', Usage: "path is a regular file"},
			{Name: "d", Type: registry.Bool, Short: 'd', Usage: "path is a directory"},
			{Name: "e", Type: registry.Bool, Short: 'e', Usage: "path exists"},
		},
		Run: func(ctx *registry.Context, args registry.Args) int {
			pos := args.Positional
			// A trailing "]" (the closing bracket of the "[" form) is
			// dropped; it is not required.
			if len(pos) > 0 && pos[len(pos)-1] == "]" {
				pos = pos[:len(pos)-1]
			}
			negate := false
			if len(pos) > 0 && pos[0] == "!" {
				negate = true
				pos = pos[1:]
			}
			result, err := evalTest(ctx, args, pos)
			if err != nil {
				return registry.UsageError(ctx, "test", err.Error())
			}
			if negate {
				result = !result
			}
			if result {
				return registry.ExitSuccess
			}
			return registry.ExitFailure
		},
	}
}

func evalTest(ctx *registry.Context, args registry.Args, pos []string) (bool, error) {
	operand := ""
	if len(pos) > 0 {
		operand = pos[0]
	}
	abs := vfs.AbsPath(ctx.Cwd, operand)
	switch {
	case args.Bool("z"):
		return operand == "", nil
	case args.Bool("n"):
		return operand != "", nil
	case args.Bool("f"):
		info, err := ctx.FS.Stat(abs)
		return err == nil && info.IsFile, nil
	case args.Bool("d"):
		info, err := ctx.FS.Stat(abs)
		return err == nil && info.IsDirectory, nil
	case args.Bool("e"):
		return ctx.FS.Access(abs) == nil, nil
	}

	switch len(pos) {
	case 0:
		return false, nil
	case 1:
		return pos[0] != "", nil
	case 3:
		return evalTestBinary(pos[0], pos[1], pos[2])
	}
	return false, fmt.Errorf("too many arguments")
}

func evalTestBinary(left, op, right string) (bool, error) {
	switch op {
	case "=":
		return left == right, nil
	case "!=":
		return left != right, nil
	}
	a, errA := strconv.Atoi(left)
	b, errB := strconv.Atoi(right)
	if errA != nil || errB != nil {
		return false, fmt.Errorf("integer expression expected")
	}
	switch op {
	case "-eq":
		return a == b, nil
	case "-ne":
		return a != b, nil
	case "-lt":
		return a < b, nil
	case "-le":
		return a <= b, nil
	case "-gt":
		return a > b, nil
	case "-ge":
		return a >= b, nil
	}
	return false, fmt.Errorf("unknown operator %s", op)
}
