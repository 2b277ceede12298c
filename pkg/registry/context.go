package registry

import "fmt"

// Exit codes following POSIX conventions.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Printf writes a formatted message to the command's stdout.
func (ctx *Context) Printf(format string, args ...any) {
	ctx.Stdout(fmt.Sprintf(format, args...))
}

// Println writes a line to the command's stdout.
func (ctx *Context) Println(args ...any) {
	ctx.Stdout(fmt.Sprintln(args...))
}

// Errorf writes a formatted message to the command's stderr.
func (ctx *Context) Errorf(format string, args ...any) {
	ctx.Stderr(fmt.Sprintf(format, args...))
}

// UsageError prints "<name>: <message>" on stderr and returns ExitUsage.
func UsageError(ctx *Context, name, message string) int {
	ctx.Errorf("%s: %s\n", name, message)
	return ExitUsage
}

// FileError prints "<name>: <subject>: <reason>" on stderr and returns
// ExitFailure.
func FileError(ctx *Context, name, subject string, err error) int {
	ctx.Errorf("%s: %s: %v\n", name, subject, reason(err))
	return ExitFailure
}

func reason(err error) any {
	type coder interface{ Reason() string }
	if c, ok := err.(coder); ok {
		return c.Reason()
	}
	return err
}
