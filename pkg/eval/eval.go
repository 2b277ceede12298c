package eval

import (
	"fmt"
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/glob"
	"github.com/nicomt/vanilla-shell/pkg/parse"
	"github.com/nicomt/vanilla-shell/pkg/registry"
	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

// Execute parses and runs source, returning the exit code of the last
// command list. Parse errors are reported on stderr and yield exit code 2.
func (sh *Shell) Execute(source string) int {
	prog, err := parse.Parse(sh.name, source)
	if err != nil {
		sh.stderr(fmt.Sprintf("%s: %s\n", sh.name, err))
		sh.lastExit = 2
		return 2
	}
	return sh.evalBody(prog.Commands)
}

// evalBody runs a sequence of command lists, stopping early when the shell
// has been asked to exit. It returns the exit code of the last list run, or
// 0 for an empty sequence.
func (sh *Shell) evalBody(lists []*parse.CommandList) int {
	code := 0
	for _, cl := range lists {
		if !sh.running {
			break
		}
		code = sh.evalAndOr(cl.AndOr)
		sh.lastExit = code
	}
	return code
}

func (sh *Shell) evalAndOr(andOr *parse.AndOr) int {
	code := sh.evalPipeline(andOr.First)
	for _, item := range andOr.Rest {
		if !sh.running {
			break
		}
		if item.Or {
			if code == 0 {
				continue
			}
		} else if code != 0 {
			continue
		}
		code = sh.evalPipeline(item.Pipeline)
	}
	return code
}

// evalPipeline runs a pipeline, staging each stage's stdout as the next
// stage's stdin. stderr is never redirected by a pipe.
func (sh *Shell) evalPipeline(p *parse.Pipeline) int {
	var code int
	if len(p.Commands) == 1 {
		code = sh.evalCommand(p.Commands[0])
	} else {
		savedOut := sh.stdout
		for i, cmd := range p.Commands {
			last := i == len(p.Commands)-1
			var buf strings.Builder
			if last {
				sh.stdout = savedOut
			} else {
				sh.stdout = func(s string) { buf.WriteString(s) }
			}
			code = sh.evalCommand(cmd)
			if !last {
				sh.pipeBuffer = buf.String()
			}
			if !sh.running {
				break
			}
		}
		sh.stdout = savedOut
		sh.pipeBuffer = ""
	}
	if p.Negated {
		if code == 0 {
			return 1
		}
		return 0
	}
	return code
}

func (sh *Shell) evalCommand(cmd parse.CommandNode) int {
	switch cmd := cmd.(type) {
	case *parse.Simple:
		return sh.evalSimple(cmd)
	case *parse.BraceGroup:
		return sh.evalBody(cmd.Body)
	case *parse.Subshell:
		return sh.evalSubshell(cmd)
	case *parse.If:
		return sh.evalIf(cmd)
	case *parse.For:
		return sh.evalFor(cmd)
	case *parse.Loop:
		return sh.evalLoop(cmd)
	case *parse.Case:
		return sh.evalCase(cmd)
	case *parse.FunctionDef:
		sh.functions[cmd.Name] = cmd.Body
		return 0
	}
	return 0
}

// evalSubshell runs the body with environment and working directory
// snapshotted, restoring both afterwards.
func (sh *Shell) evalSubshell(cmd *parse.Subshell) int {
	savedEnv := sh.env.Clone()
	savedCwd := sh.cwd
	defer func() {
		sh.env = savedEnv
		sh.cwd = savedCwd
	}()
	return sh.evalBody(cmd.Body)
}

func (sh *Shell) evalIf(cmd *parse.If) int {
	if sh.evalBody(cmd.Cond) == 0 {
		return sh.evalBody(cmd.Then)
	}
	if cmd.Else != nil {
		return sh.evalBody(cmd.Else)
	}
	return 0
}

func (sh *Shell) evalFor(cmd *parse.For) int {
	code := 0
	for _, w := range cmd.Words {
		if !sh.running {
			break
		}
		value, _ := sh.expand(w)
		sh.env.Set(cmd.Name, value)
		code = sh.evalBody(cmd.Body)
	}
	return code
}

func (sh *Shell) evalLoop(cmd *parse.Loop) int {
	code := 0
	for sh.running {
		cond := sh.evalBody(cmd.Cond)
		if cmd.Until == (cond == 0) {
			break
		}
		if !sh.running {
			break
		}
		code = sh.evalBody(cmd.Body)
	}
	return code
}

func (sh *Shell) evalCase(cmd *parse.Case) int {
	subject, _ := sh.expand(cmd.Word)
	for _, item := range cmd.Items {
		for _, pw := range item.Patterns {
			pattern, _ := sh.expand(pw)
			if glob.Match(pattern, subject) {
				return sh.evalBody(item.Body)
			}
		}
	}
	return 0
}

// outRedirect is a pending output redirection, committed when the command
// finishes.
type outRedirect struct {
	path   string
	append bool
}

func (sh *Shell) evalSimple(cmd *parse.Simple) (code int) {
	savedOut, savedErr := sh.stdout, sh.stderr
	var outBuf *strings.Builder
	var outTargets []outRedirect

	defer func() {
		sh.stdout, sh.stderr = savedOut, savedErr
		sh.pipeBuffer = ""
		for _, t := range outTargets {
			var err error
			if t.append {
				err = sh.fs.AppendFile(t.path, outBuf.String())
			} else {
				err = sh.fs.WriteFile(t.path, outBuf.String())
			}
			if err != nil {
				sh.stderr(fmt.Sprintf("%s: %s: %s\n", sh.name, t.path, vfs.Strerror(vfs.ErrorCode(err))))
				code = 1
			}
		}
	}()

	// 1. Redirections. Output redirections capture stdout until the command
	// completes; input redirections stage the file into the pipe buffer.
	for _, r := range cmd.Redirects {
		target, _ := sh.expand(r.Name)
		switch r.Op {
		case parse.RedirOut, parse.RedirOutClob, parse.RedirAppend:
			if outBuf == nil {
				outBuf = &strings.Builder{}
				sh.stdout = func(s string) { outBuf.WriteString(s) }
			}
			outTargets = append(outTargets, outRedirect{
				path:   vfs.AbsPath(sh.cwd, target),
				append: r.Op == parse.RedirAppend,
			})
		case parse.RedirDupOut:
			// ">&1" leaves stdout alone; ">&2" rebinds stdout to stderr.
			if target == "2" {
				sh.stdout = sh.stderr
			}
		case parse.RedirIn:
			data, err := sh.fs.ReadFile(vfs.AbsPath(sh.cwd, target))
			if err != nil {
				sh.stderr(fmt.Sprintf("%s: %s: No such file or directory\n", sh.name, target))
				return 1
			}
			sh.pipeBuffer = data
		default:
			// <<, <<-, <& and <> parse but do nothing here.
		}
	}

	// 2. Assignments. They are committed to the environment either way; with
	// a command name present their effects are visible to the command.
	for _, a := range cmd.Assignments {
		value, _ := sh.expand(a.Value)
		sh.env.Set(a.Name, value)
	}
	if cmd.Name == nil {
		return 0
	}

	// 3. Command name and arguments.
	name, nameOK := sh.expand(cmd.Name)
	argv := make([]string, 0, len(cmd.Args))
	argsOK := true
	for _, a := range cmd.Args {
		s, ok := sh.expand(a)
		argv = append(argv, s)
		argsOK = argsOK && ok
	}
	if !nameOK || !argsOK {
		return 1
	}

	// 4. Alias resolution, a single textual pass per invocation.
	if value, ok := sh.aliases[name]; ok && sh.aliasDepth == 0 {
		return sh.runAliased(value, argv)
	}

	// 5. Shell functions.
	if body, ok := sh.functions[name]; ok {
		return sh.evalCommand(body)
	}

	// 6. Registry lookup.
	entry, ok := sh.registry.Get(name)
	if !ok {
		sh.stderr(fmt.Sprintf("%s: %s: command not found\n", sh.name, name))
		return 127
	}

	// 7. Argument parsing and invocation.
	args, err := entry.ParseArgs(argv)
	if err != nil {
		sh.stderr(fmt.Sprintf("%s: %s\n", name, err))
		return 2
	}
	ctx := &registry.Context{
		Stdout:   func(s string) { sh.stdout(s) },
		Stderr:   func(s string) { sh.stderr(s) },
		Stdin:    sh.pipeBuffer,
		Env:      sh.env,
		Cwd:      sh.cwd,
		FS:       sh.fs,
		Shell:    sh,
		Registry: sh.registry,
	}
	return sh.invoke(entry, ctx, args)
}

// invoke runs a handler, converting a panic into exit 1 with a diagnostic.
func (sh *Shell) invoke(entry *registry.Command, ctx *registry.Context, args registry.Args) (code int) {
	defer func() {
		if r := recover(); r != nil {
			sh.stderr(fmt.Sprintf("%s: %v\n", entry.Name, r))
			code = 1
		}
	}()
	return entry.Run(ctx, args)
}

// runAliased re-parses the alias value with the expanded arguments appended
// and runs the result as a new statement.
func (sh *Shell) runAliased(value string, argv []string) int {
	var sb strings.Builder
	sb.WriteString(value)
	for _, a := range argv {
		sb.WriteByte(' ')
		sb.WriteString(parse.Quote(a))
	}
	prog, err := parse.Parse(sh.name, sb.String())
	if err != nil {
		sh.stderr(fmt.Sprintf("%s: %s\n", sh.name, err))
		return 2
	}
	sh.aliasDepth++
	defer func() { sh.aliasDepth-- }()
	return sh.evalBody(prog.Commands)
}
