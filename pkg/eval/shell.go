// Package eval implements the shell's runtime: word expansion, pipeline and
// control-flow evaluation, and the mutable shell state the language operates
// on.
package eval

import (
	"sort"

	"github.com/nicomt/vanilla-shell/pkg/env"
	"github.com/nicomt/vanilla-shell/pkg/parse"
	"github.com/nicomt/vanilla-shell/pkg/registry"
	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

// DefaultName is the program name used in shell diagnostics when Config.Name
// is empty.
const DefaultName = "vsh"

// Config configures a new Shell. Zero values get usable defaults.
type Config struct {
	// Name is the shell's program name, used as the prefix of diagnostics
	// and as the expansion of $0.
	Name string
	// Cwd is the initial working directory; defaults to $HOME.
	Cwd string
	// FS is the sandboxed filesystem; defaults to an empty in-memory
	// filesystem with $HOME present.
	FS vfs.FS
	// Stdout and Stderr receive output; nil means discard.
	Stdout func(string)
	Stderr func(string)
	// Registry is the command registry; defaults to an empty registry.
	Registry *registry.Registry
	// Env seeds additional environment variables.
	Env map[string]string
}

// Shell is a command interpreter instance. It is not safe for concurrent
// use; callers must serialize Execute calls.
type Shell struct {
	name      string
	cwd       string
	env       *env.Map
	aliases   map[string]string
	functions map[string]parse.CommandNode
	lastExit  int
	running   bool

	// pipeBuffer stages the stdin of the next pipeline stage.
	pipeBuffer string

	stdout func(string)
	stderr func(string)

	fs       vfs.FS
	registry *registry.Registry

	// aliasDepth limits alias expansion to a single pass per invocation.
	aliasDepth int
}

var _ registry.Shell = (*Shell)(nil)

func discard(string) {}

// New returns a Shell with the configured state and the default environment:
// HOME=/home/user, PWD=cwd, PATH=/bin:/usr/bin and PS1="$ " unless
// overridden.
func New(cfg Config) *Shell {
	sh := &Shell{
		name:      cfg.Name,
		env:       env.NewMap(),
		aliases:   make(map[string]string),
		functions: make(map[string]parse.CommandNode),
		running:   true,
		stdout:    cfg.Stdout,
		stderr:    cfg.Stderr,
		fs:        cfg.FS,
		registry:  cfg.Registry,
	}
	if sh.name == "" {
		sh.name = DefaultName
	}
	if sh.stdout == nil {
		sh.stdout = discard
	}
	if sh.stderr == nil {
		sh.stderr = discard
	}
	if sh.registry == nil {
		sh.registry = registry.New()
	}

	sh.env.Set(env.HOME, "/home/user")
	sh.env.Set(env.PATH, "/bin:/usr/bin")
	sh.env.Set(env.PS1, "$ ")
	for _, name := range sortedKeys(cfg.Env) {
		sh.env.Set(name, cfg.Env[name])
	}

	home, _ := sh.env.Get(env.HOME)
	sh.cwd = vfs.AbsPath("/", home)
	if cfg.Cwd != "" {
		sh.cwd = vfs.AbsPath("/", cfg.Cwd)
	}
	sh.env.Set(env.PWD, sh.cwd)

	if sh.fs == nil {
		sh.fs = vfs.NewMemFSWith(vfs.AbsPath("/", home), sh.cwd)
	}
	return sh
}

// sortedKeys makes seeding of the ordered env map deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Name returns the shell's program name.
func (sh *Shell) Name() string { return sh.name }

// FS returns the shell's filesystem capability.
func (sh *Shell) FS() vfs.FS { return sh.fs }

// Registry returns the shell's command registry.
func (sh *Shell) Registry() *registry.Registry { return sh.registry }

// Env returns the environment as a read-only view.
func (sh *Shell) Env() registry.EnvView { return sh.env }

// GetEnv returns the value of name and whether it is set.
func (sh *Shell) GetEnv(name string) (string, bool) { return sh.env.Get(name) }

// SetEnv sets name to value.
func (sh *Shell) SetEnv(name, value string) { sh.env.Set(name, value) }

// UnsetEnv removes name from the environment.
func (sh *Shell) UnsetEnv(name string) { sh.env.Unset(name) }

// GetCwd returns the current working directory, always absolute and
// normalized.
func (sh *Shell) GetCwd() string { return sh.cwd }

// SetCwd changes the working directory and updates $PWD. The path is
// resolved against the current directory and must exist as a directory.
func (sh *Shell) SetCwd(path string) error {
	abs := vfs.AbsPath(sh.cwd, path)
	info, err := sh.fs.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDirectory {
		return &vfs.Error{Op: "chdir", Path: abs, Code: vfs.ENOENT}
	}
	sh.cwd = abs
	sh.env.Set(env.PWD, abs)
	return nil
}

// LastExitCode returns the exit code of the most recent command.
func (sh *Shell) LastExitCode() int { return sh.lastExit }

// IsRunning reports whether the shell has not been asked to exit.
func (sh *Shell) IsRunning() bool { return sh.running }

// Exit requests shell termination with the given code. Composite constructs
// observe the flag between statements and stop early.
func (sh *Shell) Exit(code int) {
	sh.running = false
	sh.lastExit = code
}

// SetAlias installs or replaces a shell alias.
func (sh *Shell) SetAlias(name, value string) { sh.aliases[name] = value }

// UnsetAlias removes a shell alias.
func (sh *Shell) UnsetAlias(name string) { delete(sh.aliases, name) }

// Aliases returns a copy of the alias table.
func (sh *Shell) Aliases() map[string]string {
	m := make(map[string]string, len(sh.aliases))
	for k, v := range sh.aliases {
		m[k] = v
	}
	return m
}

// DefineFunction installs a shell function. The body is retained for the
// life of the shell or until redefined.
func (sh *Shell) DefineFunction(name string, body parse.CommandNode) {
	sh.functions[name] = body
}

// SetStdout rebinds the shell's stdout callback, returning the previous
// binding.
func (sh *Shell) SetStdout(w func(string)) func(string) {
	prev := sh.stdout
	if w == nil {
		w = discard
	}
	sh.stdout = w
	return prev
}

// SetStderr rebinds the shell's stderr callback, returning the previous
// binding.
func (sh *Shell) SetStderr(w func(string)) func(string) {
	prev := sh.stderr
	if w == nil {
		w = discard
	}
	sh.stderr = w
	return prev
}
