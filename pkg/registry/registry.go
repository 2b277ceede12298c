// Package registry holds the host-provided command set: name and alias
// lookup, argument schemas, and the context handed to command handlers.
package registry

import (
	"sort"

	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

// ParamType enumerates the declared types of command options.
type ParamType int

const (
	String ParamType = iota
	Bool
	Number
	Array
)

// Param describes one option in a command's schema.
type Param struct {
	Name string
	Type ParamType
	// Short is the single-character flag mapped to this option, 0 for none.
	Short byte
	// Default is applied when the option is absent. Its concrete type must
	// match Type: string, bool, int64 or []string.
	Default  any
	Required bool
	Usage    string
}

// Context is passed to command handlers. It carries the streams, a view of
// shell state and the capabilities a handler may use.
type Context struct {
	Stdout func(string)
	Stderr func(string)
	// Stdin is the command's input, staged as a string by the pipeline.
	Stdin string
	Env   EnvView
	Cwd   string
	FS    vfs.FS
	Shell Shell
	// Registry is the registry the command was resolved from, for
	// introspection commands.
	Registry *Registry
}

// EnvView is a read-only view of the environment.
type EnvView interface {
	Get(name string) (string, bool)
	GetDefault(name, def string) string
	Names() []string
}

// Shell is the mutation surface handlers get on the owning shell.
type Shell interface {
	SetEnv(name, value string)
	UnsetEnv(name string)
	GetEnv(name string) (string, bool)
	SetCwd(path string) error
	GetCwd() string
	Exit(code int)
	SetAlias(name, value string)
	UnsetAlias(name string)
	Aliases() map[string]string
	LastExitCode() int
}

// HandlerFunc runs a command. It must not panic for expected failures;
// panics are caught by the evaluator and converted to exit 1.
type HandlerFunc func(ctx *Context, args Args) int

// Command is a registry entry.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Category    string
	Params      []Param
	// FlagAliases maps alternate option names (long or short) to canonical
	// option names.
	FlagAliases map[string]string
	Hidden      bool
	Run         HandlerFunc
}

// Registry maps command names and aliases to entries.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Register adds cmd under its name and all of its aliases, replacing any
// previous entry with the same name.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		r.aliases[a] = cmd.Name
	}
}

// Get resolves name, trying aliases before command names.
func (r *Registry) Get(name string) (*Command, bool) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Describe is Get under the name introspection commands use.
func (r *Registry) Describe(name string) (*Command, bool) {
	return r.Get(name)
}

// List returns all registered commands sorted by name.
func (r *Registry) List() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// ListVisible returns all registered commands that are not hidden, sorted by
// name.
func (r *Registry) ListVisible() []*Command {
	var cmds []*Command
	for _, cmd := range r.List() {
		if !cmd.Hidden {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
