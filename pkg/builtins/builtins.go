// Package builtins provides a set of ready-made registry commands that
// exercise the shell's registry and filesystem capability. They are sample
// plugins: the core runs fine without them, and hosts are free to register
// their own command set instead.
package builtins

import "github.com/nicomt/vanilla-shell/pkg/registry"

// RegisterAll installs every builtin into r.
func RegisterAll(r *registry.Registry) {
	for _, cmd := range []*registry.Command{
		echoCmd(),
		catCmd(),
		cdCmd(),
		pwdCmd(),
		exitCmd(),
		trueCmd(),
		falseCmd(),
		testCmd(),
		exportCmd(),
		unsetCmd(),
		aliasCmd(),
		unaliasCmd(),
		typeCmd(),
		mkdirCmd(),
		lsCmd(),
		rmCmd(),
		cpCmd(),
		mvCmd(),
		realpathCmd(),
		helpCmd(),
		wcCmd(),
		awkCmd(),
	} {
		r.Register(cmd)
	}
}
