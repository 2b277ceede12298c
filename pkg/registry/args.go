package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Args is the result of parsing a command's argument vector against its
// schema.
type Args struct {
	// Options maps option names to values of the declared types: string,
	// bool, int64 or []string.
	Options map[string]any
	// Positional collects everything that is not an option.
	Positional []string
}

// Bool returns the named boolean option, false if absent.
func (a Args) Bool(name string) bool {
	v, _ := a.Options[name].(bool)
	return v
}

// String returns the named string option, "" if absent.
func (a Args) String(name string) string {
	v, _ := a.Options[name].(string)
	return v
}

// Number returns the named numeric option, 0 if absent.
func (a Args) Number(name string) int64 {
	v, _ := a.Options[name].(int64)
	return v
}

// Array returns the named array option, nil if absent.
func (a Args) Array(name string) []string {
	v, _ := a.Options[name].([]string)
	return v
}

func (cmd *Command) param(name string) *Param {
	for i := range cmd.Params {
		if cmd.Params[i].Name == name {
			return &cmd.Params[i]
		}
	}
	return nil
}

func (cmd *Command) canonicalName(name string) string {
	if canonical, ok := cmd.FlagAliases[name]; ok {
		return canonical
	}
	return name
}

// ParseArgs parses argv left to right per the registry's flag rules, applies
// defaults and validates against the schema. A non-nil error corresponds to
// exit code 2.
func (cmd *Command) ParseArgs(argv []string) (Args, error) {
	args := Args{Options: make(map[string]any)}

	set := func(name, raw string) error {
		p := cmd.param(name)
		if p == nil {
			args.Options[name] = raw
			return nil
		}
		switch p.Type {
		case String:
			args.Options[name] = raw
		case Bool:
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("option --%s: invalid boolean %q", name, raw)
			}
			args.Options[name] = v
		case Number:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("option --%s: invalid number %q", name, raw)
			}
			args.Options[name] = v
		case Array:
			prev, _ := args.Options[name].([]string)
			args.Options[name] = append(prev, raw)
		}
		return nil
	}

	// applyLong handles an option already stripped of its dashes, with raw
	// value still attached as name=value when present. consume fetches the
	// next argument.
	applyLong := func(name string, consume func() (string, bool)) error {
		if i := strings.IndexByte(name, '='); i >= 0 {
			return set(cmd.canonicalName(name[:i]), name[i+1:])
		}
		name = cmd.canonicalName(name)
		p := cmd.param(name)
		if p == nil || p.Type == Bool {
			args.Options[name] = true
			return nil
		}
		raw, ok := consume()
		if !ok {
			return fmt.Errorf("option --%s requires a value", name)
		}
		return set(name, raw)
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		consume := func() (string, bool) {
			if i+1 >= len(argv) {
				return "", false
			}
			i++
			return argv[i], true
		}
		switch {
		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			if err := applyLong(arg[2:], consume); err != nil {
				return args, err
			}
		case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
			short := arg[1:]
			if canonical, ok := cmd.FlagAliases[short]; ok {
				if err := applyLong(canonical, consume); err != nil {
					return args, err
				}
				continue
			}
			if p := cmd.shortParam(arg[1]); p != nil {
				if err := applyLong(p.Name, consume); err != nil {
					return args, err
				}
				continue
			}
			args.Options[short] = true
		default:
			args.Positional = append(args.Positional, arg)
		}
	}

	for _, p := range cmd.Params {
		if _, ok := args.Options[p.Name]; ok {
			continue
		}
		if p.Default != nil {
			args.Options[p.Name] = p.Default
			continue
		}
		if p.Required {
			return args, fmt.Errorf("missing required option --%s", p.Name)
		}
	}
	return args, nil
}

func (cmd *Command) shortParam(short byte) *Param {
	for i := range cmd.Params {
		if cmd.Params[i].Short == short {
			return &cmd.Params[i]
		}
	}
	return nil
}
