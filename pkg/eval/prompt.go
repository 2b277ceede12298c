package eval

import (
	"path"
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/env"
)

// Prompt renders $PS1 with the prompt escapes expanded: \w for the working
// directory with $HOME shortened to ~, \W for its last segment, \u for
// $USER, \h for $HOSTNAME, \$ for a literal dollar and \n for a newline.
func (sh *Shell) Prompt() string {
	ps1 := sh.env.GetDefault(env.PS1, "$ ")
	var sb strings.Builder
	for i := 0; i < len(ps1); i++ {
		if ps1[i] != '\\' || i+1 >= len(ps1) {
			sb.WriteByte(ps1[i])
			continue
		}
		i++
		switch ps1[i] {
		case 'w':
			sb.WriteString(sh.tildeCwd())
		case 'W':
			sb.WriteString(path.Base(sh.cwd))
		case 'u':
			sb.WriteString(sh.env.GetDefault(env.USER, ""))
		case 'h':
			sb.WriteString(sh.env.GetDefault(env.HOSTNAME, ""))
		case '$':
			sb.WriteByte('$')
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(ps1[i])
		}
	}
	return sb.String()
}

// tildeCwd shortens a $HOME prefix of the working directory to ~.
func (sh *Shell) tildeCwd() string {
	home, ok := sh.env.Get(env.HOME)
	if !ok || home == "" {
		return sh.cwd
	}
	if sh.cwd == home {
		return "~"
	}
	if strings.HasPrefix(sh.cwd, home+"/") {
		return "~" + sh.cwd[len(home):]
	}
	return sh.cwd
}
