package eval

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nicomt/vanilla-shell/pkg/glob"
	"github.com/nicomt/vanilla-shell/pkg/parse"
	"github.com/nicomt/vanilla-shell/pkg/strutil"
)

// expand turns a word into a string. ok is false when an expansion error was
// reported (currently only ${name:?…} on an unset or null parameter); the
// result is still usable and empty at the failing site.
//
// Within a list, children expand left to right so that side-effecting
// expansions observe a deterministic order.
func (sh *Shell) expand(w parse.WordNode) (s string, ok bool) {
	switch w := w.(type) {
	case nil:
		return "", true
	case *parse.StringWord:
		return w.Value, true
	case *parse.ListWord:
		var sb strings.Builder
		ok = true
		for _, child := range w.Children {
			s, childOK := sh.expand(child)
			sb.WriteString(s)
			ok = ok && childOK
		}
		return sb.String(), ok
	case *parse.ParamWord:
		return sh.expandParam(w)
	case *parse.CommandWord:
		return sh.expandCommandSub(w), true
	case *parse.ArithWord:
		body, ok := sh.expand(w.Body)
		return sh.expandArith(body), ok
	}
	return "", true
}

// resolveParam resolves a parameter name to its value. Special names resolve
// to constants or shell state; everything else is an environment lookup.
func (sh *Shell) resolveParam(name string) (value string, isSet bool) {
	switch name {
	case "?":
		return strconv.Itoa(sh.lastExit), true
	case "$", "!":
		return "1", true
	case "-":
		return "", true
	case "#":
		return "0", true
	case "*", "@":
		return "", true
	case "0":
		return sh.name, true
	}
	return sh.env.Get(name)
}

func (sh *Shell) expandParam(w *parse.ParamWord) (string, bool) {
	v, isSet := sh.resolveParam(w.Name)
	isNull := w.Colon && v == ""
	expandArg := func() (string, bool) {
		return sh.expand(w.Arg)
	}

	switch w.Op {
	case parse.OpNone:
		return v, true
	case parse.OpMinus:
		if !isSet || isNull {
			return expandArg()
		}
		return v, true
	case parse.OpEqual:
		if !isSet || isNull {
			val, ok := expandArg()
			sh.env.Set(w.Name, val)
			return val, ok
		}
		return v, true
	case parse.OpQMark:
		if !isSet || isNull {
			msg, _ := expandArg()
			if msg == "" {
				msg = "parameter not set"
			}
			sh.stderr(sh.name + ": " + w.Name + ": " + msg + "\n")
			return "", false
		}
		return v, true
	case parse.OpPlus:
		if isSet && !isNull {
			return expandArg()
		}
		return "", true
	case parse.OpLength:
		return strconv.Itoa(utf8.RuneCountInString(v)), true
	case parse.OpPercent, parse.OpDPercent:
		pattern, ok := expandArg()
		return glob.StripSuffix(v, pattern, w.Op == parse.OpDPercent), ok
	case parse.OpHash, parse.OpDHash:
		pattern, ok := expandArg()
		return glob.StripPrefix(v, pattern, w.Op == parse.OpDHash), ok
	}
	return v, true
}

// expandCommandSub runs a command substitution with stdout captured into a
// buffer, trimming at most one trailing newline. The pipe buffer is saved
// around the run so a substitution inside a pipeline stage does not steal
// that stage's stdin.
func (sh *Shell) expandCommandSub(w *parse.CommandWord) string {
	if w.Program == nil {
		return ""
	}
	var buf strings.Builder
	savedPipe := sh.pipeBuffer
	savedOut := sh.SetStdout(func(s string) { buf.WriteString(s) })
	sh.pipeBuffer = ""
	defer func() {
		sh.SetStdout(savedOut)
		sh.pipeBuffer = savedPipe
	}()
	sh.evalBody(w.Program.Commands)
	return strutil.ChopTerminator(buf.String(), '\n')
}

var arithName = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

// expandArith evaluates the expanded body of $((…)) as integer arithmetic.
// Remaining $name references are substituted from the environment, the text
// is stripped to the arithmetic character set, and any evaluation failure
// yields "0".
func (sh *Shell) expandArith(body string) string {
	replaced := arithName.ReplaceAllStringFunc(body, func(ref string) string {
		return sh.env.GetDefault(ref[1:], "")
	})
	var sb strings.Builder
	for i := 0; i < len(replaced); i++ {
		switch c := replaced[i]; {
		case c >= '0' && c <= '9',
			c == '+', c == '-', c == '*', c == '/', c == '%',
			c == '(', c == ')', c == ' ':
			sb.WriteByte(c)
		}
	}
	n, err := evalArith(sb.String())
	if err != nil {
		return "0"
	}
	return strconv.FormatInt(n, 10)
}
