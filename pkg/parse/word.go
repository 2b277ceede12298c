package parse

import (
	"fmt"
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/diag"
)

// ParseWord reconstructs the word tree for the raw text of a Word token. name
// and src identify the enclosing source, and base is the byte offset of raw
// within src, used to anchor diagnostics.
//
// Command substitution bodies are parsed eagerly, so expansion never has to
// re-scan raw text.
func ParseWord(name, src string, base int, raw string) (WordNode, error) {
	if !strings.ContainsAny(raw, "$`\"'") {
		return &StringWord{Value: raw, SplitFields: true}, nil
	}
	w := &wordParser{name: name, src: src, base: base, raw: raw}
	return w.parse()
}

type wordParser struct {
	name string
	src  string
	base int
	raw  string
	pos  int
}

func (w *wordParser) errorf(from, to int, format string, args ...any) error {
	return &diag.Error{
		Type:    "parse error",
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(w.name, w.src,
			diag.Ranging{From: w.base + from, To: w.base + to}),
	}
}

func (w *wordParser) parse() (WordNode, error) {
	var children []WordNode
	var buf strings.Builder
	inDQ := false
	dqStart := -1 // index into children when the current "…" region opened
	wholeDQ := len(w.raw) > 0 && w.raw[0] == '"'

	flush := func() {
		if buf.Len() > 0 {
			children = append(children, &StringWord{
				Value:       buf.String(),
				SplitFields: !inDQ,
			})
			buf.Reset()
		}
	}

	for w.pos < len(w.raw) {
		c := w.raw[w.pos]
		switch {
		case c == '\'' && !inDQ:
			flush()
			w.pos++
			start := w.pos
			for w.pos < len(w.raw) && w.raw[w.pos] != '\'' {
				w.pos++
			}
			children = append(children, &StringWord{
				Value:        w.raw[start:w.pos],
				SingleQuoted: true,
			})
			if w.pos < len(w.raw) {
				w.pos++ // closing quote
			}
		case c == '"':
			flush()
			if inDQ {
				if dqStart == len(children) {
					// Empty "" still contributes an empty chunk.
					children = append(children, &StringWord{})
				}
				inDQ = false
				dqStart = -1
			} else {
				inDQ = true
				dqStart = len(children)
			}
			w.pos++
			if wholeDQ && !inDQ && w.pos != len(w.raw) {
				wholeDQ = false
			}
		case c == '\\':
			if w.pos+1 >= len(w.raw) {
				buf.WriteByte('\\')
				w.pos++
				break
			}
			next := w.raw[w.pos+1]
			switch {
			case next == '\n':
				// Line continuation disappears entirely.
			case inDQ:
				buf.WriteByte('\\')
				buf.WriteByte(next)
			default:
				buf.WriteByte(next)
			}
			w.pos += 2
		case c == '$':
			flush()
			child, err := w.parseDollar()
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, child)
			} else {
				buf.WriteByte('$')
			}
		case c == '`':
			flush()
			child, err := w.parseBackquote()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		default:
			buf.WriteByte(c)
			w.pos++
		}
	}
	flush()

	if len(children) == 1 {
		return children[0], nil
	}
	return &ListWord{Children: children, DoubleQuoted: wholeDQ && !inDQ}, nil
}

// parseDollar parses a $-construct starting at w.pos (on the '$'). It returns
// nil with no error for a literal '$'.
func (w *wordParser) parseDollar() (WordNode, error) {
	start := w.pos
	w.pos++ // '$'
	rest := w.raw[w.pos:]
	switch {
	case strings.HasPrefix(rest, "(("):
		inner, consumed := balanceDoubleParen(rest)
		w.pos += consumed
		body, err := ParseWord(w.name, w.src, w.base+start+3, inner)
		if err != nil {
			return nil, err
		}
		return &ArithWord{Body: body}, nil
	case strings.HasPrefix(rest, "("):
		inner, consumed := balanceParen(rest)
		w.pos += consumed
		prog, err := Parse(w.name, inner)
		if err != nil {
			return nil, err
		}
		return &CommandWord{Program: prog}, nil
	case strings.HasPrefix(rest, "{"):
		inner, consumed := balanceBrace(rest)
		w.pos += consumed
		return w.parseParam(inner, start)
	case rest != "" && isSpecialParam(rest[0]):
		w.pos++
		return &ParamWord{Name: string(rest[0])}, nil
	case rest != "" && isNameChar(rest[0]):
		n := 0
		for n < len(rest) && isNameChar(rest[n]) {
			n++
		}
		w.pos += n
		return &ParamWord{Name: rest[:n]}, nil
	}
	return nil, nil
}

// parseParam parses the inner text of ${…}. start is the offset of the '$'
// within the raw word, for diagnostics.
func (w *wordParser) parseParam(inner string, start int) (WordNode, error) {
	bad := func() error {
		return w.errorf(start, start+2+len(inner)+1, "bad substitution: ${%s}", inner)
	}
	if inner == "" {
		return nil, bad()
	}

	// ${#} is the special parameter #; ${#name} is the length operator.
	if inner[0] == '#' && len(inner) > 1 {
		rest := inner[1:]
		if isParamName(rest) {
			return &ParamWord{Name: rest, Op: OpLength}, nil
		}
	}

	// Parse the parameter name.
	var name string
	switch {
	case isSpecialParam(inner[0]) && (len(inner) == 1 || !isNameChar(inner[0])):
		name = inner[:1]
	default:
		n := 0
		for n < len(inner) && isNameChar(inner[n]) {
			n++
		}
		if n == 0 {
			return nil, bad()
		}
		name = inner[:n]
	}
	rest := inner[len(name):]
	if rest == "" {
		return &ParamWord{Name: name}, nil
	}

	colon := false
	if rest[0] == ':' {
		colon = true
		rest = rest[1:]
		if rest == "" {
			return nil, bad()
		}
	}

	var op ParamOp
	switch rest[0] {
	case '-':
		op = OpMinus
		rest = rest[1:]
	case '=':
		op = OpEqual
		rest = rest[1:]
	case '?':
		op = OpQMark
		rest = rest[1:]
	case '+':
		op = OpPlus
		rest = rest[1:]
	case '%':
		if colon {
			return nil, bad()
		}
		if strings.HasPrefix(rest, "%%") {
			op = OpDPercent
			rest = rest[2:]
		} else {
			op = OpPercent
			rest = rest[1:]
		}
	case '#':
		if colon {
			return nil, bad()
		}
		if strings.HasPrefix(rest, "##") {
			op = OpDHash
			rest = rest[2:]
		} else {
			op = OpHash
			rest = rest[1:]
		}
	default:
		return nil, bad()
	}

	arg, err := ParseWord(w.name, w.src, w.base+start+2+len(inner)-len(rest), rest)
	if err != nil {
		return nil, err
	}
	return &ParamWord{Name: name, Op: op, Colon: colon, Arg: arg}, nil
}

// parseBackquote parses `…` starting at w.pos (on the backtick). Backslash
// escapes a backtick, backslash or dollar; any other escape is kept verbatim.
func (w *wordParser) parseBackquote() (WordNode, error) {
	w.pos++ // opening backtick
	var body strings.Builder
	for w.pos < len(w.raw) {
		c := w.raw[w.pos]
		switch c {
		case '`':
			w.pos++
			prog, err := Parse(w.name, body.String())
			if err != nil {
				return nil, err
			}
			return &CommandWord{Program: prog, BackQuoted: true}, nil
		case '\\':
			if w.pos+1 < len(w.raw) {
				next := w.raw[w.pos+1]
				if next == '`' || next == '\\' || next == '$' {
					body.WriteByte(next)
				} else {
					body.WriteByte('\\')
					body.WriteByte(next)
				}
				w.pos += 2
			} else {
				body.WriteByte('\\')
				w.pos++
			}
		default:
			body.WriteByte(c)
			w.pos++
		}
	}
	// Unterminated backquote: end of input closes it.
	prog, err := Parse(w.name, body.String())
	if err != nil {
		return nil, err
	}
	return &CommandWord{Program: prog, BackQuoted: true}, nil
}

// isParamName reports whether s is a valid variable name.
func isParamName(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}

// balanceDoubleParen scans an arithmetic expansion. s starts at the "((". It
// returns the expression text and the number of bytes of s consumed,
// including the delimiters. End of input closes an unterminated construct.
func balanceDoubleParen(s string) (inner string, consumed int) {
	depth := 2
	i := 2
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end := i
				if end > 2 && s[end-1] == ')' {
					end--
				}
				return s[2:end], i + 1
			}
		}
		i++
	}
	return s[2:], len(s)
}

// balanceParen scans a command substitution, honoring quoting. s starts at
// the "(". It returns the body text and the number of bytes of s consumed,
// including the delimiters.
func balanceParen(s string) (inner string, consumed int) {
	depth := 1
	i := 1
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return s[1 : i-1], i
			}
		case '\'':
			i = skipSingleQuote(s, i)
		case '"':
			i = skipDoubleQuote(s, i)
		case '`':
			i = skipBackquote(s, i)
		case '\\':
			i += 2
		default:
			i++
		}
	}
	if i > len(s) {
		i = len(s)
	}
	return s[1:], len(s)
}

// balanceBrace scans a parameter expansion. s starts at the "{". It returns
// the body text and the number of bytes of s consumed, including the
// delimiters.
func balanceBrace(s string) (inner string, consumed int) {
	depth := 1
	i := 1
	for i < len(s) {
		switch s[i] {
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return s[1 : i-1], i
			}
		case '\'':
			i = skipSingleQuote(s, i)
		case '"':
			i = skipDoubleQuote(s, i)
		case '\\':
			i += 2
		default:
			i++
		}
	}
	if i > len(s) {
		i = len(s)
	}
	return s[1:], len(s)
}

func skipSingleQuote(s string, i int) int {
	i++ // opening quote
	for i < len(s) && s[i] != '\'' {
		i++
	}
	if i < len(s) {
		i++
	}
	return i
}

func skipDoubleQuote(s string, i int) int {
	i++ // opening quote
	for i < len(s) {
		switch s[i] {
		case '"':
			return i + 1
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return i
}

func skipBackquote(s string, i int) int {
	i++ // opening backtick
	for i < len(s) {
		switch s[i] {
		case '`':
			return i + 1
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return i
}
