package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/nicomt/vanilla-shell/pkg/diag"
)

// Lexer turns shell source text into a stream of tokens, terminated by an
// EOF token. It offers one token of look-ahead via Peek.
//
// The lexer is lenient: an unterminated quote or expansion is closed by end
// of input instead of producing an error.
type Lexer struct {
	name string
	src  string
	pos  int

	peeked *Token

	// Cache for translating byte offsets to line/column; token start offsets
	// are non-decreasing, so the cache makes position tracking linear.
	cacheOffset int
	cacheLine   int
	cacheCol    int
}

// NewLexer returns a Lexer over src. name identifies the source in
// diagnostics.
func NewLexer(name, src string) *Lexer {
	return &Lexer{name: name, src: src, cacheLine: 1, cacheCol: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	if l.peeked == nil {
		tok := l.lex()
		l.peeked = &tok
	}
	return *l.peeked
}

// Next consumes and returns the next token.
func (l *Lexer) Next() Token {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok
	}
	return l.lex()
}

// Tokens drains the lexer, returning all remaining tokens including the
// terminating EOF token.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func (l *Lexer) lex() Token {
	l.skipBlanks()
	start := l.pos
	pos := l.positionAt(start)

	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Pos: pos}
	}

	c := l.src[l.pos]

	if c == '\n' {
		l.pos++
		return Token{Kind: Newline, Value: "\n", Pos: pos}
	}

	// A single digit immediately followed by "<" or ">" is an IO number; only
	// the digit is consumed.
	if c >= '0' && c <= '9' && l.pos+1 < len(l.src) &&
		(l.src[l.pos+1] == '<' || l.src[l.pos+1] == '>') {
		l.pos++
		return Token{Kind: IoNumber, Value: l.src[start:l.pos], Pos: pos}
	}

	for _, op := range operators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			return Token{Kind: Operator, Value: op, Pos: pos}
		}
	}

	l.readWord()
	return Token{Kind: Word, Value: l.src[start:l.pos], Pos: pos}
}

// skipBlanks skips blanks, line continuations and comments. Newlines are not
// skipped; they become tokens.
func (l *Lexer) skipBlanks() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t':
			l.pos++
		case c == '\\' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n':
			l.pos += 2
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// isWordTerminator reports whether c ends an unquoted word. Quote characters
// and '$' are not terminators; they are handled by the sub-readers.
func isWordTerminator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '|', '&', ';', '<', '>', '(', ')':
		return true
	}
	return false
}

func (l *Lexer) readWord() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isWordTerminator(c):
			return
		case c == '\'':
			l.readSingleQuote()
		case c == '"':
			l.readDoubleQuote()
		case c == '\\':
			l.pos++
			if l.pos < len(l.src) {
				l.pos++
			}
		case c == '$':
			l.readDollar()
		case c == '`':
			l.readBacktick()
		default:
			l.pos++
		}
	}
}

// readSingleQuote consumes '…', including the quotes. Nothing inside is
// interpreted.
func (l *Lexer) readSingleQuote() {
	l.pos++ // opening quote
	for l.pos < len(l.src) && l.src[l.pos] != '\'' {
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++ // closing quote
	}
}

// readDoubleQuote consumes "…", including the quotes. Backslash escapes one
// character; $ and ` expansions still apply inside.
func (l *Lexer) readDoubleQuote() {
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '"':
			l.pos++
			return
		case '\\':
			l.pos++
			if l.pos < len(l.src) {
				l.pos++
			}
		case '$':
			l.readDollar()
		case '`':
			l.readBacktick()
		default:
			l.pos++
		}
	}
}

// isSpecialParam reports whether c is a single-character parameter: $@ $* $#
// $? $- $$ $! and the positional digits.
func isSpecialParam(c byte) bool {
	switch c {
	case '@', '*', '#', '?', '-', '$', '!':
		return true
	}
	return c >= '0' && c <= '9'
}

func isNameChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// readDollar consumes a $-introduced expansion: $((…)), $(…), ${…}, a special
// parameter, or a name. A $ followed by none of these is left as a literal.
func (l *Lexer) readDollar() {
	l.pos++ // '$'
	rest := l.src[l.pos:]
	switch {
	case strings.HasPrefix(rest, "(("):
		l.pos += 2
		depth := 2
		for l.pos < len(l.src) && depth > 0 {
			switch l.src[l.pos] {
			case '(':
				depth++
			case ')':
				depth--
			}
			l.pos++
		}
	case strings.HasPrefix(rest, "("):
		l.pos++
		depth := 1
		for l.pos < len(l.src) && depth > 0 {
			switch l.src[l.pos] {
			case '(':
				depth++
				l.pos++
			case ')':
				depth--
				l.pos++
			case '\'':
				l.readSingleQuote()
			case '"':
				l.readDoubleQuote()
			case '`':
				l.readBacktick()
			case '\\':
				l.pos++
				if l.pos < len(l.src) {
					l.pos++
				}
			default:
				l.pos++
			}
		}
	case strings.HasPrefix(rest, "{"):
		l.pos++
		depth := 1
		for l.pos < len(l.src) && depth > 0 {
			switch l.src[l.pos] {
			case '{':
				depth++
				l.pos++
			case '}':
				depth--
				l.pos++
			case '\'':
				l.readSingleQuote()
			case '"':
				l.readDoubleQuote()
			case '\\':
				l.pos++
				if l.pos < len(l.src) {
					l.pos++
				}
			default:
				l.pos++
			}
		}
	case rest != "" && isSpecialParam(rest[0]):
		l.pos++
	case rest != "" && isNameChar(rest[0]):
		for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
			l.pos++
		}
	}
}

// readBacktick consumes `…`, backslash escaping one character.
func (l *Lexer) readBacktick() {
	l.pos++ // opening backtick
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '`':
			l.pos++
			return
		case '\\':
			l.pos++
			if l.pos < len(l.src) {
				l.pos++
			}
		default:
			l.pos++
		}
	}
}

// positionAt converts a byte offset into a Position, advancing the cached
// line/column counters.
func (l *Lexer) positionAt(offset int) diag.Position {
	if offset < l.cacheOffset {
		l.cacheOffset, l.cacheLine, l.cacheCol = 0, 1, 1
	}
	for i := l.cacheOffset; i < offset && i < len(l.src); {
		r, size := utf8.DecodeRuneInString(l.src[i:])
		if r == '\n' {
			l.cacheLine++
			l.cacheCol = 1
		} else {
			l.cacheCol++
		}
		i += size
		l.cacheOffset = i
	}
	if l.cacheOffset < offset {
		l.cacheOffset = offset
	}
	return diag.Pos(offset, l.cacheLine, l.cacheCol)
}
