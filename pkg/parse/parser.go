package parse

import (
	"fmt"
	"strings"

	"github.com/nicomt/vanilla-shell/pkg/diag"
)

// Parse parses shell source into a Program. name identifies the source in
// diagnostics. The returned error, if not nil, is a *diag.Error.
func Parse(name, src string) (*Program, error) {
	p := &parser{lx: NewLexer(name, src), name: name, src: src}
	return p.parseProgram()
}

// parser is a recursive-descent parser over the token stream, with one token
// of look-ahead provided by the lexer.
type parser struct {
	lx   *Lexer
	name string
	src  string
}

func (p *parser) peek() Token { return p.lx.Peek() }
func (p *parser) next() Token { return p.lx.Next() }

func describeToken(tok Token) string {
	if tok.Kind == EOF {
		return "end of input"
	}
	if tok.Kind == Newline {
		return "newline"
	}
	return fmt.Sprintf("%q", tok.Value)
}

// expectedError reports that the parser wanted expected but found tok.
func (p *parser) expectedError(expected string, tok Token) error {
	return &diag.Error{
		Type:    "parse error",
		Message: fmt.Sprintf("expected %s, got %s", expected, describeToken(tok)),
		Context: *diag.NewContext(p.name, p.src, tok.Range()),
	}
}

// expectWord consumes the next token, which must be a Word with the given
// literal value.
func (p *parser) expectWord(value string) error {
	tok := p.next()
	if tok.Kind != Word || tok.Value != value {
		return p.expectedError(fmt.Sprintf("%q", value), tok)
	}
	return nil
}

// expectOperator consumes the next token, which must be the given operator.
func (p *parser) expectOperator(value string) error {
	tok := p.next()
	if tok.Kind != Operator || tok.Value != value {
		return p.expectedError(fmt.Sprintf("%q", value), tok)
	}
	return nil
}

// skipNewlines skips any run of newline tokens.
func (p *parser) skipNewlines() {
	for p.peek().Kind == Newline {
		p.next()
	}
}

// skipSeps skips newlines and semicolons.
func (p *parser) skipSeps() {
	for {
		tok := p.peek()
		if tok.Kind == Newline || tok.Kind == Operator && tok.Value == ";" {
			p.next()
			continue
		}
		return
	}
}

// isCloser reports whether tok closes a compound list: a closing brace or
// parenthesis, a case separator, or one of the closing reserved words.
func isCloser(tok Token) bool {
	switch tok.Kind {
	case Operator:
		return tok.Value == "}" || tok.Value == ")" || tok.Value == ";;"
	case Word:
		switch tok.Value {
		case "then", "else", "elif", "fi", "do", "done", "esac":
			return true
		}
	}
	return false
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{}
	p.skipSeps()
	for p.peek().Kind != EOF {
		cl, err := p.parseCommandList()
		if err != nil {
			return nil, err
		}
		prog.Commands = append(prog.Commands, cl)

		tok := p.peek()
		switch {
		case cl.Async:
			// A trailing '&' already separates statements.
			p.skipSeps()
		case tok.Kind == Newline || tok.Kind == Operator && tok.Value == ";":
			p.next()
			p.skipSeps()
		case tok.Kind == EOF:
		default:
			return nil, p.expectedError("';' or newline", tok)
		}
	}
	return prog, nil
}

func (p *parser) parseCommandList() (*CommandList, error) {
	andOr, err := p.parseAndOr()
	if err != nil {
		return nil, err
	}
	cl := &CommandList{AndOr: andOr}
	if tok := p.peek(); tok.Kind == Operator && tok.Value == "&" {
		p.next()
		cl.Async = true
	}
	return cl, nil
}

func (p *parser) parseAndOr() (*AndOr, error) {
	first, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	andOr := &AndOr{First: first}
	for {
		tok := p.peek()
		if tok.Kind != Operator || tok.Value != "&&" && tok.Value != "||" {
			return andOr, nil
		}
		p.next()
		p.skipNewlines()
		pipeline, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		andOr.Rest = append(andOr.Rest, AndOrItem{Or: tok.Value == "||", Pipeline: pipeline})
	}
}

func (p *parser) parsePipeline() (*Pipeline, error) {
	pipeline := &Pipeline{}
	if tok := p.peek(); tok.Kind == Word && tok.Value == "!" {
		p.next()
		pipeline.Negated = true
	}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, p.expectedError("command", p.peek())
	}
	pipeline.Commands = append(pipeline.Commands, cmd)
	for {
		tok := p.peek()
		if tok.Kind != Operator || tok.Value != "|" {
			return pipeline, nil
		}
		p.next()
		p.skipNewlines()
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if cmd == nil {
			return nil, p.expectedError("command after '|'", p.peek())
		}
		pipeline.Commands = append(pipeline.Commands, cmd)
	}
}

// parseCommand parses a compound or simple command. It returns nil with no
// error when the next token cannot start a command.
func (p *parser) parseCommand() (CommandNode, error) {
	tok := p.peek()
	switch tok.Kind {
	case Operator:
		switch tok.Value {
		case "{":
			return p.parseBraceGroup()
		case "(":
			return p.parseSubshell()
		}
	case Word:
		switch tok.Value {
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while", "until":
			return p.parseLoop()
		case "case":
			return p.parseCase()
		}
	}
	return p.parseSimple()
}

func (p *parser) parseBraceGroup() (CommandNode, error) {
	p.next() // '{'
	p.skipNewlines()
	body, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("}"); err != nil {
		return nil, err
	}
	return &BraceGroup{Body: body}, nil
}

func (p *parser) parseSubshell() (CommandNode, error) {
	p.next() // '('
	p.skipNewlines()
	body, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	return &Subshell{Body: body}, nil
}

func (p *parser) parseIf() (CommandNode, error) {
	p.next() // 'if'
	return p.parseIfTail()
}

// parseIfTail parses from the condition onwards; elif re-enters here with the
// result nested in the Else clause.
func (p *parser) parseIfTail() (CommandNode, error) {
	p.skipNewlines()
	cond, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("then"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	then, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	node := &If{Cond: cond, Then: then}

	tok := p.peek()
	switch {
	case tok.Kind == Word && tok.Value == "elif":
		p.next()
		nested, err := p.parseIfTail()
		if err != nil {
			return nil, err
		}
		node.Else = []*CommandList{{AndOr: &AndOr{First: &Pipeline{Commands: []CommandNode{nested}}}}}
		return node, nil
	case tok.Kind == Word && tok.Value == "else":
		p.next()
		p.skipNewlines()
		elseBody, err := p.parseCompoundList()
		if err != nil {
			return nil, err
		}
		node.Else = elseBody
	}
	if err := p.expectWord("fi"); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) parseFor() (CommandNode, error) {
	p.next() // 'for'
	tok := p.next()
	if tok.Kind != Word || !isParamName(tok.Value) {
		return nil, p.expectedError("variable name", tok)
	}
	node := &For{Name: tok.Value}
	p.skipNewlines()

	if t := p.peek(); t.Kind == Word && t.Value == "in" {
		p.next()
		node.HasIn = true
		for p.peek().Kind == Word {
			w, err := p.parseWordToken(p.next())
			if err != nil {
				return nil, err
			}
			node.Words = append(node.Words, w)
		}
	}
	p.skipSeps()
	if err := p.expectWord("do"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("done"); err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *parser) parseLoop() (CommandNode, error) {
	tok := p.next() // 'while' or 'until'
	node := &Loop{Until: tok.Value == "until"}
	p.skipNewlines()
	cond, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("do"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("done"); err != nil {
		return nil, err
	}
	node.Cond = cond
	node.Body = body
	return node, nil
}

func (p *parser) parseCase() (CommandNode, error) {
	p.next() // 'case'
	tok := p.next()
	if tok.Kind != Word {
		return nil, p.expectedError("word", tok)
	}
	word, err := p.parseWordToken(tok)
	if err != nil {
		return nil, err
	}
	node := &Case{Word: word}
	p.skipNewlines()
	if err := p.expectWord("in"); err != nil {
		return nil, err
	}
	p.skipNewlines()

	for {
		tok := p.peek()
		if tok.Kind == Word && tok.Value == "esac" {
			p.next()
			return node, nil
		}
		if tok.Kind == EOF {
			return nil, p.expectedError("'esac'", tok)
		}
		item, err := p.parseCaseItem()
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, item)
	}
}

func (p *parser) parseCaseItem() (*CaseItem, error) {
	if tok := p.peek(); tok.Kind == Operator && tok.Value == "(" {
		p.next()
	}
	item := &CaseItem{}
	for {
		tok := p.next()
		if tok.Kind != Word {
			return nil, p.expectedError("pattern", tok)
		}
		pattern, err := p.parseWordToken(tok)
		if err != nil {
			return nil, err
		}
		item.Patterns = append(item.Patterns, pattern)
		if t := p.peek(); t.Kind == Operator && t.Value == "|" {
			p.next()
			continue
		}
		break
	}
	if err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseCompoundList()
	if err != nil {
		return nil, err
	}
	item.Body = body
	if tok := p.peek(); tok.Kind == Operator && tok.Value == ";;" {
		p.next()
		p.skipNewlines()
	}
	return item, nil
}

// parseCompoundList parses command lists until a closer token or EOF. The
// closer is left unconsumed.
func (p *parser) parseCompoundList() ([]*CommandList, error) {
	var lists []*CommandList
	p.skipSeps()
	for {
		tok := p.peek()
		if tok.Kind == EOF || isCloser(tok) {
			return lists, nil
		}
		cl, err := p.parseCommandList()
		if err != nil {
			return nil, err
		}
		lists = append(lists, cl)

		tok = p.peek()
		switch {
		case cl.Async:
			p.skipSeps()
		case tok.Kind == Newline || tok.Kind == Operator && tok.Value == ";":
			p.next()
			p.skipSeps()
		case tok.Kind == EOF || isCloser(tok):
			return lists, nil
		default:
			return nil, p.expectedError("';' or newline", tok)
		}
	}
}

// isAssignmentWord reports whether raw has the shape name=value with a valid
// identifier before the first '='.
func isAssignmentWord(raw string) bool {
	i := strings.IndexByte(raw, '=')
	if i <= 0 {
		return false
	}
	return isParamName(raw[:i])
}

func (p *parser) parseSimple() (CommandNode, error) {
	cmd := &Simple{}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == IoNumber,
			tok.Kind == Operator && redirOps[tok.Value]:
			redir, err := p.parseRedirect()
			if err != nil {
				return nil, err
			}
			cmd.Redirects = append(cmd.Redirects, redir)
		case tok.Kind == Word:
			if cmd.Name == nil && isAssignmentWord(tok.Value) {
				p.next()
				assign, err := p.parseAssignment(tok)
				if err != nil {
					return nil, err
				}
				cmd.Assignments = append(cmd.Assignments, assign)
				continue
			}
			p.next()
			word, err := p.parseWordToken(tok)
			if err != nil {
				return nil, err
			}
			if cmd.Name == nil {
				cmd.Name = word
				// name() body defines a function.
				if len(cmd.Assignments) == 0 && len(cmd.Redirects) == 0 && isParamName(tok.Value) {
					if t := p.peek(); t.Kind == Operator && t.Value == "(" {
						return p.parseFunctionDef(tok.Value)
					}
				}
			} else {
				cmd.Args = append(cmd.Args, word)
			}
		default:
			if cmd.Name == nil && len(cmd.Args) == 0 &&
				len(cmd.Redirects) == 0 && len(cmd.Assignments) == 0 {
				return nil, nil
			}
			return cmd, nil
		}
	}
}

func (p *parser) parseFunctionDef(name string) (CommandNode, error) {
	p.next() // '('
	if err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, p.expectedError("function body", p.peek())
	}
	return &FunctionDef{Name: name, Body: body}, nil
}

func (p *parser) parseAssignment(tok Token) (*Assignment, error) {
	i := strings.IndexByte(tok.Value, '=')
	value, err := ParseWord(p.name, p.src, tok.Pos.Offset+i+1, tok.Value[i+1:])
	if err != nil {
		return nil, err
	}
	return &Assignment{Name: tok.Value[:i], Value: value}, nil
}

func (p *parser) parseRedirect() (*IoRedirect, error) {
	redir := &IoRedirect{IoNumber: -1}
	if tok := p.peek(); tok.Kind == IoNumber {
		p.next()
		redir.IoNumber = int(tok.Value[0] - '0')
	}
	tok := p.next()
	if tok.Kind != Operator || !redirOps[tok.Value] {
		return nil, p.expectedError("redirection operator", tok)
	}
	redir.Op = RedirOp(tok.Value)
	nameTok := p.next()
	if nameTok.Kind != Word {
		return nil, p.expectedError("redirection target", nameTok)
	}
	name, err := p.parseWordToken(nameTok)
	if err != nil {
		return nil, err
	}
	redir.Name = name
	return redir, nil
}

func (p *parser) parseWordToken(tok Token) (WordNode, error) {
	return ParseWord(p.name, p.src, tok.Pos.Offset, tok.Value)
}
