package diag

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/nicomt/vanilla-shell/pkg/strutil"
)

// Error represents a lex or parse error anchored to a range of source text.
type Error struct {
	Type    string
	Message string
	Context Context
}

var errorHeader = color.New(color.FgRed, color.Bold)

// Error returns a plain text representation of the error, with 1-based line
// and column numbers rather than raw byte offsets.
func (e *Error) Error() string {
	from := PositionAt(e.Context.Source, e.Context.From)
	to := PositionAt(e.Context.Source, e.Context.To)
	return fmt.Sprintf("%s: %s, line %d:%d-%d:%d: %s",
		e.Type, e.Context.Name, from.Line, from.Column, to.Line, to.Column, e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show renders the error with the culprit highlighted, for terminal
// display.
func (e *Error) Show(indent string) string {
	header := strutil.Title(e.Type) + ": " + errorHeader.Sprint(e.Message) + "\n"
	return header + e.Context.ShowCompact(indent+"  ")
}
