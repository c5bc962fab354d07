package parser

import (
	"github.com/ahrtr/gocontainer/set"

	"github.com/you-not-fish/numc/internal/syntax"
)

// Synchronizing sets for error recovery. Every set contains EOF, so a
// recovery scan always terminates.
var (
	// end of a statement or of a declaration that could not be parsed
	stmtSync = kindSet(syntax.Semi, syntax.Return, syntax.Rbrace, syntax.EOF, syntax.Int, syntax.Double)

	// end of a return statement
	returnSync = kindSet(syntax.Semi, syntax.Rbrace, syntax.EOF)

	// tokens that end a run of invalid separators in a variable list
	listStop = kindSet(syntax.Comma, syntax.Semi, syntax.EOF, syntax.Int, syntax.Double,
		syntax.Return, syntax.Rbrace, syntax.Identifier)
)

func kindSet(kinds ...syntax.Kind) set.Interface {
	s := set.New()
	for _, k := range kinds {
		s.Add(k)
	}
	return s
}

// skipTo advances to the first token in stop without consuming it.
func (p *Parser) skipTo(stop set.Interface) {
	for !stop.Contains(p.tok.Kind()) {
		p.next()
	}
}

// skipStatement advances to the next statement synchronizing token,
// reporting each stray ')' on the way. A terminating ';' is consumed.
func (p *Parser) skipStatement() {
	for !stmtSync.Contains(p.tok.Kind()) {
		if p.tok.Is(syntax.Rparen) {
			p.error(msgExtraRparen)
		}
		p.next()
	}
	p.got(syntax.Semi)
}
