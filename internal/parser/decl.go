package parser

import "github.com/you-not-fish/numc/internal/syntax"

// Descriptions = { Descr } .
//
// Besides regular declarations this accepts two broken forms: a variable
// list without a type (an identifier followed by ',' or ';') and a list
// preceded by an unknown type name (an identifier followed by another
// identifier). Both register their variables without a type.
func (p *Parser) descriptions(n *Node) {
	for {
		switch {
		case p.tok.Kind().IsType():
			p.descr(n)
		case p.tok.Is(syntax.Identifier):
			switch p.peek().Kind() {
			case syntax.Comma, syntax.Semi:
				p.untypedDescr(n)
			case syntax.Identifier:
				p.unknownTypeDescr(n)
			default:
				return
			}
		default:
			return
		}
	}
}

// Descr = Type VarList ";" .
func (p *Parser) descr(n *Node) *Node {
	d := n.add("Descr", "")
	typ := p.tok.Text()
	d.add("Type", typ)
	p.next()

	names, ok := p.varList(d.add("VarList", ""), typ, false)
	if len(names) > 0 {
		p.emitDecl(typ, names)
	}
	if ok {
		p.declEnd(d)
	}
	return d
}

func (p *Parser) untypedDescr(n *Node) {
	d := n.add("Descr", "")
	d.addMissing("Type")
	if _, ok := p.varList(d.add("VarList", ""), "", true); ok {
		p.declEnd(d)
	}
}

func (p *Parser) unknownTypeDescr(n *Node) {
	d := n.add("Descr", "")
	t := d.add("Type", p.tok.Text())
	t.Note = p.note(noteUnknownType)
	p.error(msgUnknownType, p.tok.Text())
	p.next()

	if _, ok := p.varList(d.add("VarList", ""), "", false); ok {
		p.declEnd(d)
	}
}

// declEnd consumes the ';' closing a declaration.
func (p *Parser) declEnd(d *Node) {
	if p.got(syntax.Semi) {
		d.add(";", "")
		return
	}
	p.missingSemi(d)
}

// VarList = Identifier { "," Identifier } .
//
// Every name is declared with typ ("" for none); with untyped set each
// name is also reported for its missing type. A missing comma between
// two names on the list's first line is reported and accepted, and
// other tokens on that line are reported and skipped one by one. A name
// right after a skipped token is declared even on a later line.
// varList returns the listed names. ok is false if the list could not
// be parsed at all and the declaration was skipped.
func (p *Parser) varList(n *Node, typ string, untyped bool) (names []string, ok bool) {
	declare := func() {
		id := p.tok
		n.add("Id", id.Text())
		p.declare(id, typ, untyped)
		names = append(names, id.Text())
		p.next()
	}

	switch {
	case p.tok.Is(syntax.Identifier):
		declare()
	case p.tok.Is(syntax.Comma):
		c := n.add(",", "")
		c.Note = p.note(noteUnexpectedSep)
		p.error(msgUnexpectedComma)
		p.next()
		if !p.tok.Is(syntax.Identifier) {
			n.addMissing("Id")
			p.error(msgExpectCommaIdent)
			p.skipStatement()
			return names, false
		}
		declare()
	default:
		n.addMissing("Id")
		p.error(msgExpectDeclIdent)
		p.skipStatement()
		return names, false
	}

	line := p.prev.Line()
	for {
		switch {
		case p.tok.Is(syntax.Comma):
			n.add(",", "")
			p.next()
			if p.tok.Is(syntax.Identifier) {
				declare()
			} else {
				n.addMissing("Id")
				p.error(msgExpectCommaIdent)
			}

		case p.tok.Line() != line || listStop.Contains(p.tok.Kind()) && !p.tok.Is(syntax.Identifier):
			return names, true

		case p.tok.Is(syntax.Identifier):
			n.addMissing(",")
			p.error(msgMissingComma)
			declare()

		default:
			s := n.add("Separator", p.tok.Text())
			s.Note = p.note(noteBadSeparator)
			p.error(msgBadSeparator, p.tok.Text())
			p.next()
			if p.tok.Is(syntax.Identifier) {
				declare()
			}
		}
	}
}

// declare registers a variable. A name that is already declared is
// reported and keeps its original entry.
func (p *Parser) declare(id syntax.Token, typ string, untyped bool) {
	if untyped {
		p.errorAt(id.Pos(), msgMissingType, id.Text())
	}
	if p.syms.Contains(id.Text()) {
		p.errorAt(id.Pos(), msgDuplicateDecl, id.Text())
		return
	}
	if typ != "" {
		p.syms.InsertWithType(id, typ)
		return
	}
	p.syms.Insert(id)
}
