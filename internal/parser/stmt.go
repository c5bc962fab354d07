package parser

import "github.com/you-not-fish/numc/internal/syntax"

// Operators = { Op } .
//
// Declarations found here are parsed like regular ones, and each one is
// reported. An assignment without a target and any token that cannot
// start a statement are reported and skipped.
func (p *Parser) operators(n *Node) {
	for {
		switch {
		case p.tok.Is(syntax.Identifier):
			p.op(n)

		case p.tok.Kind().IsType():
			p.error(msgDeclAfterStmt)
			d := p.descr(n)
			d.Note = p.note(noteAfterStmts)

		case p.tok.Is(syntax.Assign):
			p.targetlessOp(n)

		case p.tok.Is(syntax.Return, syntax.Rbrace, syntax.EOF):
			return

		default:
			u := n.add("Token", p.tok.Text())
			u.Note = p.note(noteUnexpected)
			p.error(msgUnexpectedToken, p.tok.Text())
			p.skipStatement()
		}
	}
}

// Op = Identifier "=" Expr ";" .
func (p *Parser) op(n *Node) {
	o := n.add("Op", "")
	target := p.tok
	id := o.add("Id", target.Text())
	if !p.syms.Contains(target.Text()) {
		id.Note = p.note(noteUndeclared)
		p.error(msgUndeclaredTarget, target.Text())
	}
	p.next()

	p.operands = nil
	p.types.reset()

	if !p.tok.Is(syntax.Assign) {
		o.addMissing("=")
		p.error(msgExpectAssign)
		if !p.startsExpr() {
			o.addMissing(";")
			p.skipStatement()
			return
		}
	} else {
		o.add("=", "")
		p.next()
	}

	if !p.rhs(o.add("Expr", "")) {
		return
	}
	p.extraParens(o)
	p.assign(target)
	p.stmtEnd(o)
}

// targetlessOp parses "= Expr ;" with the target missing. The right-hand
// side is checked but emits no code.
func (p *Parser) targetlessOp(n *Node) {
	o := n.add("Op", "")
	o.addMissing("Id")
	p.error(msgExpectTarget)
	o.add("=", "")
	p.next()

	p.operands = nil
	p.types.reset()
	ok := p.rhs(o.add("Expr", ""))
	p.operands = nil
	if !ok {
		return
	}

	if p.got(syntax.Semi) {
		o.add(";", "")
		return
	}
	o.addMissing(";")
	p.skipStatement()
}

// rhs parses the expression of a statement. An expression nested more
// than maxNest levels deep is reported once, the rest of the statement
// is skipped and rhs returns false.
func (p *Parser) rhs(n *Node) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, deep := r.(tooDeep); !deep {
				panic(r)
			}
			p.nest = 0
			p.operands = nil
			p.types.reset()
			p.error(msgTooDeep)
			p.skipTo(stmtSync)
			p.got(syntax.Semi)
			ok = false
		}
	}()
	p.expr(n)
	return true
}

// startsExpr reports whether the current token can start an expression.
func (p *Parser) startsExpr() bool {
	return p.tok.Is(syntax.Identifier, syntax.IntLiteral, syntax.DoubleLiteral,
		syntax.Lparen, syntax.Itod, syntax.Dtoi)
}

// extraParens reports and consumes unmatched ')' after an expression.
func (p *Parser) extraParens(n *Node) {
	for p.tok.Is(syntax.Rparen) {
		x := n.add(")", "")
		x.Note = p.note(noteExtra)
		p.error(msgExtraRparen)
		p.next()
	}
}

// assign checks the expression type against the target and emits the
// assignment.
func (p *Parser) assign(target syntax.Token) {
	exprType := p.types.top()
	if varType, _ := p.syms.Type(target.Text()); known(varType) && known(exprType) && varType != exprType {
		p.errorAt(target.Pos(), msgAssignMismatch, target.Text(), varType, exprType)
	}
	p.flush(target.Text(), "=")
}

// stmtEnd consumes the ';' closing a statement. If the next token is on
// a new line the ';' is reported as missing and parsing goes on from
// there; otherwise the rest of the statement is skipped.
func (p *Parser) stmtEnd(o *Node) {
	if p.got(syntax.Semi) {
		o.add(";", "")
		return
	}
	p.missingSemi(o)
	if p.tok.Line() == p.prev.Line() {
		p.skipStatement()
	}
}
