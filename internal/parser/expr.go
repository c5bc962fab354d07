package parser

import "github.com/you-not-fish/numc/internal/syntax"

// maxNest bounds the nesting depth of expressions.
const maxNest = 1000

// tooDeep is raised by expr past maxNest and recovered by rhs.
type tooDeep struct{}

// Expr = SimpleExpr [ ( "+" | "-" ) Expr ] .
//
// The trace keeps the right-recursive shape of the rule, while types and
// code are produced left to right: a - b + c is checked as (a - b) + c
// and emitted as "a b - c +".
//
// '*' and '/' are accepted in the same position so that parsing stays in
// step, but each one is reported. They take part in typing like '+' and
// '-' without the implicit conversion check.
func (p *Parser) expr(n *Node) {
	p.nest++
	if p.nest > maxNest {
		panic(tooDeep{})
	}
	p.simpleExpr(n.add("SimpleExpr", ""))

	for p.tok.Is(syntax.Plus, syntax.Minus, syntax.Mult, syntax.Div) {
		op := p.tok
		o := n.add(op.Text(), "")
		if op.Is(syntax.Mult, syntax.Div) {
			o.Note = p.note(noteUnsupported)
			p.error(msgUnsupportedOp, op.Text())
		}
		p.next()

		n = n.add("Expr", "")
		p.simpleExpr(n.add("SimpleExpr", ""))
		p.binary(op)
	}
	p.nest--
}

// binary pops the operand types of op, pushes the result type and emits op.
func (p *Parser) binary(op syntax.Token) {
	right := p.types.pop()
	left := p.types.pop()
	if op.Is(syntax.Plus, syntax.Minus) && known(left) && known(right) && left != right {
		p.errorAt(op.Pos(), msgImplicitConversion, op.Text(), left, right)
	}
	p.types.push(promote(left, right))
	p.operand(op.Text())
}

// SimpleExpr = Identifier | Identifier "(" Expr ")" | IntLit | DoubleLit
//
//	| "(" Expr ")" | "itod" "(" Expr ")" | "dtoi" "(" Expr ")" .
func (p *Parser) simpleExpr(n *Node) {
	switch p.tok.Kind() {
	case syntax.Identifier:
		if p.peek().Is(syntax.Lparen) {
			p.call(n)
			return
		}
		name := p.tok.Text()
		id := n.add("Id", name)
		typ, ok := p.syms.Type(name)
		if !ok {
			id.Note = p.note(noteUndeclared)
			p.error(msgUndeclaredOperand, name)
		}
		if !known(typ) {
			typ = typeUnknown
		}
		p.types.push(typ)
		p.operand(name)
		p.next()

	case syntax.IntLiteral:
		c := n.add("Const", p.tok.Text())
		c.Note = p.note(noteInt)
		p.types.push(typeInt)
		p.operand(p.tok.Text())
		p.next()

	case syntax.DoubleLiteral:
		c := n.add("Const", p.tok.Text())
		c.Note = p.note(noteDouble)
		p.types.push(typeDouble)
		p.operand(p.tok.Text())
		p.next()

	case syntax.Lparen:
		n.add("(", "")
		p.next()
		p.expr(n.add("Expr", ""))
		p.want(n, syntax.Rparen, msgExpectRparen)

	case syntax.Itod:
		p.conversion(n, typeInt, typeDouble)

	case syntax.Dtoi:
		p.conversion(n, typeDouble, typeInt)

	default:
		u := n.add("Token", p.tok.Text())
		u.Missing = true
		u.Note = p.note(noteUnexpected)
		p.error(msgExpectSimpleExpr)
	}
}

// conversion parses itod(Expr) or dtoi(Expr). The argument must have
// type arg; the result always has type result, even if the argument
// list is missing.
func (p *Parser) conversion(n *Node, arg, result string) {
	name := p.tok.Text()
	n.add(name, "")
	p.next()

	if !p.tok.Is(syntax.Lparen) {
		n.addMissing("(")
		p.error(msgExpectLparenAfter, name)
		p.types.push(result)
		return
	}
	n.add("(", "")
	p.next()

	p.expr(n.add("Expr", ""))
	if got := p.types.pop(); known(got) && got != arg {
		p.error(msgArgType, name, arg, got)
	}
	p.types.push(result)

	p.want(n, syntax.Rparen, msgExpectRparenIn, name)
	p.operand(name)
}

// call parses a call of a function other than itod and dtoi. The call is
// reported; its argument is parsed and the result type is unknown.
func (p *Parser) call(n *Node) {
	name := p.tok.Text()
	id := n.add("Id", name)
	id.Note = p.note(noteCall)
	p.error(msgUnknownFunc, name)
	p.next()

	p.want(n, syntax.Lparen, msgExpectLparenAfter, name)
	p.expr(n.add("Expr", ""))
	p.types.pop()
	p.types.push(typeUnknown)

	p.want(n, syntax.Rparen, msgExpectRparenIn, name)
	p.operand(name)
}
