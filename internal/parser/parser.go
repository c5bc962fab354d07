// Package parser implements the recursive-descent parser: it checks the
// grammar, recovers from errors, checks types against the symbol table
// and emits intermediate code.
package parser

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/you-not-fish/numc/internal/symtab"
	"github.com/you-not-fish/numc/internal/syntax"
)

// TokenSource supplies tokens with one token of lookahead.
// *syntax.Tokenizer implements it in both modes.
type TokenSource interface {
	Next() syntax.Token
	Peek() syntax.Token
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguage selects the language of diagnostics and trace notes.
func WithLanguage(tag language.Tag) Option {
	return func(p *Parser) {
		p.print = NewPrinter(tag)
	}
}

// Parser parses a single function. A Parser is used for one Parse call.
type Parser struct {
	src   TokenSource
	syms  *symtab.Table // declared variables, cleared by Parse
	print *message.Printer

	// Current token info
	tok  syntax.Token
	prev syntax.Token // last consumed token other than END_OF_INPUT

	errors []Error

	// Code generation
	code     [][]string
	operands []string // pending operands and operators of the current statement
	types    *typeStack
	nest     int // expression nesting depth

	funcType string
	funcName string
}

// New creates a Parser reading from src and recording declarations in syms.
func New(src TokenSource, syms *symtab.Table, opts ...Option) *Parser {
	p := &Parser{
		src:   src,
		syms:  syms,
		print: NewPrinter(language.English),
		types: newTypeStack(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the function and returns the collected diagnostics, the
// intermediate code and the trace. It never fails: an unexpected fault
// is turned into a single diagnostic and whatever was produced so far
// is returned.
func (p *Parser) Parse() (res *Result) {
	root := &Node{Name: "Function"}

	defer func() {
		if r := recover(); r != nil {
			p.errorAt(p.tok.Pos(), msgCritical)
			res = p.result(root)
		}
	}()

	p.syms.Clear()
	p.next() // prime the parser with the first token
	p.function(root)

	if !p.tok.Is(syntax.EOF) && len(p.errors) == 0 {
		p.error(msgExpectEOF)
	}
	return p.result(root)
}

func (p *Parser) result(root *Node) *Result {
	return &Result{
		OK:       len(p.errors) == 0,
		Errors:   p.errors,
		Code:     p.code,
		Trace:    root,
		FuncType: p.funcType,
		FuncName: p.funcName,
	}
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	if p.tok.Pos().IsValid() && !p.tok.Is(syntax.EOF) {
		p.prev = p.tok
	}
	p.tok = p.src.Next()
}

// peek returns the token after the current one.
func (p *Parser) peek() syntax.Token {
	return p.src.Peek()
}

// got reports whether the current token has kind k.
// If so, it consumes the token and returns true.
func (p *Parser) got(k syntax.Kind) bool {
	if p.tok.Is(k) {
		p.next()
		return true
	}
	return false
}

// want consumes a token of kind k and records it under n. Otherwise it
// records a placeholder and reports key at the current token.
func (p *Parser) want(n *Node, k syntax.Kind, key string, args ...interface{}) bool {
	text := p.tok.Text()
	if p.got(k) {
		n.add(text, "")
		return true
	}
	n.addMissing(symbol(k))
	p.error(key, args...)
	return false
}

// symbol returns the source spelling of an operator or delimiter kind.
func symbol(k syntax.Kind) string {
	switch k {
	case syntax.Lparen:
		return "("
	case syntax.Rparen:
		return ")"
	case syntax.Lbrace:
		return "{"
	case syntax.Rbrace:
		return "}"
	case syntax.Semi:
		return ";"
	case syntax.Comma:
		return ","
	case syntax.Assign:
		return "="
	}
	return k.String()
}

// ----------------------------------------------------------------------------
// Error handling

// error reports a diagnostic at the current token.
func (p *Parser) error(key string, args ...interface{}) {
	p.errorAt(p.tok.Pos(), key, args...)
}

// errorAt reports a diagnostic at pos.
func (p *Parser) errorAt(pos syntax.Pos, key string, args ...interface{}) {
	p.errors = append(p.errors, Error{
		Line: pos.Line(),
		Col:  pos.Col(),
		Msg:  p.print.Sprintf(key, args...),
	})
}

// note returns a translated trace note.
func (p *Parser) note(key string) string {
	return p.print.Sprintf(key)
}

// missingSemi reports a missing ';' just past the last consumed token.
func (p *Parser) missingSemi(n *Node) {
	n.addMissing(";")
	p.errorAt(p.prev.End(), msgExpectSemi)
}

// ----------------------------------------------------------------------------
// Code generation

// emit appends one instruction line.
func (p *Parser) emit(line ...string) {
	p.code = append(p.code, line)
}

// operand appends an operand or operator to the pending statement.
func (p *Parser) operand(s string) {
	p.operands = append(p.operands, s)
}

// flush emits the pending operands followed by tail as one line.
func (p *Parser) flush(tail ...string) {
	line := append(p.operands, tail...)
	p.operands = nil
	p.emit(line...)
}

// emitDecl emits a declaration group: type, names, count, DECL.
func (p *Parser) emitDecl(typ string, names []string) {
	line := make([]string, 0, len(names)+3)
	line = append(line, typ)
	line = append(line, names...)
	line = append(line, strconv.Itoa(len(names)+1), "DECL")
	p.emit(line...)
}

// ----------------------------------------------------------------------------
// Function

// Function = Begin Descriptions Operators End .
func (p *Parser) function(root *Node) {
	p.begin(root.add("Begin", ""))
	p.descriptions(root.add("Descriptions", ""))
	p.operators(root.add("Operators", ""))

	end := root.add("End", "")
	if p.tok.Is(syntax.Rbrace) {
		// A closing brace without return.
		end.addMissing("return")
		end.addMissing("Id")
		end.addMissing(";")
		end.add("}", "")
		p.error(msgExpectReturn)
		p.next()
		return
	}
	p.end(end)
}

// Begin = Type Identifier "(" ")" "{" .
func (p *Parser) begin(n *Node) {
	if p.tok.Kind().IsType() {
		p.funcType = p.tok.Text()
		n.add("Type", p.funcType)
		p.next()

		if p.tok.Is(syntax.Identifier) {
			p.funcName = p.tok.Text()
			n.add("FunctionName", p.funcName)
			p.next()
		} else {
			n.addMissing("FunctionName")
			p.error(msgExpectFuncName)
		}
	} else {
		t := n.add("Type", p.tok.Text())
		t.Note = p.note(noteBadType)
		p.error(msgBadFuncType, p.tok.Text())
		p.next()

		if p.tok.Is(syntax.Identifier) {
			n.add("FunctionName", p.tok.Text())
			p.next()
		} else {
			n.addMissing("FunctionName")
		}
	}

	p.want(n, syntax.Lparen, msgExpectLparen)
	p.want(n, syntax.Rparen, msgExpectRparen)
	p.want(n, syntax.Lbrace, msgExpectLbrace)
}

// End = "return" Identifier ";" "}" .
func (p *Parser) end(n *Node) {
	if !p.got(syntax.Return) {
		p.error(msgExpectReturn)
		n.addMissing("return")
		n.addMissing("Id")
		n.addMissing(";")
		n.addMissing("}")
		return
	}
	n.add("return", "")

	switch {
	case p.tok.Is(syntax.Identifier):
		id := p.tok
		n.add("Id", id.Text())
		p.checkReturn(id)
		p.next()
		p.emit(id.Text(), "RETURN")

		if p.got(syntax.Semi) {
			n.add(";", "")
		} else {
			n.addMissing(";")
			p.errorAt(id.End(), msgExpectSemi)
		}

	case p.tok.Is(syntax.Semi):
		n.addMissing("Id")
		p.error(msgExpectReturnIdent)
		n.add(";", "")
		p.next()

	default:
		n.addMissing("Id")
		p.error(msgExpectReturnIdent)
		p.skipTo(returnSync)
		if p.got(syntax.Semi) {
			n.add(";", "")
		}
	}

	if p.got(syntax.Rbrace) {
		n.add("}", "")
		return
	}
	n.addMissing("}")
	p.errorAt(p.prev.End(), msgExpectRbrace)
}

// checkReturn compares the type of the returned variable with the
// function type.
func (p *Parser) checkReturn(id syntax.Token) {
	typ, ok := p.syms.Type(id.Text())
	if !ok {
		p.errorAt(id.Pos(), msgReturnUndeclared, id.Text())
		return
	}
	if typ == "" || p.funcType == "" {
		return
	}
	if typ != p.funcType {
		p.errorAt(id.Pos(), msgReturnMismatch, typ, p.funcType)
	}
}
