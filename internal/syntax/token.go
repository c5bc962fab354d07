// Package syntax implements lexical analysis for numc source files.
package syntax

import "fmt"

// Kind represents the kind of a lexical token.
type Kind uint

const (
	// Keywords
	Return Kind = iota
	Int
	Double
	Itod
	Dtoi

	// Names and literals
	Identifier
	IntLiteral
	DoubleLiteral

	// Operators and delimiters
	Assign // =
	Plus   // +
	Minus  // -
	Mult   // *
	Div    // /
	Comma  // ,
	Semi   // ;
	Lparen // (
	Rparen // )
	Lbrace // {
	Rbrace // }

	// Special tokens
	EOF     // end of input
	Invalid // lexical error

	kindCount
)

// kindNames maps kinds to the labels used in the lexeme report.
var kindNames = [...]string{
	Return: "RETURN",
	Int:    "INT",
	Double: "DOUBLE",
	Itod:   "ITOD",
	Dtoi:   "DTOI",

	Identifier:    "IDENTIFIER",
	IntLiteral:    "INT_LITERAL",
	DoubleLiteral: "DOUBLE_LITERAL",

	Assign: "ASSIGN",
	Plus:   "PLUS",
	Minus:  "MINUS",
	Mult:   "MULT",
	Div:    "DIV",
	Comma:  "COMMA",
	Semi:   "SEMICOLON",
	Lparen: "LPAREN",
	Rparen: "RPAREN",
	Lbrace: "LBRACE",
	Rbrace: "RBRACE",

	EOF:     "END_OF_INPUT",
	Invalid: "INVALID",
}

// String returns the report label of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsType reports whether k names one of the two value types.
func (k Kind) IsType() bool {
	return k == Int || k == Double
}

// keywords maps keyword spellings to their kind.
var keywords = map[string]Kind{
	"return": Return,
	"int":    Int,
	"double": Double,
	"itod":   Itod,
	"dtoi":   Dtoi,
}

// LookupKeyword returns the kind for the given word: a keyword kind
// or Identifier.
func LookupKeyword(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Identifier
}

// operators maps single-character operators and delimiters to their kind.
var operators = map[rune]Kind{
	'=': Assign,
	'+': Plus,
	'-': Minus,
	'*': Mult,
	'/': Div,
	',': Comma,
	';': Semi,
	'(': Lparen,
	')': Rparen,
	'{': Lbrace,
	'}': Rbrace,
}

// Token is one lexeme with its kind and source position.
// Tokens are values and never change after construction.
type Token struct {
	kind Kind
	text string
	pos  Pos
}

// NewToken creates a token.
func NewToken(kind Kind, text string, pos Pos) Token {
	return Token{kind: kind, text: text, pos: pos}
}

// Kind returns the token kind.
func (t Token) Kind() Kind {
	return t.kind
}

// Text returns the literal source text of the token.
func (t Token) Text() string {
	return t.text
}

// Pos returns the position of the token's first character.
func (t Token) Pos() Pos {
	return t.pos
}

// Line returns the 1-based line of the token.
func (t Token) Line() int {
	return t.pos.Line()
}

// Col returns the 1-based column of the token.
func (t Token) Col() int {
	return t.pos.Col()
}

// End returns the position just past the last character of the token.
func (t Token) End() Pos {
	return NewPos(t.pos.Line(), t.pos.Col()+len([]rune(t.text)))
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.kind == k {
			return true
		}
	}
	return false
}

// String returns a debugging representation "pos KIND text".
func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.pos, t.kind, t.text)
}
