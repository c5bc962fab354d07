package syntax

import "strings"

// Recorder receives every token produced by a streaming Tokenizer.
// *symtab.Table satisfies it; the lexeme report is built this way.
type Recorder interface {
	Insert(tok Token) int
}

// Tokenizer converts source text into tokens on demand.
//
// A Tokenizer works in one of two modes that look the same to a parser:
// streaming mode reads characters from a source buffer, buffered mode
// replays a token list produced by an earlier streaming pass.
type Tokenizer struct {
	source // streaming reader state

	rec Recorder // lexeme sink, nil in buffered mode and during Peek

	// Buffered mode
	buffered bool
	toks     []Token
	idx      int
	eof      Token
}

// NewTokenizer creates a streaming Tokenizer over src. Every token
// except END_OF_INPUT is passed to rec; rec may be nil.
func NewTokenizer(src []byte, rec Recorder) *Tokenizer {
	return &Tokenizer{
		source: newSource(src),
		rec:    rec,
	}
}

// NewBufferedTokenizer creates a Tokenizer that replays toks. Once the
// list is exhausted it keeps returning an END_OF_INPUT token: the list's
// own terminator if it has one, otherwise one placed after the last token.
func NewBufferedTokenizer(toks []Token) *Tokenizer {
	t := &Tokenizer{buffered: true}
	n := len(toks)
	switch {
	case n > 0 && toks[n-1].kind == EOF:
		t.toks = toks[:n-1]
		t.eof = toks[n-1]
	case n > 0:
		t.toks = toks
		t.eof = NewToken(EOF, "", toks[n-1].End())
	default:
		t.eof = NewToken(EOF, "", NewPos(1, 1))
	}
	return t
}

// ScanAll runs a streaming pass over src and returns every token,
// terminated by the END_OF_INPUT token.
func ScanAll(src []byte, rec Recorder) []Token {
	t := NewTokenizer(src, rec)
	var toks []Token
	for t.More() {
		toks = append(toks, t.Next())
	}
	return append(toks, t.Next())
}

// More reports whether tokens other than END_OF_INPUT remain.
func (t *Tokenizer) More() bool {
	if t.buffered {
		return t.idx < len(t.toks)
	}
	t.skipWhitespace()
	return t.ch >= 0
}

// Next consumes and returns the next token.
func (t *Tokenizer) Next() Token {
	if t.buffered {
		if t.idx < len(t.toks) {
			tok := t.toks[t.idx]
			t.idx++
			return tok
		}
		return t.eof
	}

	t.skipWhitespace()

	var tok Token
	switch {
	case t.ch < 0:
		return NewToken(EOF, "", t.pos())
	case isDigit(t.ch):
		tok = t.scanNumber()
	case isLetter(t.ch):
		tok = t.scanIdent()
	case t.ch == '_' || !isDelimiter(t.ch):
		tok = t.scanInvalid()
	default:
		tok = t.scanOperator()
	}

	if t.rec != nil {
		t.rec.Insert(tok)
	}
	return tok
}

// Peek returns the next token without consuming it. In streaming mode
// the reader state is saved and restored around the scan, and nothing
// is recorded, so repeated peeks see the same token.
func (t *Tokenizer) Peek() Token {
	if t.buffered {
		if t.idx < len(t.toks) {
			return t.toks[t.idx]
		}
		return t.eof
	}

	saved, rec := t.source, t.rec
	t.rec = nil
	tok := t.Next()
	t.source, t.rec = saved, rec
	return tok
}

// skipWhitespace skips spaces, tabs and newlines.
func (t *Tokenizer) skipWhitespace() {
	for isWhitespace(t.ch) {
		t.nextch()
	}
}

// scanNumber scans an integer or double literal. Letters or underscores
// inside the run, a second '.', a trailing '.', or a leading zero followed
// by another digit turn the whole run into one Invalid token.
func (t *Tokenizer) scanNumber() Token {
	pos, from := t.pos(), t.start
	bad := false
	dots := 0
	leadingZero := t.ch == '0'

	t.nextch()
	if leadingZero && isDigit(t.ch) {
		bad = true
	}

	for isDigit(t.ch) || t.ch == '.' || isLetter(t.ch) || t.ch == '_' {
		switch {
		case t.ch == '.':
			dots++
			if dots > 1 {
				bad = true
			}
		case !isDigit(t.ch):
			bad = true
		}
		t.nextch()
	}

	lit := t.segment(from)
	switch {
	case bad || strings.HasSuffix(lit, "."):
		return NewToken(Invalid, lit, pos)
	case dots == 1:
		return NewToken(DoubleLiteral, lit, pos)
	}
	return NewToken(IntLiteral, lit, pos)
}

// scanIdent scans an identifier or keyword. A letter after a digit in
// the same run makes the whole run Invalid.
func (t *Tokenizer) scanIdent() Token {
	pos, from := t.pos(), t.start
	seenDigit := false
	bad := false

	t.nextch()
	for isLetter(t.ch) || isDigit(t.ch) || t.ch == '_' {
		switch {
		case isDigit(t.ch):
			seenDigit = true
		case isLetter(t.ch) && seenDigit:
			bad = true
		}
		t.nextch()
	}

	lit := t.segment(from)
	if bad {
		return NewToken(Invalid, lit, pos)
	}
	return NewToken(LookupKeyword(lit), lit, pos)
}

// scanInvalid scans an illegal run: it starts at an underscore or an
// unknown character and extends to the next whitespace or delimiter.
func (t *Tokenizer) scanInvalid() Token {
	pos, from := t.pos(), t.start
	t.nextch()
	for !isWhitespace(t.ch) && !isDelimiter(t.ch) {
		t.nextch()
	}
	return NewToken(Invalid, t.segment(from), pos)
}

// scanOperator scans a single-character operator or delimiter.
func (t *Tokenizer) scanOperator() Token {
	pos := t.pos()
	ch := t.ch
	t.nextch()

	if k, ok := operators[ch]; ok {
		return NewToken(k, string(ch), pos)
	}
	return NewToken(Invalid, string(ch), pos)
}
