package syntax

import "unicode/utf8"

// source is a character reader with position tracking.
// It decodes UTF-8 source text and provides character-by-character access.
//
// source holds no references besides the shared input buffer, so a plain
// struct copy is a complete snapshot of the reader.
type source struct {
	buf []byte // source buffer

	// Position tracking
	line int // current line number (1-based)
	col  int // current column number (1-based, in runes)

	// Current state
	ch    rune // current character, -1 for EOF
	start int  // byte offset of ch in buf
	offs  int  // byte offset of the next character in buf
}

// newSource creates a source over buf positioned at its first character.
func newSource(buf []byte) source {
	s := source{
		buf:  buf,
		line: 1,
		col:  0,  // incremented to 1 by the first nextch()
		ch:   -1, // sentinel: "before first char"
	}
	s.nextch()
	return s
}

// nextch reads the next character and updates the position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col) always refers to the position of s.ch after nextch() returns.
// A newline moves the following character to column 1 of the next line.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.start = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	// Invalid bytes decode to utf8.RuneError and end up in an Invalid token.
	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// segment returns the source bytes from offset from up to the current character.
func (s *source) segment(from int) string {
	return string(s.buf[from:s.start])
}

// pos returns the position of the current character.
func (s *source) pos() Pos {
	return NewPos(s.line, s.col)
}

// Character classification helpers

// isLetter reports whether r is an ASCII letter (a-z, A-Z).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is a whitespace character.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// isDelimiter reports whether r ends an erroneous identifier: a known
// operator or delimiter, or end of input.
func isDelimiter(r rune) bool {
	if r < 0 {
		return true
	}
	_, ok := operators[r]
	return ok
}
