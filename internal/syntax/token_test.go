package syntax

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Return, "RETURN"},
		{Int, "INT"},
		{Double, "DOUBLE"},
		{Itod, "ITOD"},
		{Dtoi, "DTOI"},
		{Identifier, "IDENTIFIER"},
		{IntLiteral, "INT_LITERAL"},
		{DoubleLiteral, "DOUBLE_LITERAL"},
		{Assign, "ASSIGN"},
		{Plus, "PLUS"},
		{Minus, "MINUS"},
		{Mult, "MULT"},
		{Div, "DIV"},
		{Comma, "COMMA"},
		{Semi, "SEMICOLON"},
		{Lparen, "LPAREN"},
		{Rparen, "RPAREN"},
		{Lbrace, "LBRACE"},
		{Rbrace, "RBRACE"},
		{EOF, "END_OF_INPUT"},
		{Invalid, "INVALID"},
		{kindCount + 3, "kind(24)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !Int.IsType() || !Double.IsType() {
		t.Error("int and double must be type kinds")
	}
	if Itod.IsType() || Identifier.IsType() {
		t.Error("only int and double are type kinds")
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		want Kind
	}{
		{"return", Return},
		{"int", Int},
		{"double", Double},
		{"itod", Itod},
		{"dtoi", Dtoi},
		{"Int", Identifier},
		{"float", Identifier},
		{"x", Identifier},
		{"returns", Identifier},
	}

	for _, tt := range tests {
		if got := LookupKeyword(tt.word); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestTokenAccessors(t *testing.T) {
	tok := NewToken(Identifier, "alpha", NewPos(3, 7))

	if tok.Kind() != Identifier {
		t.Errorf("Kind() = %v, want IDENTIFIER", tok.Kind())
	}
	if tok.Text() != "alpha" {
		t.Errorf("Text() = %q, want %q", tok.Text(), "alpha")
	}
	if tok.Line() != 3 || tok.Col() != 7 {
		t.Errorf("position = %d:%d, want 3:7", tok.Line(), tok.Col())
	}
	if got := tok.End(); got != NewPos(3, 12) {
		t.Errorf("End() = %v, want 3:12", got)
	}
	if !tok.Is(Int, Identifier) {
		t.Error("Is(Int, Identifier) = false, want true")
	}
	if tok.Is(Int, Double) {
		t.Error("Is(Int, Double) = true, want false")
	}
	if got, want := tok.String(), `3:7 IDENTIFIER "alpha"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTokenEndCountsRunes(t *testing.T) {
	tok := NewToken(Invalid, "ж1", NewPos(1, 4))
	if got := tok.End(); got != NewPos(1, 6) {
		t.Errorf("End() = %v, want 1:6", got)
	}
}
