package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{"line 1 col 1", NewPos(1, 1), "1:1"},
		{"line 10 col 5", NewPos(10, 5), "10:5"},
		{"zero", Pos{}, "0:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos(1, 1), true},
		{"valid position line 100", NewPos(100, 50), true},
		{"zero value", Pos{}, false},
		{"line zero", NewPos(0, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPosAccessors(t *testing.T) {
	pos := NewPos(42, 17)
	if pos.Line() != 42 {
		t.Errorf("Line() = %d, want 42", pos.Line())
	}
	if pos.Col() != 17 {
		t.Errorf("Col() = %d, want 17", pos.Col())
	}
}
