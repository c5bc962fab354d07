package report

import (
	"io"
	"strings"

	"github.com/you-not-fish/numc/internal/syntax"
)

// Tokens writes the token stream with positions, one token per line.
func Tokens(w io.Writer, toks []syntax.Token) error {
	out := &writer{w: w}
	out.printf("%-12s %-16s %s\n", "POSITION", "TOKEN", "LITERAL")
	out.printf("%-12s %-16s %s\n", strings.Repeat("-", 12), strings.Repeat("-", 16), strings.Repeat("-", 20))
	for _, tok := range toks {
		out.printf("%-12s %-16s %q\n", tok.Pos(), tok.Kind(), tok.Text())
	}
	return out.err
}

