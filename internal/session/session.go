// Package session runs the full front end over one or more sources:
// tokenize into the lexeme table, then parse from the buffered tokens.
package session

import (
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/you-not-fish/numc/internal/parser"
	"github.com/you-not-fish/numc/internal/symtab"
	"github.com/you-not-fish/numc/internal/syntax"
)

// Options configures a Session.
type Options struct {
	Language language.Tag // diagnostics language, English if zero
}

// Session owns the lexeme table and the declared-variable table.
//
// The lexeme table lives as long as the session, so lexemes of several
// sources accumulate in it. The variable table is cleared by every parse.
type Session struct {
	opts    Options
	lexemes *symtab.Table
	symbols *symtab.Table
}

// Result is the outcome of analyzing one source.
type Result struct {
	Name    string         `json:"name"`
	Source  []byte         `json:"-"`
	Tokens  []syntax.Token `json:"-"`
	Lexemes []symtab.Entry `json:"-"` // lexeme table right after tokenizing
	*parser.Result
}

// New creates a Session.
func New(opts Options) *Session {
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	return &Session{
		opts:    opts,
		lexemes: symtab.New(),
		symbols: symtab.New(),
	}
}

// Language returns the diagnostics language.
func (s *Session) Language() language.Tag {
	return s.opts.Language
}

// Analyze reads src to the end and analyzes it. Only read errors are
// returned; syntax and type errors are reported in the Result.
func (s *Session) Analyze(name string, src io.Reader) (*Result, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return s.AnalyzeBytes(name, buf), nil
}

// AnalyzeBytes analyzes an in-memory source.
func (s *Session) AnalyzeBytes(name string, src []byte) *Result {
	toks := syntax.ScanAll(src, s.lexemes)
	p := parser.New(syntax.NewBufferedTokenizer(toks), s.symbols,
		parser.WithLanguage(s.opts.Language))
	return &Result{
		Name:    name,
		Source:  src,
		Tokens:  toks,
		Lexemes: s.lexemes.Entries(),
		Result:  p.Parse(),
	}
}
