package report

import (
	"encoding/json"
	"io"

	"github.com/you-not-fish/numc/internal/parser"
	"github.com/you-not-fish/numc/internal/session"
)

// Document is the JSON form of an analysis result.
type Document struct {
	Name     string         `json:"name"`
	OK       bool           `json:"ok"`
	Function string         `json:"function,omitempty"`
	Type     string         `json:"type,omitempty"`
	Lexemes  []Lexeme       `json:"lexemes"`
	Errors   []parser.Error `json:"errors"`
	Code     []string       `json:"code"`
	Stream   []string       `json:"stream"` // code as one postfix sequence
	Trace    *parser.Node   `json:"trace,omitempty"`
}

// Lexeme is one row of the lexeme table.
type Lexeme struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// NewDocument converts res. Empty lists are kept as [] rather than null.
func NewDocument(res *session.Result) *Document {
	doc := &Document{
		Name:     res.Name,
		OK:       res.OK,
		Function: res.FuncName,
		Type:     res.FuncType,
		Lexemes:  make([]Lexeme, 0, len(res.Lexemes)),
		Errors:   res.Errors,
		Code:     res.Lines(),
		Stream:   res.Flat(),
		Trace:    res.Trace,
	}
	for _, e := range res.Lexemes {
		doc.Lexemes = append(doc.Lexemes, Lexeme{Kind: e.Kind.String(), Text: e.Text, Index: e.Index})
	}
	if doc.Errors == nil {
		doc.Errors = []parser.Error{}
	}
	if doc.Stream == nil {
		doc.Stream = []string{}
	}
	return doc
}

// JSON writes res as indented JSON.
func JSON(w io.Writer, res *session.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}
