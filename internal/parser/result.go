package parser

import (
	"fmt"
	"strings"
)

// Error is one parse diagnostic. Diagnostics are data: the parser never
// stops on them.
type Error struct {
	Line int    `json:"line"`
	Col  int    `json:"col"`
	Msg  string `json:"msg"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Result is the outcome of one parse.
type Result struct {
	OK       bool       // no diagnostics were raised
	Errors   []Error    // diagnostics in detection order
	Code     [][]string // intermediate code, one entry per instruction line
	Trace    *Node      // parse trace rooted at Function
	FuncType string     // declared function type, "" if invalid
	FuncName string     // function name, "" if missing
}

// Flat returns the intermediate code as one token sequence.
func (r *Result) Flat() []string {
	var flat []string
	for _, line := range r.Code {
		flat = append(flat, line...)
	}
	return flat
}

// Lines returns the intermediate code lines with tokens joined by spaces.
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Code))
	for i, line := range r.Code {
		lines[i] = strings.Join(line, " ")
	}
	return lines
}

// Err returns the first diagnostic as an error, or nil if the parse was clean.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}
