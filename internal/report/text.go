// Package report renders analysis results as text or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/you-not-fish/numc/internal/parser"
	"github.com/you-not-fish/numc/internal/session"
)

// Options selects the sections and styling of a text report.
type Options struct {
	Language  language.Tag
	Color     bool // colorize errors, placeholders and the verdict
	NoLexemes bool // omit the lexeme table
	NoTree    bool // omit the parse tree
}

type styles struct {
	heading *color.Color
	err     *color.Color
	missing *color.Color
	ok      *color.Color
}

func newStyles(enabled bool) styles {
	s := styles{
		heading: color.New(color.Bold),
		err:     color.New(color.FgRed),
		missing: color.New(color.FgYellow),
		ok:      color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{s.heading, s.err, s.missing, s.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// writer accumulates the first write error so that sections can be
// printed without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Text writes the full report for res: lexeme table, parse tree,
// diagnostics, intermediate code and verdict.
func Text(w io.Writer, res *session.Result, opts Options) error {
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	r := &textReport{
		writer: writer{w: w},
		msg:    parser.NewPrinter(opts.Language),
		style:  newStyles(opts.Color),
	}

	if !opts.NoLexemes {
		r.lexemes(res)
	}
	if !opts.NoTree && res.Trace != nil {
		r.tree(res.Trace)
	}
	r.errors(res.Errors)
	r.code(res.Lines())
	r.verdict(res)
	return r.err
}

type textReport struct {
	writer
	msg   *message.Printer
	style styles
}

func (r *textReport) heading(key string) {
	title := r.msg.Sprintf(key)
	r.printf("%s\n%s\n", r.style.heading.Sprint(title), strings.Repeat("=", len([]rune(title))))
}

func (r *textReport) lexemes(res *session.Result) {
	r.heading(parser.MsgLexemeTable)
	r.printf("%-16s %-20s %s\n", r.msg.Sprintf(parser.MsgKind), r.msg.Sprintf(parser.MsgLexeme), r.msg.Sprintf(parser.MsgIndex))
	for _, e := range res.Lexemes {
		r.printf("%-16s %-20s %d\n", e.Kind, e.Text, e.Index)
	}
	r.printf("%s\n\n", r.msg.Sprintf(parser.MsgTotalLexemes, len(res.Lexemes)))
}

func (r *textReport) tree(root *parser.Node) {
	r.heading(parser.MsgParseTree)
	missing := r.msg.Sprintf(parser.MsgMissing)
	root.Walk(func(n *parser.Node, depth int) bool {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Name)
		if n.Value != "" {
			b.WriteString(": ")
			b.WriteString(n.Value)
		}
		if n.Missing {
			b.WriteByte(' ')
			b.WriteString(r.style.missing.Sprint(missing))
		}
		if n.Note != "" {
			fmt.Fprintf(&b, " (%s)", n.Note)
		}
		r.printf("%s\n", b.String())
		return true
	})
	r.printf("\n")
}

func (r *textReport) errors(errs []parser.Error) {
	if len(errs) == 0 {
		return
	}
	r.heading(parser.MsgErrors)
	for _, e := range errs {
		r.printf("%s\n", r.style.err.Sprint(r.msg.Sprintf(parser.MsgErrorLine, e.Line, e.Col, e.Msg)))
	}
	r.printf("\n")
}

func (r *textReport) code(lines []string) {
	r.heading(parser.MsgCode)
	if len(lines) == 0 {
		r.printf("%s\n\n", r.msg.Sprintf(parser.MsgNoCode))
		return
	}
	for _, line := range lines {
		r.printf("%s\n", line)
	}
	r.printf("\n")
}

func (r *textReport) verdict(res *session.Result) {
	r.heading(parser.MsgResult)
	if res.OK {
		r.printf("%s\n", r.style.ok.Sprint(r.msg.Sprintf(parser.MsgCorrect)))
		return
	}
	r.printf("%s\n", r.style.err.Sprint(r.msg.Sprintf(parser.MsgErrorCount, len(res.Errors))))
}
