// Package main implements the numc command: it analyzes source files and
// reports lexemes, the parse tree, diagnostics and intermediate code.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"golang.org/x/text/language"

	"github.com/you-not-fish/numc/internal/parser"
	"github.com/you-not-fish/numc/internal/report"
	"github.com/you-not-fish/numc/internal/server"
	"github.com/you-not-fish/numc/internal/session"
	"github.com/you-not-fish/numc/internal/store"
	"github.com/you-not-fish/numc/internal/syntax"
)

// Version information
const Version = "0.1.0-dev"

// defaultInput is analyzed when no file is named.
const defaultInput = "input.txt"

// Exit codes
const (
	exitOK    = 0
	exitFail  = 1 // some source has errors
	exitUsage = 2 // bad flags or I/O failure
)

type options struct {
	tokens  bool
	json    bool
	noColor bool
	brief   bool
	help    bool
	version bool

	output string
	lang   language.Tag
	db     string
	addr   string
	retain time.Duration

	files []string
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "numc %s\n\n", Version)
	fmt.Fprintf(w, "Usage: numc [options] [file...]\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  -t          print the token stream\n")
	fmt.Fprintf(w, "  -j          print the report as JSON\n")
	fmt.Fprintf(w, "  -q          omit the lexeme table and the parse tree\n")
	fmt.Fprintf(w, "  -n          disable colors\n")
	fmt.Fprintf(w, "  -o FILE     write the report to FILE\n")
	fmt.Fprintf(w, "  -l LANG     diagnostics language (en, ru)\n")
	fmt.Fprintf(w, "  -d FILE     record runs in the SQLite database FILE\n")
	fmt.Fprintf(w, "  -s ADDR     serve analyses over HTTP on ADDR\n")
	fmt.Fprintf(w, "  -r DURATION with -s and -d, delete runs older than DURATION\n")
	fmt.Fprintf(w, "  -v          print version\n")
	fmt.Fprintf(w, "  -h          print this help\n\n")
	fmt.Fprintf(w, "Without files, %s is analyzed.\n", defaultInput)
}

// readFlags parses args, including the program name at args[0].
func readFlags(args []string) (*options, error) {
	opts, optind, err := getopt.Getopts(args, "tjnqhvo:l:d:s:r:")
	if err != nil {
		return nil, err
	}
	o := &options{lang: language.English}
	for _, opt := range opts {
		switch opt.Option {
		case 't':
			o.tokens = true
		case 'j':
			o.json = true
		case 'n':
			o.noColor = true
		case 'q':
			o.brief = true
		case 'h':
			o.help = true
		case 'v':
			o.version = true
		case 'o':
			o.output = opt.Value
		case 'l':
			tag, err := language.Parse(opt.Value)
			if err != nil {
				return nil, fmt.Errorf("invalid -l parameter: %w", err)
			}
			o.lang = tag
		case 'd':
			o.db = opt.Value
		case 's':
			o.addr = opt.Value
		case 'r':
			d, err := time.ParseDuration(opt.Value)
			if err != nil || d <= 0 {
				return nil, errors.New("invalid -r parameter: want a positive duration such as 72h")
			}
			o.retain = d
		}
	}
	o.files = args[optind:]
	if len(o.files) == 0 {
		o.files = []string{defaultInput}
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := readFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "numc: %v\n", err)
		usage(stderr)
		return exitUsage
	}

	switch {
	case o.help:
		usage(stdout)
		return exitOK
	case o.version:
		fmt.Fprintf(stdout, "numc version %s\n", Version)
		fmt.Fprintf(stdout, "go version %s\n", runtime.Version())
		fmt.Fprintf(stdout, "languages:")
		for _, tag := range parser.Languages() {
			fmt.Fprintf(stdout, " %s", tag)
		}
		fmt.Fprintln(stdout)
		return exitOK
	case o.addr != "":
		return serve(o)
	}
	return analyze(o, stdout, stderr)
}

// useColor reports whether the report goes to a color terminal.
func useColor(o *options, w io.Writer) bool {
	if o.noColor || o.output != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && f == os.Stdout && !color.NoColor
}

func analyze(o *options, stdout, stderr io.Writer) int {
	w := stdout
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
		defer f.Close()
		w = f
	}

	var st *store.Store
	if o.db != "" {
		var err error
		if st, err = store.Open(o.db); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
		defer st.Close()
	}

	textOpts := report.Options{
		Language:  o.lang,
		Color:     useColor(o, stdout),
		NoLexemes: o.brief,
		NoTree:    o.brief,
	}
	sess := session.New(session.Options{Language: o.lang})
	status := exitOK

	for i, name := range o.files {
		res, err := analyzeFile(sess, name)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}

		if len(o.files) > 1 && !o.json {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", name)
		}

		switch {
		case o.tokens:
			err = report.Tokens(w, res.Tokens)
			if hasInvalid(res.Tokens) {
				status = exitFail
			}
		case o.json:
			err = report.JSON(w, res)
		default:
			err = report.Text(w, res, textOpts)
		}
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
		if !o.tokens && !res.OK {
			status = exitFail
			if o.output != "" {
				fmt.Fprintf(stderr, "%s:%v\n", name, res.Err())
			}
		}

		if st != nil {
			if _, err := st.Save(sess.Language().String(), res); err != nil {
				fmt.Fprintf(stderr, "error: %v\n", err)
				return exitUsage
			}
		}
	}
	return status
}

func analyzeFile(sess *session.Session, name string) (*session.Result, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sess.Analyze(name, f)
}

func hasInvalid(toks []syntax.Token) bool {
	for _, tok := range toks {
		if tok.Is(syntax.Invalid) {
			return true
		}
	}
	return false
}

// serve runs the HTTP server until interrupted.
func serve(o *options) int {
	cfg := server.Config{Addr: o.addr, Retain: o.retain}
	if o.db != "" {
		st, err := store.Open(o.db)
		if err != nil {
			log.Println(err)
			return exitUsage
		}
		defer st.Close()
		cfg.Store = st
	}

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		log.Println(err)
		return exitFail
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		log.Printf("error in ListenAndServe: %v", err)
		return exitFail
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println(err)
		return exitFail
	}
	return exitOK
}
