package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/you-not-fish/numc/internal/session"
	"github.com/you-not-fish/numc/internal/syntax"
)

func analyze(src string) *session.Result {
	return session.New(session.Options{}).AnalyzeBytes("test", []byte(src))
}

func TestTextValid(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, analyze("int f() { int a; a=1; return a; }"), Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"LEXEME TABLE",
		"IDENTIFIER",
		"Total unique lexemes: 11",
		"PARSE TREE",
		"Function\n  Begin\n    Type: int\n    FunctionName: f\n",
		"INTERMEDIATE CODE\n=================\nint a 2 DECL\n1 a =\na RETURN\n",
		"Program is correct!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ERRORS") {
		t.Errorf("error section printed for a clean parse:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("colors printed although disabled")
	}
}

func TestTextErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, analyze("int f() { return a; }"), Options{NoLexemes: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"ERRORS",
		"line 1, col 18: return variable 'a' is not declared",
		"Errors found: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "LEXEME TABLE") {
		t.Error("lexeme table printed although omitted")
	}
}

func TestTextNoCode(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, analyze("int f() { }"), Options{NoTree: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<no operations>") {
		t.Errorf("missing empty-code marker:\n%s", out)
	}
	if strings.Contains(out, "PARSE TREE") {
		t.Error("tree printed although omitted")
	}
}

func TestTextMissingMarker(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, analyze("int f() { int a; a=1; return a; "), Options{NoLexemes: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "} <missing>") {
		t.Errorf("missing placeholder not marked:\n%s", buf.String())
	}
}

func TestTextRussian(t *testing.T) {
	var buf bytes.Buffer
	res := session.New(session.Options{Language: language.Russian}).AnalyzeBytes("ru", []byte("int f() { int a; a=1; return a; }"))
	if err := Text(&buf, res, Options{Language: language.Russian}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"ХЕШ-ТАБЛИЦА", "ПОСТФИКСНАЯ ЗАПИСЬ", "Программа корректна!"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestTextColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, analyze("int f() { return a; }"), Options{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[31m") {
		t.Errorf("errors not colored:\n%q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, analyze("int f() { int a; a=1; return a; }")); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !doc.OK || doc.Function != "f" || doc.Type != "int" {
		t.Errorf("header = %+v", doc)
	}
	if len(doc.Code) != 3 || doc.Code[2] != "a RETURN" {
		t.Errorf("code = %q", doc.Code)
	}
	if got := strings.Join(doc.Stream, " "); got != "int a 2 DECL 1 a = a RETURN" {
		t.Errorf("stream = %q", got)
	}
	if doc.Lexemes[0].Kind != "INT" || doc.Lexemes[0].Text != "int" {
		t.Errorf("first lexeme = %+v", doc.Lexemes[0])
	}
	if doc.Trace == nil || doc.Trace.Name != "Function" {
		t.Errorf("trace = %+v", doc.Trace)
	}
	if !strings.Contains(buf.String(), `"errors": []`) {
		t.Error("empty error list not encoded as []")
	}
}

func TestTokens(t *testing.T) {
	var buf bytes.Buffer
	toks := syntax.ScanAll([]byte("int x;"), nil)
	if err := Tokens(&buf, toks); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2+len(toks) {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "1:1") || !strings.Contains(lines[2], "INT") || !strings.Contains(lines[2], `"int"`) {
		t.Errorf("first token line = %q", lines[2])
	}
	if !strings.Contains(lines[len(lines)-1], "END_OF_INPUT") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}
