package server

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/you-not-fish/numc/internal/report"
	"github.com/you-not-fish/numc/internal/store"
)

func request(s *Server, method, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	ctx.Request.SetBodyString(body)
	s.Handler(ctx)
	return ctx
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "numc.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAnalyze(t *testing.T) {
	s := New(Config{})
	ctx := request(s, "POST", "/analyze", "int f() { int a; a=1; return a; }")
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d: %s", code, ctx.Response.Body())
	}
	var doc report.Document
	if err := json.Unmarshal(ctx.Response.Body(), &doc); err != nil {
		t.Fatal(err)
	}
	if !doc.OK || len(doc.Code) != 3 {
		t.Errorf("doc = %+v", doc)
	}
	if got := string(ctx.Response.Header.Peek("X-Cache")); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
}

func TestAnalyzeCache(t *testing.T) {
	s := New(Config{})
	src := "int f() { return a; }"
	first := request(s, "POST", "/analyze", src)
	second := request(s, "POST", "/analyze", src)
	if got := string(second.Response.Header.Peek("X-Cache")); got != "hit" {
		t.Errorf("X-Cache = %q, want hit", got)
	}
	if string(first.Response.Body()) != string(second.Response.Body()) {
		t.Error("cached body differs")
	}

	ru := request(s, "POST", "/analyze?lang=ru", src)
	if got := string(ru.Response.Header.Peek("X-Cache")); got != "miss" {
		t.Errorf("other language served from cache")
	}
	if !strings.Contains(string(ru.Response.Body()), "не объявлена") {
		t.Errorf("body not translated: %s", ru.Response.Body())
	}
}

func TestAnalyzeCacheBound(t *testing.T) {
	s := New(Config{CacheSize: 2})
	request(s, "POST", "/analyze", "int f() { }")
	request(s, "POST", "/analyze", "int g() { }")
	request(s, "POST", "/analyze", "int h() { }")
	if n := len(s.cache); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}
}

func TestAnalyzeBadRequests(t *testing.T) {
	s := New(Config{})
	if code := request(s, "GET", "/analyze", "").Response.StatusCode(); code != fasthttp.StatusMethodNotAllowed {
		t.Errorf("GET /analyze status = %d", code)
	}
	if code := request(s, "POST", "/analyze?lang=!!", "int f() { }").Response.StatusCode(); code != fasthttp.StatusBadRequest {
		t.Errorf("bad lang status = %d", code)
	}
	if code := request(s, "GET", "/nowhere", "").Response.StatusCode(); code != fasthttp.StatusNotFound {
		t.Errorf("unknown path status = %d", code)
	}
	if code := request(s, "GET", "/runs", "").Response.StatusCode(); code != fasthttp.StatusNotFound {
		t.Errorf("/runs without store status = %d", code)
	}
}

func TestRuns(t *testing.T) {
	s := New(Config{Store: openStore(t)})
	request(s, "POST", "/analyze", "int f() { int a; a=1; return a; }")
	request(s, "POST", "/analyze", "int g() { }")

	ctx := request(s, "GET", "/runs?limit=1", "")
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d: %s", code, ctx.Response.Body())
	}
	var runs []store.Run
	if err := json.Unmarshal(ctx.Response.Body(), &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Function != "g" || runs[0].OK {
		t.Errorf("runs = %+v", runs)
	}
}

func TestRunByHash(t *testing.T) {
	s := New(Config{Store: openStore(t)})
	src := "int f() { return a; }"
	request(s, "POST", "/analyze?lang=ru", src)
	request(s, "POST", "/analyze", "int g() { }")

	ctx := request(s, "GET", "/runs?hash="+store.Hash([]byte(src))+"&lang=ru", "")
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d: %s", code, ctx.Response.Body())
	}
	var run store.Run
	if err := json.Unmarshal(ctx.Response.Body(), &run); err != nil {
		t.Fatal(err)
	}
	if run.Function != "f" || run.Language != "ru" || run.OK || len(run.Diagnostics) != run.ErrorCount {
		t.Errorf("run = %+v", run)
	}

	if code := request(s, "GET", "/runs?hash="+store.Hash([]byte(src)), "").Response.StatusCode(); code != fasthttp.StatusNotFound {
		t.Errorf("run in another language: status = %d", code)
	}
	if code := request(s, "GET", "/runs?hash=ab&lang=!!", "").Response.StatusCode(); code != fasthttp.StatusBadRequest {
		t.Errorf("bad lang status = %d", code)
	}
}

func TestBodyLimit(t *testing.T) {
	s := New(Config{})
	if got := s.srv.MaxRequestBodySize; got != maxBodySize {
		t.Errorf("MaxRequestBodySize = %d, want %d", got, maxBodySize)
	}
}

func TestAnalyzeDeepNesting(t *testing.T) {
	s := New(Config{})
	src := "int f() { int a; a = " + strings.Repeat("(", 100000) + "a" + strings.Repeat(")", 100000) + "; return a; }"
	ctx := request(s, "POST", "/analyze", src)
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var doc report.Document
	if err := json.Unmarshal(ctx.Response.Body(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.OK || len(doc.Errors) != 1 {
		t.Errorf("errors = %+v", doc.Errors)
	}
}

func TestStats(t *testing.T) {
	s := New(Config{})
	request(s, "POST", "/analyze", "int f() { }")
	ctx := request(s, "GET", "/stats", "")
	if !strings.Contains(string(ctx.Response.Body()), "numcAnalyses") {
		t.Errorf("stats = %s", ctx.Response.Body())
	}
}

func TestPrune(t *testing.T) {
	st := openStore(t)
	s := New(Config{Store: st, Retain: -time.Hour})
	request(s, "POST", "/analyze", "int f() { }")

	s.prune()
	runs, err := st.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("%d runs left after pruning", len(runs))
	}
	if s.pruning.IsSet() {
		t.Error("prune guard still set")
	}
}

func TestStartWithoutStore(t *testing.T) {
	s := New(Config{Retain: time.Hour})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if s.sched != nil {
		t.Error("scheduler started without a store")
	}
}
