// Package server exposes the analyzer over HTTP.
//
//	POST /analyze?lang=ru   analyze the request body, respond with the JSON report
//	GET  /runs?limit=20     recent stored runs, newest first
//	GET  /runs?hash=H&lang=ru  latest stored run of the source with BLAKE3 digest H
//	GET  /stats             expvar counters
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/segmentio/fasthash/fnv1a"
	"github.com/tevino/abool/v2"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/expvarhandler"
	"golang.org/x/text/language"

	"github.com/you-not-fish/numc/internal/report"
	"github.com/you-not-fish/numc/internal/session"
	"github.com/you-not-fish/numc/internal/store"
)

// Various counters, served on /stats.
var (
	requests    = expvar.NewInt("numcRequests")
	analyses    = expvar.NewInt("numcAnalyses")
	cacheHits   = expvar.NewInt("numcCacheHits")
	failedRuns  = expvar.NewInt("numcFailedRuns")
	prunedRuns  = expvar.NewInt("numcPrunedRuns")
	storeErrors = expvar.NewInt("numcStoreErrors")
)

const (
	defaultCacheSize = 1024
	defaultRunsLimit = 20
	maxRunsLimit     = 1000
	maxBodySize      = 1 << 20
)

// Config configures a Server.
type Config struct {
	Addr      string
	Store     *store.Store  // run history; nil disables /runs and pruning
	Retain    time.Duration // how long runs are kept, 0 keeps them forever
	CacheSize int           // number of cached responses, 0 for the default
}

// Server serves analyses over HTTP.
type Server struct {
	cfg Config
	srv *fasthttp.Server

	mu    sync.Mutex
	cache map[uint64][]byte // response bodies keyed by language and source

	sched   gocron.Scheduler
	pruning *abool.AtomicBool
}

// New creates a Server. Call Start to schedule pruning and
// ListenAndServe to accept requests.
func New(cfg Config) *Server {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	s := &Server{
		cfg:     cfg,
		cache:   make(map[uint64][]byte),
		pruning: abool.New(),
	}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "numc",
		ReadTimeout:        time.Minute,
		WriteTimeout:       time.Minute,
		MaxRequestBodySize: maxBodySize,
	}
	return s
}

// Start schedules the pruning job if the server has a store and a
// retention period.
func (s *Server) Start() error {
	if s.cfg.Store == nil || s.cfg.Retain <= 0 {
		return nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	every := s.cfg.Retain / 4
	if every < time.Minute {
		every = time.Minute
	}
	job, err := sched.NewJob(gocron.DurationJob(every), gocron.NewTask(s.prune))
	if err != nil {
		return err
	}
	log.Printf("pruning runs older than %s every %s (job %s)", s.cfg.Retain, every, job.ID())
	sched.Start()
	s.sched = sched
	return nil
}

// ListenAndServe accepts requests until the server is shut down.
func (s *Server) ListenAndServe() error {
	log.Printf("Starting HTTP server on %q", s.cfg.Addr)
	return s.srv.ListenAndServe(s.cfg.Addr)
}

// Shutdown stops the pruning job and gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.sched != nil {
		if err := s.sched.Shutdown(); err != nil {
			log.Println(err)
		}
	}
	return s.srv.ShutdownWithContext(ctx)
}

// Handler routes a request.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	requests.Add(1)
	switch string(ctx.Path()) {
	case "/analyze":
		s.handleAnalyze(ctx)
	case "/runs":
		s.handleRuns(ctx)
	case "/stats":
		expvarhandler.ExpvarHandler(ctx)
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

func (s *Server) handleAnalyze(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}
	tag := language.English
	if lang := ctx.QueryArgs().Peek("lang"); len(lang) > 0 {
		var err error
		if tag, err = language.Parse(string(lang)); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusBadRequest)
			return
		}
	}
	src := ctx.PostBody()

	key := fnv1a.AddBytes64(fnv1a.HashString64(tag.String()), src)
	if body, ok := s.cached(key); ok {
		cacheHits.Add(1)
		ctx.Response.Header.Set("X-Cache", "hit")
		ctx.Success("application/json", body)
		return
	}

	res := session.New(session.Options{Language: tag}).AnalyzeBytes("request", src)
	analyses.Add(1)
	if !res.OK {
		failedRuns.Add(1)
	}

	var buf bytes.Buffer
	if err := report.JSON(&buf, res); err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	s.remember(key, body)

	if s.cfg.Store != nil {
		if _, err := s.cfg.Store.Save(tag.String(), res); err != nil {
			storeErrors.Add(1)
			log.Println(err)
		}
	}
	ctx.Response.Header.Set("X-Cache", "miss")
	ctx.Success("application/json", body)
}

func (s *Server) handleRuns(ctx *fasthttp.RequestCtx) {
	if s.cfg.Store == nil {
		ctx.Error("run history is disabled", fasthttp.StatusNotFound)
		return
	}
	if hash := ctx.QueryArgs().Peek("hash"); len(hash) > 0 {
		s.handleRun(ctx, string(hash))
		return
	}
	limit, err := ctx.QueryArgs().GetUint("limit")
	if err != nil || limit == 0 {
		limit = defaultRunsLimit
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}
	runs, err := s.cfg.Store.Recent(limit)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	buf, err := json.Marshal(runs)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.Success("application/json", buf)
}

func (s *Server) handleRun(ctx *fasthttp.RequestCtx, hash string) {
	lang := language.English
	if l := ctx.QueryArgs().Peek("lang"); len(l) > 0 {
		var err error
		if lang, err = language.Parse(string(l)); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusBadRequest)
			return
		}
	}
	run, err := s.cfg.Store.Find(hash, lang.String())
	if errors.Is(err, store.ErrNotFound) {
		ctx.Error(err.Error(), fasthttp.StatusNotFound)
		return
	}
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	buf, err := json.Marshal(run)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.Success("application/json", buf)
}

func (s *Server) cached(key uint64) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.cache[key]
	return body, ok
}

// remember caches a response body. A full cache is emptied first.
func (s *Server) remember(key uint64, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= s.cfg.CacheSize {
		clear(s.cache)
	}
	s.cache[key] = body
}

// prune deletes expired runs. A call made while another one runs returns at once.
func (s *Server) prune() {
	if !s.pruning.SetToIf(false, true) {
		return
	}
	defer s.pruning.UnSet()

	n, err := s.cfg.Store.Prune(time.Now().Add(-s.cfg.Retain))
	if err != nil {
		storeErrors.Add(1)
		log.Println(err)
		return
	}
	if n > 0 {
		prunedRuns.Add(n)
		log.Printf("pruned %d runs", n)
	}
}
