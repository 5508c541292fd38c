// Package server serves filled paradigms over HTTP.
//
// Routes:
//
//	GET /healthz                                      liveness and resource counts
//	GET /api/layouts                                  loaded (word class, size) pairs
//	GET /api/paradigm?lemma=&wc=&size=&mode=&format=  a filled paradigm
//	GET /api/analyses?lemma=&wc=                      every analysis of a lemma
//	GET /api/inflections?lemma=&wc=                   every generated form of a lemma
//
// Errors are JSON objects {"error": message, "code": code} with a status
// derived from the error code. Every response carries an X-Request-ID.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/matzehuels/paradigms/pkg/cache"
	"github.com/matzehuels/paradigms/pkg/engine"
	"github.com/matzehuels/paradigms/pkg/errors"
)

// ShutdownTimeout bounds how long in-flight requests may take once the
// server is asked to stop.
const ShutdownTimeout = 10 * time.Second

// Options configures [New].
type Options struct {
	Engine *engine.Engine

	// Cache stores rendered responses. Nil disables response caching.
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration

	// CORSOrigins lists the origins allowed to call the API from a browser.
	// Empty allows every origin.
	CORSOrigins []string

	Version string
	Logger  *log.Logger
}

// Server is the HTTP API.
type Server struct {
	engine  *engine.Engine
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	version string
	logger  *log.Logger
	handler http.Handler
}

// New builds the router.
func New(opts Options) (*Server, error) {
	if opts.Engine == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "server needs an engine")
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.TTL == 0 {
		opts.TTL = cache.TTLResponse
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Server{
		engine:  opts.Engine,
		cache:   opts.Cache,
		keyer:   opts.Keyer,
		ttl:     opts.TTL,
		version: opts.Version,
		logger:  opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		ExposedHeaders: []string{headerRequestID, headerCache},
	}).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", Code: string(errors.ErrCodeInvalidInput)})
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/layouts", s.handleLayouts)
		r.Get("/paradigm", s.cached(s.handleParadigm))
		r.Get("/analyses", s.cached(s.handleAnalyses))
		r.Get("/inflections", s.cached(s.handleInflections))
	})

	s.handler = r
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
