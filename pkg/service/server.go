// Package service exposes stored tables and their structural edits over
// HTTP.
//
// Routes (all bodies JSON unless noted):
//
//	GET    /healthz
//	POST   /tables                   create from a definition (?format=toml)
//	GET    /tables                   list stored tables
//	GET    /tables/{id}              table metadata
//	PUT    /tables/{id}              replace the definition
//	DELETE /tables/{id}
//	GET    /tables/{id}/definition   stored definition (?format=json|toml)
//	GET    /tables/{id}/summary      text summary
//	GET    /tables/{id}/render       rendered artifact (?format=svg&width=&height=)
//	POST   /tables/{id}/transpose
//	POST   /tables/{id}/subset       {"rows": "1-2", "cols": "a,b"}
//	PUT    /tables/{id}/dimnames     {"rownames": [...], "colnames": [...]}
//	POST   /tables/{id}/trim
//	POST   /tables/{id}/normalize-z
//
// Edits load the table, apply the operation and save it back while holding
// a per-id lock, so concurrent edits of one table are serialized. Adding
// ?copy=true stores the result as a new table and leaves the source alone.
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with the
// status derived from the error code (see [StatusCode]).
package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridtable/pkg/pipeline"
	"github.com/matzehuels/gridtable/pkg/store"
)

// DefaultMaxBody limits request bodies.
const DefaultMaxBody = 1 << 20

// Config holds listener settings. It is loaded from the [server] table of
// the serve config file.
type Config struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	MaxBody         int64         `toml:"max_body"`
}

// ValidateAndSetDefaults fills in zero fields.
func (c *Config) ValidateAndSetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 60 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	if c.MaxBody <= 0 {
		c.MaxBody = DefaultMaxBody
	}
}

// Server serves the table API.
type Server struct {
	store   store.Store
	runner  *pipeline.Runner
	logger  *log.Logger
	locks   *keyedMutex
	maxBody int64
	router  chi.Router
}

// New builds a server. A nil runner renders without caching; a nil logger
// uses log.Default().
func New(s store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	srv := &Server{
		store:   s,
		runner:  runner,
		logger:  logger,
		locks:   newKeyedMutex(),
		maxBody: DefaultMaxBody,
	}
	srv.router = srv.routes()
	return srv
}

// SetMaxBody changes the request body limit.
func (s *Server) SetMaxBody(n int64) {
	if n > 0 {
		s.maxBody = n
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/tables", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleReplace)
			r.Delete("/", s.handleDelete)
			r.Get("/definition", s.handleDefinition)
			r.Get("/summary", s.handleSummary)
			r.Get("/render", s.handleRender)
			r.Post("/transpose", s.handleTranspose)
			r.Post("/subset", s.handleSubset)
			r.Put("/dimnames", s.handleDimnames)
			r.Post("/trim", s.handleTrim)
			r.Post("/normalize-z", s.handleNormalizeZ)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	cfg.ValidateAndSetDefaults()
	s.SetMaxBody(cfg.MaxBody)

	hs := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
