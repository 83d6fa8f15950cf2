package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stationviz/pkg/backdrop"
	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/dataset"
	"github.com/matzehuels/stationviz/pkg/pipeline"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Defaults for [Config].
const (
	DefaultWaitTimeout     = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config configures a [Server].
type Config struct {
	Source dataset.Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Build holds the layout options used when a session is created.
	// StationID is ignored.
	Build pipeline.Options

	// Network is passed to [visgraph.NetworkOptions] for the options route.
	Network visgraph.NetworkConfig

	// ResolveTimeout bounds pending host requests in every session.
	ResolveTimeout time.Duration

	// WaitTimeout caps ?wait=1 on the events route.
	WaitTimeout time.Duration

	// BackdropDir serves floor plans named by relative paths. Empty means
	// only http(s) floor plans are drawn.
	BackdropDir string
}

// Server serves station sessions over HTTP.
type Server struct {
	cfg      Config
	logger   *log.Logger
	runner   *pipeline.Runner
	backdrop *backdrop.Loader

	// base outlives requests; session event loops run under it.
	base   context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[int]*session
	wg       sync.WaitGroup
}

// New returns a server for cfg. Call Close to stop every session.
func New(cfg Config) *Server {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}
	base, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		runner:   pipeline.NewRunner(cfg.Cache, cfg.Keyer, cfg.Logger),
		backdrop: &backdrop.Loader{Cache: cfg.Cache, Keyer: cfg.Keyer, Logger: cfg.Logger, Root: cfg.BackdropDir},
		base:     base,
		cancel:   cancel,
		sessions: make(map[int]*session),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/stations/{id}", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/options", s.handleOptions)
		r.Post("/events", s.handleEvent)
		r.Get("/positions", s.handlePositions)
	})
	return r
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully
// and closes every session.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return err
}

// Close stops every session event loop and waits for them to exit.
func (s *Server) Close() error {
	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.bridge.Close()
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
	return nil
}
