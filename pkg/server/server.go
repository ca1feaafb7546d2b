package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cpsdqs/birb/pkg/host"
)

// BackendFactory builds the rendering backend for a new session.
type BackendFactory func(logger *slog.Logger) host.Backend

// SessionHook is called after a producer session finishes its
// handshake, before the first patch frame is processed.
type SessionHook func(*Session)

// Server accepts producer connections and hosts one view-tree registry
// per session.
type Server struct {
	config   *ServerConfig
	upgrader websocket.Upgrader

	newBackend BackendFactory
	onSession  SessionHook

	mu       sync.Mutex
	sessions map[*Session]struct{}
	surfaces map[string]*Session

	httpServer *http.Server
	metrics    *metrics
	tracer     trace.Tracer
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithRegisterer sets the Prometheus registerer for server metrics.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Server) { s.metrics = newMetrics(reg) }
}

// WithSessionHook sets a hook invoked for each new session.
func WithSessionHook(hook SessionHook) Option {
	return func(s *Server) { s.onSession = hook }
}

// New creates a server. Sessions get their backend from newBackend; a
// nil factory is invalid and panics on the first connection.
func New(config *ServerConfig, newBackend BackendFactory, opts ...Option) *Server {
	config = config.withDefaults()

	s := &Server{
		config:     config,
		newBackend: newBackend,
		sessions:   make(map[*Session]struct{}),
		surfaces:   make(map[string]*Session),
		tracer:     otel.Tracer("birb/server"),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "server")
	}
	if s.metrics == nil {
		s.metrics = newMetrics(prometheus.DefaultRegisterer)
	}
	return s
}

// Router returns the HTTP handler: the producer endpoint plus health
// and metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/birb/live", s.handleLive)
	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. On cancellation it shuts down gracefully and closes
// all producer sessions.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s.Router(),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("listening", "address", s.config.Address)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)

	for _, sess := range s.snapshotSessions() {
		sess.Close()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Sessions returns the currently connected sessions.
func (s *Server) Sessions() []*Session {
	return s.snapshotSessions()
}

func (s *Server) snapshotSessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// track registers a session; it reports false when the session limit is
// reached.
func (s *Server) track(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.MaxSessions > 0 && len(s.sessions) >= s.config.MaxSessions {
		return false
	}
	s.sessions[sess] = struct{}{}
	s.metrics.sessionsActive.Inc()
	s.metrics.sessionsTotal.Inc()
	return true
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess]; ok {
		delete(s.sessions, sess)
		s.metrics.sessionsActive.Dec()
	}
	if owner, ok := s.surfaces[sess.surface]; ok && owner == sess {
		delete(s.surfaces, sess.surface)
	}
}

// claimSurface reserves a surface name for sess. Each surface is driven
// by at most one producer at a time.
func (s *Server) claimSurface(surface string, sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.surfaces[surface]; taken {
		return false
	}
	s.surfaces[surface] = sess
	sess.surface = surface
	return true
}
