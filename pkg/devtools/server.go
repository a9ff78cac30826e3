package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/minivue"
	"github.com/vango-dev/minivue/pkg/scheduler"
)

// MaxStateBytes bounds the body of POST /state.
const MaxStateBytes = 1 << 20

// Server exposes one app over HTTP.
type Server struct {
	app  *minivue.App
	loop *scheduler.Loop

	path           string
	allowedOrigins []string
	gatherer       prometheus.Gatherer
	logger         *slog.Logger

	router   chi.Router
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}

	stopObserving func()

	// upgraded runs between the websocket upgrade and client
	// registration; tests use it to interleave mutations.
	upgraded func()
}

// Option configures a Server.
type Option func(*Server)

// WithPath mounts every route under prefix.
func WithPath(prefix string) Option {
	return func(s *Server) { s.path = prefix }
}

// WithAllowedOrigins lists the origins allowed to open /ws. "*" allows any.
// With no origins configured only same-host requests are accepted.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for app. Every access to app goes through loop.
// Call New before loop.Run starts.
func New(app *minivue.App, loop *scheduler.Loop, opts ...Option) *Server {
	s := &Server{
		app:      app,
		loop:     loop,
		path:     "/",
		gatherer: prometheus.DefaultGatherer,
		logger:   app.Logger(),
		clients:  make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if clean, err := CleanPrefix(s.path); err != nil {
		s.logger.Warn("devtools prefix rejected, serving at /", "path", s.path, "error", err)
		s.path = "/"
	} else {
		s.path = clean
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.stopObserving = app.Host().Observe(s.broadcastOp)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	mount := func(r chi.Router) {
		r.With(middleware.NoCache).Get("/tree", s.handleTree)
		r.With(middleware.NoCache).Get("/tree.json", s.handleTreeJSON)
		r.Get("/ws", s.handleWebSocket)
		r.Post("/state", s.handleState)
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	if s.path == "/" {
		mount(r)
	} else {
		r.Route(s.path, mount)
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("devtools listening", "addr", addr, "path", s.path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close disconnects every websocket client and stops observing the host.
func (s *Server) Close() {
	// The observer map belongs to the loop goroutine. A stopped loop never
	// records again, so dropping the observer there is unnecessary.
	_ = s.loop.Dispatch(s.stopObserving)

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.conn.Close()
		delete(s.clients, c)
		close(c.send)
	}
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// checkOrigin rejects cross-origin websocket requests unless allowed.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	if len(s.allowedOrigins) > 0 {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// call runs fn on the loop and maps loop failures to HTTP errors.
func (s *Server) call(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := s.loop.Call(r.Context(), fn); err != nil {
		s.logger.Warn("devtools loop call failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return false
	}
	return true
}
