package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/interfaces"
	"github.com/artpar/menucms/internal/logger"
	"github.com/artpar/menucms/internal/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultAddr            = ":9876"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 5 * time.Second

	// maxBodyBytes bounds request bodies; menus are small documents.
	maxBodyBytes = 1 << 20
)

// Server exposes an editing session over HTTP. The editor is not safe for
// concurrent use, so every request that touches it holds mu.
type Server struct {
	editor *app.Editor
	mu     sync.Mutex

	router          *mux.Router
	events          *Hub
	registry        *prometheus.Registry
	logger          *slog.Logger
	addr            string
	shutdownTimeout time.Duration

	runMu   sync.RWMutex
	running bool
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithRegistry sets the prometheus registry served on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithShutdownTimeout sets the grace period for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// New creates a server for editor. It registers editor hooks that publish
// the session status to websocket subscribers after every load, edit and
// save.
func New(editor *app.Editor, opts ...Option) *Server {
	s := &Server{
		editor:          editor,
		addr:            DefaultAddr,
		logger:          logger.Discard(),
		shutdownTimeout: DefaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	s.events = NewHub(s.logger)
	for _, hook := range []string{interfaces.HookPostMutation, interfaces.HookPostLoad, interfaces.HookPostSave} {
		name := hook
		editor.RegisterHook(name, func(ctx context.Context, data any) (any, error) {
			s.events.Broadcast(Event{Type: name, Status: editor.Status()})
			return data, nil
		})
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler(s.registry)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/events", s.handleEvents).Methods("GET")
	api.HandleFunc("/menu", s.handleGetMenu).Methods("GET")
	api.HandleFunc("/menu/tree", s.handleGetTree).Methods("GET")
	api.HandleFunc("/menu/save", s.handleSave).Methods("POST")
	api.HandleFunc("/menu/reload", s.handleReload).Methods("POST")
	api.HandleFunc("/menu/items", s.handleCreateItem).Methods("POST")
	api.HandleFunc("/menu/items/{id}", s.handleUpdateItem).Methods("PATCH")
	api.HandleFunc("/menu/items/{id}", s.handleDeleteItem).Methods("DELETE")
	api.HandleFunc("/menu/items/{id}/move", s.handleMoveItem).Methods("POST")
	api.HandleFunc("/menu/items/{id}/duplicate", s.handleDuplicateItem).Methods("POST")

	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// IsRunning reports whether the server is accepting connections.
func (s *Server) IsRunning() bool {
	s.runMu.RLock()
	defer s.runMu.RUnlock()
	return s.running
}

// Serve listens on the configured address and blocks until ctx is canceled,
// then shuts down gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	s.logger.Info("starting server", "addr", listener.Addr().String())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.runMu.Lock()
		s.running = true
		s.runMu.Unlock()

		defer func() {
			s.runMu.Lock()
			s.running = false
			s.runMu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down server", "grace_period", s.shutdownTimeout)
		s.events.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		}
		return nil
	})

	return g.Wait()
}
