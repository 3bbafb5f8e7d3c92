// Package http is the boundary HTTP API: record creation and lookups that
// populate the store before any websocket command references them, plus the
// websocket upgrade endpoint itself.
package http

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fictionary/internal/app"
	"fictionary/internal/config"
	"fictionary/internal/store"
)

// Server represents the HTTP server
type Server struct {
	server    *http.Server
	store     *store.Store
	registry  *app.Registry
	broadcast *app.Broadcaster
	config    *config.Config
	logger    *slog.Logger
	startedAt time.Time
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, st *store.Store, registry *app.Registry, broadcast *app.Broadcaster, wsHandler http.Handler, logger *slog.Logger) *Server {
	s := &Server{
		store:     st,
		registry:  registry,
		broadcast: broadcast,
		config:    cfg,
		logger:    logger,
		startedAt: time.Now(),
	}

	r := chi.NewRouter()
	s.setupRoutes(r, wsHandler)

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.middleware(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(r chi.Router, wsHandler http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Get("/games/code/{code}", s.handleGameByCode)

		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Post("/players", s.handleCreatePlayer)
			r.Get("/players", s.handleListPlayers)
			r.Get("/state", s.handleGameState)
			r.Get("/qr", s.handleQR)
		})

		r.Get("/health", s.handleHealth)
		r.Get("/stats", s.handleStats)
	})

	r.Get("/ws", wsHandler.ServeHTTP)
}

// middleware wraps the handler with CORS headers and request logging
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
		)
	})
}

// Start starts the HTTP server, with TLS when a certificate is configured
func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.server.Addr, "scheme", s.config.Scheme())
	if s.config.Scheme() == "https" {
		return s.server.ListenAndServeTLS(s.config.TLSCert, s.config.TLSKey)
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for websocket upgrades
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Flush implements http.Flusher
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
