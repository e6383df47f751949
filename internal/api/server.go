package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bryanchriswhite/i3windows/internal/logger"
	"github.com/bryanchriswhite/i3windows/internal/output"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const shutdownTimeout = 5 * time.Second

// Server mirrors the rendered bar line over HTTP
type Server struct {
	router   *mux.Router
	lines    *output.Broadcaster
	upgrader websocket.Upgrader
	version  string
}

// NewServer creates a new API server reading from lines
func NewServer(lines *output.Broadcaster, version string) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		lines:   lines,
		version: version,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/line", s.handleGetLine).Methods("GET")
	api.HandleFunc("/line/stream", s.handleLineStream)
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.WithComponent("api")
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("Line mirror listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	}
}

// Start listens on addr and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// HTTP Handlers

func (s *Server) handleGetLine(w http.ResponseWriter, r *http.Request) {
	line, ok := s.lines.Last()
	if !ok {
		http.Error(w, "No line rendered yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(line)
}

func (s *Server) handleLineStream(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("api")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	updates := s.lines.Subscribe()
	defer s.lines.Unsubscribe(updates)

	// the reader notices the peer going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if current, ok := s.lines.Last(); ok {
		if err := conn.WriteJSON(current); err != nil {
			log.Debug().Err(err).Msg("WebSocket write failed")
			return
		}
	}

	for {
		select {
		case line, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(line); err != nil {
				log.Debug().Err(err).Msg("WebSocket write failed")
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, rendered := s.lines.Last()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "healthy",
		"version":  s.version,
		"rendered": rendered,
	})
}
