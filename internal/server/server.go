// Package server binds the analytics engine to its HTTP surface.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/edibulb/glucocoach/internal/domain"
	"github.com/edibulb/glucocoach/internal/logger"
)

// Server is the HTTP front of the engine.
type Server struct {
	httpServer *http.Server
	logs       domain.LogService
	summaries  domain.SummaryService
}

// New wires the services into a routed HTTP server.
func New(port string, logs domain.LogService, summaries domain.SummaryService) *Server {
	s := &Server{logs: logs, summaries: summaries}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/logs", s.handleCreateLog)
	mux.HandleFunc("GET /api/logs", s.handleListLogs)
	mux.HandleFunc("DELETE /api/logs", s.handleDeleteLogs)
	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handlePutProfile)
	mux.HandleFunc("GET /api/summary/weekly/raw", s.handleWeeklyRaw)
	mux.HandleFunc("GET /api/summary/weekly", s.handleWeekly)
	mux.HandleFunc("GET /api/summary/history", s.handleHistory)
	mux.HandleFunc("POST /api/coach", s.handleCoach)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           withMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the context is canceled, then drains connections.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
