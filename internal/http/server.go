package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tasklist/internal/middleware"
	"tasklist/internal/settings"
	"tasklist/internal/tasklist"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, list *tasklist.List, settingsStore *settings.Store, auth *middleware.Auth) *Server {
	router := NewRouter(list, settingsStore)

	// Middleware chain: recovery -> logging -> auth -> router
	chain := middleware.Recovery(logger)(middleware.Logging(logger)(auth.Middleware(router)))

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: chain,
			// No WriteTimeout: the events endpoint holds its response
			// open for the lifetime of the client connection.
			ReadTimeout: 10 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
