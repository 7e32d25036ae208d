package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/existflow/irongantt/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// maxSnapshotSize bounds request bodies on PUT
const maxSnapshotSize = "8M"

// Server is the snapshot server
type Server struct {
	store SnapshotStore
	token string
	echo  *echo.Echo
}

// New creates a server over store. An empty token disables auth.
func New(store SnapshotStore, token string) *Server {
	s := &Server{
		store: store,
		token: token,
	}
	if token == "" {
		logger.Warn("Server token not set, snapshot routes are unauthenticated")
	}

	s.setupEcho()

	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")
	api.Use(s.authMiddleware)
	api.GET("/snapshots/:key", s.handleGetSnapshot)
	api.PUT("/snapshots/:key", s.handlePutSnapshot, middleware.BodyLimit(maxSnapshotSize))
	api.GET("/snapshots/:key/revisions", s.handleListRevisions)

	s.echo = e
}

// Close closes the store
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server and blocks until it stops. A graceful
// Shutdown is not reported as an error.
func (s *Server) Start(addr string) error {
	logger.Info("Snapshot server listening", logger.F("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		logger.Error("Health check failed", logger.F("error", err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
