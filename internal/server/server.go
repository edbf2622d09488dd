// Package server provides the HTTP server for the plantid API and the
// browser capture page.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlabs/plantid/internal/server/handlers"
	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/logging"
)

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Identifier handlers.Identifier
	Checks     []handlers.Check
	Build      handlers.BuildInfo
	Logger     *zerolog.Logger
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	deps      Deps
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(deps Deps, cfg Config) (*Server, error) {
	if deps.Identifier == nil {
		return nil, &errors.ConfigError{Component: "server", Message: "identifier is required"}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}

	defaults := DefaultConfig()
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = defaults.PathPrefix
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = defaults.MaxBodyBytes
	}

	deps.Logger.Debug().
		Str("prefix", cfg.PathPrefix).
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Bool("cors", cfg.CORSEnabled).
		Bool("web", cfg.WebEnabled).
		Msg("Server instance created")

	return &Server{
		deps:      deps,
		logger:    deps.Logger,
		config:    cfg,
		startTime: time.Now(),
	}, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// HTTPServer returns an *http.Server for the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
}

// Run serves on the configured address until ctx is cancelled, then drains
// in-flight requests for up to constants.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := s.HTTPServer()
	serverErr := make(chan error, 1)

	go func() {
		s.logger.Info().
			Str("addr", ln.Addr().String()).
			Msg("HTTP server listening")

		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received via context")

		// The parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		s.logger.Info().Dur("uptime", time.Since(s.startTime)).Msg("Server stopped gracefully")
		return nil
	}
}
