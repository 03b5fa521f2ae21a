package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Server runs the HTTP listener and releases resources on shutdown.
type Server struct {
	http    *http.Server
	logger  *zap.Logger
	closers []func() error
}

// New wraps a handler in an http.Server listening on port. Closers run after the listener stops.
func New(port int, h http.Handler, logger *zap.Logger, closers ...func() error) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger:  logger,
		closers: closers,
	}
}

// Run serves until the listener fails or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.http.Addr))
		serverErrors <- s.http.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	case sig := <-signals:
		s.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops accepting connections, drains in-flight requests and runs the closers.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("http shutdown failed", zap.Error(err))
		errs = append(errs, err)
	}
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Error("resource close failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	s.logger.Info("server stopped")
	return errors.Join(errs...)
}
