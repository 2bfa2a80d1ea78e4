// Package server implements the /analyze backend and serves the web form.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yildizm/sentiscope/internal/classifier"
	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/config"
	"github.com/yildizm/sentiscope/internal/logger"
)

// Service identifies this backend in /health.
const Service = "sentiment-analyzer"

// Server is the HTTP backend.
type Server struct {
	cfg        config.ServerConfig
	classifier classifier.Classifier
	log        *logger.Logger
	metrics    *Metrics
	engine     *gin.Engine

	// formRequester backs the web form's analyzer
	formRequester client.Requester
}

// Option customizes a Server.
type Option func(*Server)

// WithFormRequester makes the web form submit through r instead of the
// in-process classifier.
func WithFormRequester(r client.Requester) Option {
	return func(s *Server) {
		s.formRequester = r
	}
}

// WithMetrics replaces the server's metrics collectors.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a server that classifies with c.
func New(cfg config.ServerConfig, c classifier.Classifier, log *logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.Discard()
	}

	s := &Server{
		cfg:        cfg,
		classifier: c,
		log:        log.WithComponent("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.formRequester == nil {
		s.formRequester = &localRequester{server: s}
	}

	s.engine = gin.New()
	s.engine.Use(
		RequestID(),
		Logging(s.log, s.metrics),
		Recovery(s.log),
		CORS(cfg.AllowedOrigins),
	)
	s.registerRoutes()

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s with classifier %s", ln.Addr().String(), s.classifier.Name())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
