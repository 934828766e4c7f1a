// Package api provides the JSON-over-HTTP surface of the QA service.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
	"github.com/custodia-labs/ragqa/internal/logger"
)

// ErrMissingQAService is returned when the QA service is not provided.
var ErrMissingQAService = errors.New("api: QA service is required")

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Config configures a new Server.
type Config struct {
	QA driving.QAService

	// ChunkDefaults apply when an upload omits chunk_size or chunk_overlap.
	ChunkDefaults domain.ChunkOptions

	// TopK applies when a question omits top_k.
	TopK int

	// MaxUploadBytes caps the upload request body. Zero means 10 MiB.
	MaxUploadBytes int64

	// RequestsPerSecond enables token bucket limiting when positive.
	RequestsPerSecond float64
	Burst             int
}

// Server serves GET /, POST /upload and POST /ask.
type Server struct {
	qa            driving.QAService
	chunkDefaults domain.ChunkOptions
	topK          int
	maxUpload     int64
	limiter       *rate.Limiter
}

// New creates a server from cfg, filling zero values with defaults.
func New(cfg Config) (*Server, error) {
	if cfg.QA == nil {
		return nil, ErrMissingQAService
	}

	s := &Server{
		qa:            cfg.QA,
		chunkDefaults: cfg.ChunkDefaults,
		topK:          cfg.TopK,
		maxUpload:     cfg.MaxUploadBytes,
	}
	if s.chunkDefaults == (domain.ChunkOptions{}) {
		s.chunkDefaults = domain.DefaultChunkOptions()
	}
	if s.topK <= 0 {
		s.topK = domain.DefaultTopK
	}
	if s.maxUpload <= 0 {
		s.maxUpload = domain.DefaultAppSettings().Server.MaxUploadBytes
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return s, nil
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /ask", s.handleAsk)

	var h http.Handler = mux
	if s.limiter != nil {
		h = rateLimitMiddleware(s.limiter, h)
	}
	h = loggingMiddleware(h)
	h = corsMiddleware(h)
	return requestIDMiddleware(h)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("Listening on %s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
