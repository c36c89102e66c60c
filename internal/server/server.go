// Package server provides the HTTP API for the CV form: preview storage,
// validation, PDF export and the /ai/* writing assistant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/writer"
)

// SessionCookie names the cookie holding the preview session id.
const SessionCookie = "cv_session"

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	logger      zerolog.Logger
	store       preview.Store
	writer      *writer.Service
	exporter    rendering.Exporter
	formOptions *form.Options
	previewTTL  time.Duration
	rateLimiter *ratelimit.Limiter
	now         func() time.Time
}

// Config holds server configuration and collaborators. Writer and Exporter
// may be nil; the routes that need them then answer 503.
type Config struct {
	Port        int
	Store       preview.Store
	Writer      *writer.Service
	Exporter    rendering.Exporter
	FormOptions *form.Options
	PreviewTTL  time.Duration
	RateLimit   *ratelimit.Config
	Logger      zerolog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: preview store is required")
	}
	if cfg.FormOptions == nil {
		cfg.FormOptions = form.DefaultOptions()
	}
	if cfg.PreviewTTL <= 0 {
		cfg.PreviewTTL = preview.DefaultTTL
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		logger:      cfg.Logger.With().Str("component", "server").Logger(),
		store:       cfg.Store,
		writer:      cfg.Writer,
		exporter:    cfg.Exporter,
		formOptions: cfg.FormOptions,
		previewTTL:  cfg.PreviewTTL,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		now:         time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Form submission and preview
	mux.HandleFunc("POST /preview", s.handleSubmitPreview)
	mux.HandleFunc("GET /preview", s.handleGetPreview)
	mux.HandleFunc("POST /form", s.handleSubmitForm)

	// Validation, schema and export
	mux.HandleFunc("POST /validate", s.handleValidate)
	mux.HandleFunc("GET /api/schema", s.handleSchema)
	mux.HandleFunc("POST /generate-pdf", s.handleGeneratePDF)

	// Writing assistant
	mux.HandleFunc("POST /ai/generate-summary", s.handleGenerateSummary)
	mux.HandleFunc("POST /ai/suggest-skills", s.handleSuggestSkills)
	mux.HandleFunc("POST /ai/improve-bullet", s.handleImproveBullet)
	mux.HandleFunc("POST /ai/check-grammar", s.handleCheckGrammar)
	mux.HandleFunc("POST /ai/rewrite-tone", s.handleRewriteTone)

	s.handler = s.withLogging(s.withRateLimit(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export and model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

// Close releases the rate limiter and the preview store.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to close preview store")
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID returns the client IP from RemoteAddr. Forwarded headers
// are ignored since they are client controlled.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"success":   false,
		"error":     "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn().
		Str("client", s.extractClientID(r)).
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
