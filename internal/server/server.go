// Package server provides the HTTP API and page shell for the portfolio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/blkdmnd/visual-thesis/internal/alignment"
	"github.com/blkdmnd/visual-thesis/internal/chat"
	"github.com/blkdmnd/visual-thesis/internal/config"
	"github.com/blkdmnd/visual-thesis/internal/contact"
	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/explainer"
	"github.com/blkdmnd/visual-thesis/internal/fetch"
	"github.com/blkdmnd/visual-thesis/internal/ingestion"
	"github.com/blkdmnd/visual-thesis/internal/llm"
	"github.com/blkdmnd/visual-thesis/internal/observability"
	"github.com/blkdmnd/visual-thesis/internal/server/middleware"
	"github.com/blkdmnd/visual-thesis/internal/server/ratelimit"
	"github.com/blkdmnd/visual-thesis/internal/types"
	"github.com/blkdmnd/visual-thesis/internal/web"
)

const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	mux        *http.ServeMux

	content   *content.Store
	profile   *types.Profile
	owner     contact.Recipient
	sessions  *chat.Store
	analyzer  *alignment.Analyzer
	ingester  *ingestion.URLIngester
	tokens    *TokenService
	limiter   *ratelimit.Limiter
	metrics   *observability.Metrics
	gatherer  prometheus.Gatherer
	clock     explainer.Clock
	interval  time.Duration
	page      *web.Page
	origins   []string
	closing   chan struct{}
	closeOnce sync.Once
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string
	RateLimit      *ratelimit.Config
	Session        config.SessionConfig
}

// Deps are the collaborators the server is built from. Nil optional
// fields get production defaults.
type Deps struct {
	Content *content.Store
	LLM     llm.Client

	// Optional.
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Fetcher  *fetch.Fetcher
	Renderer fetch.Renderer
	Clock    explainer.Clock
	// TickInterval overrides the explainer tick for tests.
	TickInterval time.Duration
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Content == nil || deps.LLM == nil {
		return nil, errors.New("server: content store and LLM client are required")
	}

	tokens, err := NewTokenService(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	metrics := deps.Metrics
	gatherer := deps.Gatherer
	if metrics == nil {
		metrics = observability.DefaultMetrics()
		gatherer = prometheus.DefaultGatherer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	pipeline, err := chat.NewPipeline(deps.LLM, chat.GroundingFrom(deps.Content), chat.WithMetrics(metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat pipeline: %w", err)
	}
	sessions, err := chat.NewStore(pipeline, cfg.Session.StoreSize, metrics)
	if err != nil {
		return nil, err
	}

	analyzer, err := alignment.NewAnalyzer(deps.LLM, alignment.WithMetrics(metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	page, err := web.NewPage()
	if err != nil {
		return nil, err
	}

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = fetch.New()
	}
	interval := deps.TickInterval
	if interval <= 0 {
		interval = explainer.TickInterval
	}

	identity := deps.Content.Identity()
	s := &Server{
		content:  deps.Content,
		profile:  deps.Content.CandidateProfile(),
		owner:    contact.Recipient{Owner: identity.Name, Email: identity.Contact.Email},
		sessions: sessions,
		analyzer: analyzer,
		ingester: &ingestion.URLIngester{Fetcher: fetcher, Renderer: deps.Renderer},
		tokens:   tokens,
		limiter:  ratelimit.NewLimiter(cfg.RateLimit),
		metrics:  metrics,
		gatherer: gatherer,
		clock:    deps.Clock,
		interval: interval,
		page:     page,
		origins:  cfg.AllowedOrigins,
		closing:  make(chan struct{}),
	}

	mux := http.NewServeMux()
	auth := middleware.SessionAuth(tokens.AsTokenValidator())

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Content
	mux.HandleFunc("GET /api/content", s.handleContent)
	mux.HandleFunc("GET /api/content/{section}", s.handleContentSection)

	// Theme
	mux.HandleFunc("GET /api/theme", s.handleGetTheme)
	mux.HandleFunc("POST /api/theme/toggle", s.handleToggleTheme)

	// Chat
	mux.HandleFunc("POST /api/chat/sessions", s.handleOpenSession)
	mux.Handle("POST /api/chat/sessions/{id}/turns", auth(http.HandlerFunc(s.handleChatTurn)))
	mux.Handle("GET /api/chat/sessions/{id}", auth(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("DELETE /api/chat/sessions/{id}", auth(http.HandlerFunc(s.handleCloseSession)))

	// Alignment
	mux.HandleFunc("POST /api/alignment", s.handleAlignment)
	mux.HandleFunc("POST /api/alignment/export", s.handleExport)

	// Contact
	mux.HandleFunc("POST /api/contact", s.handleContact)

	// Explainer
	mux.HandleFunc("GET /api/explainer/stream", s.handleExplainerStream)

	s.mux = mux
	s.handler = s.withMetrics(s.withRateLimit(s.withLogging(s.withCORS(mux))))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM calls; the explainer stream clears its own deadline
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the full middleware chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("[server] starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("[server] shutting down...")
		s.closeOnce.Do(func() { close(s.closing) })

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	log.Println("[server] stopped")
	return err
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// withMetrics records request counts, durations and in-flight requests by route pattern.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := s.metrics.HTTPStarted()
		defer done()

		route := "unmatched"
		if _, pattern := s.mux.Handler(r); pattern != "" {
			route = pattern
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.metrics.ObserveHTTPRequest(r.Method, route, strconv.Itoa(rec.code()), time.Since(start))
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowedOrigin(origin string) string {
	if len(s.origins) == 0 || slices.Contains(s.origins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.origins, origin) {
		return origin
	}
	return ""
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.limiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		for k, v := range ratelimit.Headers(info) {
			w.Header().Set(k, v)
		}

		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d %s in %v", r.Method, r.URL.Path, rec.code(), s.extractClientID(r), time.Since(start))
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
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status and public message. Server errors are logged.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	s.errorResponse(w, status, publicMessage(err))
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; proxies are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds()) + 1
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
