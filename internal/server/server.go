package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/ProvablyFair_Go/internal/database"
	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
	"github.com/osse101/ProvablyFair_Go/internal/fairness"
	"github.com/osse101/ProvablyFair_Go/internal/gameconfig"
	"github.com/osse101/ProvablyFair_Go/internal/handler"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/metrics"
	"github.com/osse101/ProvablyFair_Go/internal/rtp"
	"github.com/osse101/ProvablyFair_Go/internal/sse"
	"github.com/osse101/ProvablyFair_Go/internal/wager"
)

// Services bundles everything the router dispatches to
type Services struct {
	Wager    wager.Service
	Fairness fairness.Service
	RTP      rtp.Service
	Config   gameconfig.Service
	EventLog eventlog.Service // optional
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	services   Services
}

// NewServer creates a new Server instance. checks are extra readiness probes
// such as the shared cache.
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, services Services, hub *sse.Hub, checks ...handler.ReadinessCheck) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, NewSuspiciousActivityDetector(), dbPool, services, hub, checks...),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:   dbPool,
		services: services,
	}
}

// NewRouter builds the full route tree
func NewRouter(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector, dbPool database.Pool, services Services, hub *sse.Hub, checks ...handler.ReadinessCheck) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, checks...))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		wagerHandler := handler.NewWagerHandler(services.Wager)
		r.Route("/wagers", func(r chi.Router) {
			r.Get("/", wagerHandler.HandleGetWagers)
			r.Post("/", wagerHandler.HandlePlaceWager)
			r.Post("/solo", wagerHandler.HandlePlaceSoloWager)
			r.Post("/group", wagerHandler.HandlePlaceGroupWager)
		})

		r.Route("/group", func(r chi.Router) {
			r.Get("/status", wagerHandler.HandleGroupStatus)
			r.Get("/result", wagerHandler.HandleGroupResult)
			r.Post("/settle", wagerHandler.HandleSettleGroupRound)
		})

		fairnessHandler := handler.NewFairnessHandler(services.Fairness)
		r.Route("/fairness", func(r chi.Router) {
			r.Post("/verify-round", fairnessHandler.HandleVerifyRound)
			r.Post("/verify-chain", fairnessHandler.HandleVerifyChain)
			r.Get("/wager", fairnessHandler.HandleVerifyWager)
			r.Get("/commitment", fairnessHandler.HandleCommitment)
			r.Get("/chain/verify", fairnessHandler.HandleVerifyStoredChain)
			r.Get("/tables", fairnessHandler.HandleTables)
		})

		rtpHandler := handler.NewRTPHandler(services.RTP)
		r.Get("/rtp", rtpHandler.HandleRTP)
		r.Route("/stats", func(r chi.Router) {
			r.Get("/player", wagerHandler.HandlePlayerStats)
			r.Get("/games", rtpHandler.HandleGameStats)
		})

		configHandler := handler.NewConfigHandler(services.Config)
		metricsHandler := handler.NewAdminMetricsHandler(nil, hub)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/config", configHandler.HandleGetConfig)
			r.Post("/config", configHandler.HandleSetConfig)
			r.Get("/metrics", metricsHandler.HandleGetMetrics)
			if services.EventLog != nil {
				r.Get("/events", handler.NewAdminEventsHandler(services.EventLog).HandleGetEvents)
			}
		})

		if hub != nil {
			r.Get("/events", sse.Handler(hub))
		}
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps the event stream working behind the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server. It returns nil after a graceful Stop.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
