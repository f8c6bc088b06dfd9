package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/osse101/ProvablyFair_Go/internal/database"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// readinessTimeout bounds every readiness probe
const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckFunc adapts a plain function to HealthChecker
type CheckFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// ReadinessCheck is an optional dependency probed by /readyz
type ReadinessCheck struct {
	Name    string
	Checker HealthChecker
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz provides a readiness check that validates database connectivity
// and any extra dependencies such as the shared cache
// @Summary Readiness check
// @Description Returns OK if the service is ready to accept traffic (database connected)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		log := logger.FromContext(r.Context())

		if err := dbPool.Ping(ctx); err != nil {
			log.Error("Readiness check failed", "error", err)
			writeHealth(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "database connection failed",
			})
			return
		}

		for _, c := range checks {
			if err := c.Checker.CheckHealth(ctx); err != nil {
				log.Error("Readiness check failed", "component", c.Name, "error", err)
				writeHealth(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  "unavailable",
					Message: c.Name + " check failed",
				})
				return
			}
		}

		writeHealth(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

func writeHealth(w http.ResponseWriter, status int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
