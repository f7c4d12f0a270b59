package handler

import (
	"context"
	"net/http"
	"time"
)

// CachePinger defines the interface for checking cache connectivity
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	cache CachePinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cache CachePinger) *HealthHandler {
	return &HealthHandler{
		cache: cache,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
	Uptime  string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// GetHealth handles GET /health
// Basic health check - returns 200 OK if service is running
func GetHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
		Uptime:  time.Since(startTime).String(),
		Checks:  map[string]string{},
	}

	respondJSON(w, response, http.StatusOK)
}

// GetLiveness handles GET /health/live
// Liveness probe - checks if service is alive
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "alive"}, http.StatusOK)
}

// GetReadiness handles GET /health/ready
// Readiness probe - checks if the session cache is reachable
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		respondError(w, "cache not ready", http.StatusServiceUnavailable)
		return
	}

	respondJSON(w, map[string]string{"status": "ready"}, http.StatusOK)
}

// GetHealthDetailed handles GET /health/detailed
// Detailed health check - includes cache connectivity
func (h *HealthHandler) GetHealthDetailed(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "ok"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "unhealthy: " + err.Error()
		status = "degraded"
	} else {
		checks["cache"] = "healthy"
	}

	checks["api"] = "healthy"

	httpStatus := http.StatusOK
	if status == "degraded" {
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, HealthResponse{
		Status:  status,
		Version: "1.0.0",
		Uptime:  time.Since(startTime).String(),
		Checks:  checks,
	}, httpStatus)
}
