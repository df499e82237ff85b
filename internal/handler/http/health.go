// Package http wires the blog's HTTP surface: routing, middleware, metrics
// and health checks. Resource handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"yatube/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerState reports the database circuit breaker state.
type BreakerState interface {
	IsOpen() bool
}

// HealthHandler checks the database and, when configured, the cache
// backend. Only the database decides overall health; the page cache
// degrades to pass-through when its store fails.
type HealthHandler struct {
	DB      *sql.DB
	Cache   Pinger
	Breaker BreakerState
	Version string
}

// ServeHTTP returns 200 when the database is reachable and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.DB != nil {
		checks["database"] = h.checkDatabase(ctx)
		healthy = checks["database"].Status != "unhealthy"
	} else {
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		healthy = false
	}

	if h.Cache != nil {
		checks["cache"] = checkPinger(ctx, h.Cache)
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
	if !healthy {
		slog.WarnContext(r.Context(), "health check failed", slog.Any("checks", checks))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.Breaker != nil && h.Breaker.IsOpen() {
		return CheckStatus{Status: "unhealthy", Message: "circuit breaker open"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80.0 {
			return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func checkPinger(ctx context.Context, p Pinger) CheckStatus {
	if err := p.Ping(ctx); err != nil {
		return CheckStatus{Status: "degraded", Message: respond.SanitizeError(err)}
	}
	return CheckStatus{Status: "healthy"}
}
