// Package circuitbreaker fails database calls fast while the database keeps
// failing, using github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the breaker thresholds.
type Config struct {
	// Name labels logs and metrics.
	Name string
	// MaxRequests is both the number of probes let through while half-open
	// and the consecutive successes needed to close again.
	MaxRequests uint32
	// Interval resets the closed-state counts. Zero never resets.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// MinRequests is the number of calls in an interval before the
	// failure ratio is considered.
	MinRequests uint32
	// FailureRatio trips the breaker once reached.
	FailureRatio float64
}

// DefaultConfig opens after five straight failures and probes again after 30s.
func DefaultConfig() Config {
	return Config{
		Name:         "database",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 1.0,
	}
}

func newBreaker(cfg Config) *gobreaker.CircuitBreaker {
	StateGauge.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			StateGauge.WithLabelValues(name).Set(float64(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
}

// isSuccessful keeps caller-side outcomes from tripping the breaker:
// a missing row or an abandoned request says nothing about the database.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, context.Canceled)
}
