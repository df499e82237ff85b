package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"yatube/internal/handler/http/identity"
	"yatube/internal/handler/http/respond"
	"yatube/internal/handler/http/responsewriter"
	"yatube/internal/observability/logging"
)

// Logging returns middleware that logs every request once it completes.
// The trace ID is taken from the OpenTelemetry span context when one is present.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("cache", wrapped.Header().Get("X-Cache")),
			}
			if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.HasTraceID() {
				attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
			}
			logging.WithRequestID(r.Context(), logger).LogAttrs(r.Context(), slog.LevelInfo, "request completed", attrs...)
		})
	}
}

// Recover returns middleware that turns a panic into a 500 response.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logging.WithRequestID(r.Context(), logger).Error("panic recovered",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
					respond.SafeError(w, r, http.StatusInternalServerError, fmt.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody returns middleware that caps request bodies at maxBytes.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// WriteLimiter throttles write requests per authenticated username with a
// token bucket. Anonymous requests pass through; they are redirected to
// the login page before reaching any write.
type WriteLimiter struct {
	mu       sync.Mutex
	limiters map[string]*userLimiter
	every    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewWriteLimiter allows perMinute writes per user with bursts of the same size.
func NewWriteLimiter(perMinute int) *WriteLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &WriteLimiter{
		limiters: make(map[string]*userLimiter),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

// Limit answers 429 once the user's bucket is empty.
func (l *WriteLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := identity.FromContext(r.Context())
		if !id.IsAuthenticated() {
			next.ServeHTTP(w, r)
			return
		}
		if !l.allow(id.Username) {
			w.Header().Set("Retry-After", "60")
			respond.SafeError(w, r, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *WriteLimiter) allow(username string) bool {
	now := l.now()
	l.mu.Lock()
	ul, ok := l.limiters[username]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[username] = ul
	}
	ul.lastSeen = now
	l.mu.Unlock()
	return ul.limiter.AllowN(now, 1)
}

// Cleanup drops limiters idle for longer than the idle period and reports
// how many were removed.
func (l *WriteLimiter) Cleanup() int {
	cutoff := l.now().Add(-l.idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for name, ul := range l.limiters {
		if ul.lastSeen.Before(cutoff) {
			delete(l.limiters, name)
			removed++
		}
	}
	return removed
}
