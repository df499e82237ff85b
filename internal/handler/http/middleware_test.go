package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/handler/http/identity"
	"yatube/internal/handler/http/requestid"
)

func TestLogging(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "listing", method: http.MethodGet, target: "/?page=2", status: http.StatusOK},
		{name: "create redirect", method: http.MethodPost, target: "/create/", status: http.StatusFound},
		{name: "server error", method: http.MethodGet, target: "/posts/1/", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			handler := requestid.Middleware(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Cache", "MISS")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})))

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set(requestid.RequestIDHeader, "req-1")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, "req-1", entry["request_id"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, float64(4), entry["bytes"])
			assert.Equal(t, "MISS", entry["cache"])
			assert.NotContains(t, entry, "trace_id")
		})
	}
}

func TestRecover(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name        string
		panicValue  interface{}
		shouldPanic bool
	}{
		{
			name:        "panic with string",
			panicValue:  "something went wrong",
			shouldPanic: true,
		},
		{
			name:        "panic with error",
			panicValue:  fmt.Errorf("test error"),
			shouldPanic: true,
		},
		{
			name:        "panic with nil",
			panicValue:  nil,
			shouldPanic: false,
		},
		{
			name:        "panic with number",
			panicValue:  42,
			shouldPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.shouldPanic {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rr := httptest.NewRecorder()

			// Should not panic - middleware catches it
			handler.ServeHTTP(rr, req)

			if tt.shouldPanic {
				// Should return 500 error
				if rr.Code != http.StatusInternalServerError {
					t.Errorf("got status %d, want %d", rr.Code, http.StatusInternalServerError)
				}
			} else {
				// Should return 200
				if rr.Code != http.StatusOK {
					t.Errorf("got status %d, want %d", rr.Code, http.StatusOK)
				}
			}
		})
	}
}

func TestLimitRequestBody(t *testing.T) {
	tests := []struct {
		name           string
		maxBytes       int64
		bodySize       int
		expectedStatus int
		shouldSucceed  bool
	}{
		{
			name:           "small body within limit",
			maxBytes:       1024,
			bodySize:       512,
			expectedStatus: http.StatusOK,
			shouldSucceed:  true,
		},
		{
			name:           "body exactly at limit",
			maxBytes:       1024,
			bodySize:       1024,
			expectedStatus: http.StatusOK,
			shouldSucceed:  true,
		},
		{
			name:           "body exceeds limit",
			maxBytes:       100,
			bodySize:       200,
			expectedStatus: http.StatusRequestEntityTooLarge,
			shouldSucceed:  false,
		},
		{
			name:           "very large body",
			maxBytes:       1024,
			bodySize:       10240,
			expectedStatus: http.StatusRequestEntityTooLarge,
			shouldSucceed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := LimitRequestBody(tt.maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Try to read the body
				_, err := io.ReadAll(r.Body)
				if err != nil {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))

			// Create body of specified size
			body := strings.Repeat("a", tt.bodySize)
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}


func withUser(r *http.Request, username string) *http.Request {
	return r.WithContext(identity.WithIdentity(r.Context(), identity.Identity{Username: username}))
}

func TestWriteLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewWriteLimiter(3)
	l.now = func() time.Time { return now }
	handler := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	}))

	do := func(r *http.Request) int {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, r)
		return rr.Code
	}
	post := func() *http.Request { return httptest.NewRequest(http.MethodPost, "/create/", nil) }

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusFound, do(withUser(post(), "leo")), "write %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(withUser(post(), "leo")))
	assert.Equal(t, http.StatusFound, do(withUser(post(), "mia")), "other users have their own bucket")
	assert.Equal(t, http.StatusFound, do(post()), "anonymous requests are not limited here")

	now = now.Add(20 * time.Second)
	assert.Equal(t, http.StatusFound, do(withUser(post(), "leo")), "one token refills every 20s")
}

func TestWriteLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewWriteLimiter(10)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("leo"))
	now = now.Add(5 * time.Minute)
	assert.True(t, l.allow("mia"))
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, l.Cleanup())
	assert.Len(t, l.limiters, 1)
	assert.Contains(t, l.limiters, "mia")
}

func TestScheduleLimiterCleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewWriteLimiter(10)
	l.now = func() time.Time { return now }
	l.allow("leo")
	now = now.Add(time.Hour)

	c := cron.New()
	id, err := ScheduleLimiterCleanup(c, "@every 1m", l, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	c.Entry(id).Job.Run()
	assert.Empty(t, l.limiters)

	_, err = ScheduleLimiterCleanup(c, "not a schedule", l, slog.Default())
	assert.Error(t, err)
}

func TestRecover_BodyIsGeneric(t *testing.T) {
	handler := Recover(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(fmt.Sprintf("boom at %s", strings.ToUpper("db")))
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
}
