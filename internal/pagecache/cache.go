package pagecache

import (
	"log/slog"
	"net/http"
	"time"

	"yatube/internal/handler/http/responsewriter"
)

// DefaultPrefix namespaces cache keys when no prefix is configured.
const DefaultPrefix = "yatube:page"

// HeaderCache reports HIT or MISS on wrapped routes.
const HeaderCache = "X-Cache"

// AuthFunc reports whether a request carries an authenticated identity.
type AuthFunc func(r *http.Request) bool

// Cache wraps listing handlers with an auth-partitioned response cache.
type Cache struct {
	store         Store
	authenticated AuthFunc
	prefix        string
	logger        *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithLogger sets the logger used for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Cache over store. authenticated decides the partition of a request.
func New(store Store, authenticated AuthFunc, opts ...Option) *Cache {
	c := &Cache{
		store:         store,
		authenticated: authenticated,
		prefix:        DefaultPrefix,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wrap caches successful GET responses of next for ttl under route.
// A live entry is replayed without invoking next. A ttl <= 0 returns next unchanged.
// Store failures are logged and the request is served uncached.
func (c *Cache) Wrap(route string, ttl time.Duration, next http.Handler) http.Handler {
	if ttl <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		authenticated := c.authenticated(r)
		partition := partitionLabel(authenticated)
		key := Key(c.prefix, route, r.URL.RequestURI(), authenticated)
		ctx := r.Context()

		entry, ok, err := c.store.Get(ctx, key)
		if err != nil {
			LookupsTotal.WithLabelValues(route, partition, resultError).Inc()
			c.logger.WarnContext(ctx, "page cache lookup failed",
				slog.String("route", route),
				slog.String("key", key),
				slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}
		if ok {
			LookupsTotal.WithLabelValues(route, partition, resultHit).Inc()
			replay(w, r, entry)
			return
		}

		if r.Method == http.MethodHead {
			LookupsTotal.WithLabelValues(route, partition, resultBypass).Inc()
			next.ServeHTTP(w, r)
			return
		}

		LookupsTotal.WithLabelValues(route, partition, resultMiss).Inc()
		header := w.Header()
		header.Set(HeaderCache, "MISS")
		header.Add("Vary", "Authorization, Cookie")

		rec := responsewriter.Capture(w)
		next.ServeHTTP(rec, r)

		if rec.StatusCode() != http.StatusOK {
			return
		}
		stored := Entry{
			Status:      rec.StatusCode(),
			ContentType: header.Get("Content-Type"),
			Body:        rec.Body(),
		}
		if err := c.store.Set(ctx, key, stored, ttl); err != nil {
			c.logger.WarnContext(ctx, "page cache store failed",
				slog.String("route", route),
				slog.String("key", key),
				slog.Any("error", err))
			return
		}
		StoredTotal.WithLabelValues(route).Inc()
	})
}

func replay(w http.ResponseWriter, r *http.Request, entry Entry) {
	header := w.Header()
	if entry.ContentType != "" {
		header.Set("Content-Type", entry.ContentType)
	}
	header.Set(HeaderCache, "HIT")
	header.Add("Vary", "Authorization, Cookie")
	w.WriteHeader(entry.Status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(entry.Body)
	}
}
