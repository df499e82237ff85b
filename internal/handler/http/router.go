package http

import (
	"log/slog"
	"net/http"
	"time"

	"yatube/internal/handler/http/follow"
	"yatube/internal/handler/http/groups"
	"yatube/internal/handler/http/identity"
	"yatube/internal/handler/http/posts"
	"yatube/internal/handler/http/profile"
	"yatube/internal/handler/http/requestid"
	"yatube/internal/observability/tracing"
	"yatube/internal/pagecache"
	followUC "yatube/internal/usecase/follow"
	groupUC "yatube/internal/usecase/group"
	"yatube/internal/usecase/listing"
	postUC "yatube/internal/usecase/post"
)

// Cache route identifiers. They are part of every cache key.
const (
	RouteIndex     = "index"
	RouteGroupList = "group_list"
	RouteProfile   = "profile"
)

// DefaultMaxBodyBytes caps write request bodies.
const DefaultMaxBodyBytes = 1 << 20

// CacheTTL holds per-route page cache lifetimes. Zero disables caching.
type CacheTTL struct {
	Index   time.Duration
	Group   time.Duration
	Profile time.Duration
}

// Deps is everything the router needs to serve the site.
type Deps struct {
	Listing *listing.Service
	Posts   *postUC.Service
	Groups  *groupUC.Service
	Follows *followUC.Service

	Authenticator *identity.Authenticator
	Cache         *pagecache.Cache
	CacheTTL      CacheTTL
	Limiter       *WriteLimiter
	LoginURL      string
	MaxBodyBytes  int64

	Health http.Handler
	Logger *slog.Logger
}

// NewRouter builds the site's handler: routes plus the middleware chain
// (request id, recover, logging, metrics, identity).
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if d.Cache == nil {
		d.Cache = pagecache.New(pagecache.NewMemoryStore(), identity.IsAuthenticated, pagecache.WithLogger(d.Logger))
	}
	if d.Limiter == nil {
		d.Limiter = NewWriteLimiter(30)
	}

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", d.Cache.Wrap(RouteIndex, d.CacheTTL.Index, posts.IndexHandler{Svc: d.Listing}))
	mux.Handle("GET /group/{slug}/{$}", d.Cache.Wrap(RouteGroupList, d.CacheTTL.Group, groups.PageHandler{Svc: d.Listing}))
	mux.Handle("GET /groups/{$}", groups.ListHandler{Svc: d.Groups})
	mux.Handle("GET /profile/{username}/{$}", d.Cache.Wrap(RouteProfile, d.CacheTTL.Profile, profile.Handler{Svc: d.Listing}))
	mux.Handle("GET /profile/{username}/follow/{$}", follow.StatusHandler{Svc: d.Follows})
	mux.Handle("GET /posts/{id}/{$}", posts.DetailHandler{Svc: d.Posts})

	login := identity.RequireLogin(d.LoginURL)
	write := func(h http.Handler) http.Handler {
		return login(d.Limiter.Limit(LimitRequestBody(d.MaxBodyBytes)(h)))
	}
	mux.Handle("GET /follow/{$}", login(follow.IndexHandler{Svc: d.Listing}))
	mux.Handle("POST /create/{$}", write(posts.CreateHandler{Svc: d.Posts}))
	mux.Handle("POST /posts/{id}/edit/{$}", write(posts.EditHandler{Svc: d.Posts}))
	mux.Handle("POST /posts/{id}/delete/{$}", write(posts.DeleteHandler{Svc: d.Posts}))
	mux.Handle("POST /posts/{id}/comment/{$}", write(posts.CommentHandler{Svc: d.Posts}))
	mux.Handle("POST /profile/{username}/follow/{$}", write(follow.FollowHandler{Svc: d.Follows}))
	mux.Handle("POST /profile/{username}/unfollow/{$}", write(follow.UnfollowHandler{Svc: d.Follows}))

	if d.Health != nil {
		mux.Handle("GET /health", d.Health)
	}
	mux.Handle("GET /metrics", MetricsHandler())

	var h http.Handler = mux
	h = d.Authenticator.Middleware(h)
	h = MetricsMiddleware(h)
	h = Logging(d.Logger)(h)
	h = Recover(d.Logger)(h)
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	return h
}
