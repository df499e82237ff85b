// Package identity resolves who is making a request. Tokens are issued by
// the external identity provider; this package only verifies them.
//
// A request without a valid token is anonymous. Anonymity is never an
// error here: pages decide for themselves whether to require a login.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieName is the session cookie checked when no Authorization header is sent.
const DefaultCookieName = "yatube_session"

// Identity is the requesting user. The zero value is anonymous.
type Identity struct {
	Username string
}

// IsAuthenticated reports whether the identity belongs to a logged-in user.
func (i Identity) IsAuthenticated() bool {
	return i.Username != ""
}

type ctxKey struct{}

// WithIdentity stores id in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity set by Authenticator.Middleware, or an
// anonymous identity.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}

// IsAuthenticated reports whether r carries an authenticated identity.
func IsAuthenticated(r *http.Request) bool {
	return FromContext(r.Context()).IsAuthenticated()
}

// Authenticator verifies HS256 tokens whose subject is the username.
type Authenticator struct {
	secret []byte
	cookie string
	now    func() time.Time
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(a *Authenticator) { a.cookie = name }
}

// WithNow overrides the clock used for expiry checks.
func WithNow(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

// NewAuthenticator returns an Authenticator for tokens signed with secret.
func NewAuthenticator(secret []byte, opts ...Option) *Authenticator {
	a := &Authenticator{secret: secret, cookie: DefaultCookieName, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var errNoToken = errors.New("no token")

// Parse verifies a token and returns its identity.
func (a *Authenticator) Parse(token string) (Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return Identity{}, errors.New("parse token: empty subject")
	}
	return Identity{Username: claims.Subject}, nil
}

// Middleware attaches the request identity to the context. Invalid tokens
// are logged and treated as anonymous.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := a.token(r)
		if errors.Is(err, errNoToken) {
			recordToken(resultAbsent)
			next.ServeHTTP(w, r)
			return
		}

		id, err := a.Parse(token)
		if err != nil {
			recordToken(resultInvalid)
			slog.DebugContext(r.Context(), "ignoring invalid token", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}
		recordToken(resultValid)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (a *Authenticator) token(r *http.Request) (string, error) {
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, prefix)), nil
	}
	if c, err := r.Cookie(a.cookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errNoToken
}

// Issue signs a token for username that expires after ttl.
func Issue(secret []byte, username string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// RequireLogin redirects anonymous requests to loginURL with the original
// request URI in the next parameter.
func RequireLogin(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAuthenticated(r) {
				target := loginURL + "?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
