package pagecache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authHeader = "X-Test-User"

func isAuthenticated(r *http.Request) bool {
	return r.Header.Get(authHeader) != ""
}

// countingHandler renders a body from a mutable value so tests can observe staleness.
type countingHandler struct {
	calls  atomic.Int32
	body   atomic.Value
	status int
}

func newCountingHandler(body string) *countingHandler {
	h := &countingHandler{status: http.StatusOK}
	h.body.Store(body)
	return h
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.calls.Add(1)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(h.status)
	_, _ = w.Write([]byte(h.body.Load().(string)))
}

func do(t *testing.T, h http.Handler, method, target string, user string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if user != "" {
		req.Header.Set(authHeader, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCache_Wrap_HitAfterMiss(t *testing.T) {
	c := New(NewMemoryStore(), isAuthenticated)
	inner := newCountingHandler(`{"posts":1}`)
	h := c.Wrap("index", 20*time.Second, inner)

	first := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(HeaderCache))

	second := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(HeaderCache))
	assert.Equal(t, `{"posts":1}`, second.Body.String())
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCache_Wrap_PartitionsByAuthentication(t *testing.T) {
	c := New(NewMemoryStore(), isAuthenticated)
	inner := newCountingHandler("anon view")
	h := c.Wrap("index", time.Minute, inner)

	anon := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, "anon view", anon.Body.String())

	inner.body.Store("user view")
	authed := do(t, h, http.MethodGet, "/", "leo")
	assert.Equal(t, "MISS", authed.Header().Get(HeaderCache), "authenticated never sees the anonymous entry")
	assert.Equal(t, "user view", authed.Body.String())

	// two authenticated users share the authenticated partition
	other := do(t, h, http.MethodGet, "/", "ann")
	assert.Equal(t, "HIT", other.Header().Get(HeaderCache))
	assert.Equal(t, "user view", other.Body.String())

	anonAgain := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, "HIT", anonAgain.Header().Get(HeaderCache))
	assert.Equal(t, "anon view", anonAgain.Body.String())
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCache_Wrap_StaleUntilExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New(NewMemoryStore(WithClock(clock.Now)), isAuthenticated)
	inner := newCountingHandler("three posts")
	h := c.Wrap("index", 20*time.Second, inner)

	do(t, h, http.MethodGet, "/", "")
	inner.body.Store("two posts")

	clock.Advance(10 * time.Second)
	stale := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, "three posts", stale.Body.String(), "data change is not visible inside the timeout")

	clock.Advance(10 * time.Second)
	fresh := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, "two posts", fresh.Body.String())
	assert.Equal(t, "MISS", fresh.Header().Get(HeaderCache))
}

func TestCache_Wrap_PagesAreSeparateEntries(t *testing.T) {
	c := New(NewMemoryStore(), isAuthenticated)
	h := c.Wrap("index", time.Minute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("page " + r.URL.Query().Get("page")))
	}))

	assert.Equal(t, "page 1", do(t, h, http.MethodGet, "/?page=1", "").Body.String())
	assert.Equal(t, "page 2", do(t, h, http.MethodGet, "/?page=2", "").Body.String())
	assert.Equal(t, "page 1", do(t, h, http.MethodGet, "/?page=1", "").Body.String())
}

func TestCache_Wrap_OnlyCachesOK(t *testing.T) {
	c := New(NewMemoryStore(), isAuthenticated)
	inner := newCountingHandler("missing")
	inner.status = http.StatusNotFound
	h := c.Wrap("group_list", time.Minute, inner)

	do(t, h, http.MethodGet, "/group/nope/", "")
	rec := do(t, h, http.MethodGet, "/group/nope/", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCache_Wrap_ZeroTTLDisables(t *testing.T) {
	store := NewMemoryStore()
	c := New(store, isAuthenticated)
	inner := newCountingHandler("x")
	h := c.Wrap("profile", 0, inner)

	do(t, h, http.MethodGet, "/profile/leo/", "")
	rec := do(t, h, http.MethodGet, "/profile/leo/", "")

	assert.Empty(t, rec.Header().Get(HeaderCache))
	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, store.Len())
}

func TestCache_Wrap_NonGETPassesThrough(t *testing.T) {
	store := NewMemoryStore()
	c := New(store, isAuthenticated)
	inner := newCountingHandler("ok")
	h := c.Wrap("index", time.Minute, inner)

	do(t, h, http.MethodPost, "/", "")
	do(t, h, http.MethodPost, "/", "")

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, store.Len())
}

func TestCache_Wrap_HeadReplaysWithoutBody(t *testing.T) {
	c := New(NewMemoryStore(), isAuthenticated)
	inner := newCountingHandler("body")
	h := c.Wrap("index", time.Minute, inner)

	do(t, h, http.MethodGet, "/", "")
	rec := do(t, h, http.MethodHead, "/", "")

	assert.Equal(t, "HIT", rec.Header().Get(HeaderCache))
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, int32(1), inner.calls.Load())
}

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (s *failingStore) Get(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, s.getErr
}

func (s *failingStore) Set(context.Context, string, Entry, time.Duration) error {
	s.sets++
	return s.setErr
}

func (s *failingStore) Delete(context.Context, string) error { return nil }
func (s *failingStore) Clear(context.Context) error          { return nil }

func TestCache_Wrap_StoreErrorsDegrade(t *testing.T) {
	t.Run("lookup error serves uncached", func(t *testing.T) {
		store := &failingStore{getErr: errors.New("redis down")}
		inner := newCountingHandler("fresh")
		h := New(store, isAuthenticated).Wrap("index", time.Minute, inner)

		rec := do(t, h, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fresh", rec.Body.String())
		assert.Zero(t, store.sets)
	})

	t.Run("store error still responds", func(t *testing.T) {
		store := &failingStore{setErr: errors.New("redis down")}
		inner := newCountingHandler("fresh")
		h := New(store, isAuthenticated).Wrap("index", time.Minute, inner)

		rec := do(t, h, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fresh", rec.Body.String())
		assert.Equal(t, 1, store.sets)
	})
}
