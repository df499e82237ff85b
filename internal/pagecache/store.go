// Package pagecache caches rendered listing responses partitioned by
// authentication state.
//
// An authenticated and an anonymous request never share an entry; two
// anonymous requests for the same URI always may. Entries are never
// invalidated by writes, only by expiry or an explicit Clear, so a listing
// may lag behind the data for up to its TTL.
package pagecache

import (
	"context"
	"time"
)

// Entry is one rendered response. Entries are immutable once stored.
type Entry struct {
	Status      int
	ContentType string
	Body        []byte
	ExpiresAt   time.Time
}

// Live reports whether the entry is still valid at now.
func (e Entry) Live(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Store holds entries. Implementations must be safe for concurrent use;
// concurrent Sets of the same key resolve last-writer-wins.
type Store interface {
	// Get returns a live entry. Expired entries are reported as a miss.
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Set stores entry with ExpiresAt = now + ttl.
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Clock returns the current time.
type Clock func() time.Time
