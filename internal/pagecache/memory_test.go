package pagecache

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", Entry{Status: 200, Body: []byte("v1")}, 20*time.Second))

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", string(got.Body))
	assert.Equal(t, clock.Now().Add(20*time.Second), got.ExpiresAt)
}

func TestMemoryStore_ExpiresLazily(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now))

	require.NoError(t, s.Set(ctx, "k", Entry{Status: 200, Body: []byte("v")}, 20*time.Second))

	clock.Advance(19 * time.Second)
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok, "live just before expiry")

	clock.Advance(time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok, "expired at expires_at")
	assert.Equal(t, 0, s.Len(), "expired entry evicted on access")
}

func TestMemoryStore_NonPositiveTTLStoresNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", Entry{Status: 200}, 0))
	require.NoError(t, s.Set(ctx, "k2", Entry{Status: 200}, -time.Second))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_CopiesBody(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	body := []byte("original")
	require.NoError(t, s.Set(ctx, "k", Entry{Status: 200, Body: body}, time.Minute))
	body[0] = 'X'

	got, ok, _ := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "original", string(got.Body))
}

func TestMemoryStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "a", Entry{Status: 200}, time.Minute))
	require.NoError(t, s.Set(ctx, "b", Entry{Status: 200}, time.Minute))
	require.NoError(t, s.Set(ctx, "c", Entry{Status: 200}, time.Minute))

	require.NoError(t, s.Delete(ctx, "a"))
	_, ok, _ := s.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now))

	require.NoError(t, s.Set(ctx, "short", Entry{Status: 200}, 5*time.Second))
	require.NoError(t, s.Set(ctx, "long", Entry{Status: 200}, time.Minute))

	assert.Equal(t, 0, s.Sweep())

	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, ok, _ := s.Get(ctx, "long")
	assert.True(t, ok)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "k" + strconv.Itoa(i%4)
			for j := 0; j < 100; j++ {
				_ = s.Set(ctx, key, Entry{Status: 200, Body: []byte(strconv.Itoa(j))}, time.Minute)
				_, _, _ = s.Get(ctx, key)
				if j%25 == 0 {
					s.Sweep()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, s.Len())
	for i := 0; i < 4; i++ {
		got, ok, err := s.Get(ctx, "k"+strconv.Itoa(i))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "99", string(got.Body), "every writer finishes with its last value")
	}
}
