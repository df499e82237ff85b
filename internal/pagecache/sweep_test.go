package pagecache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleSweep(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))
	require.NoError(t, store.Set(context.Background(), "k", Entry{Status: 200}, time.Second))
	clock.Advance(2 * time.Second)

	c := cron.New()
	id, err := ScheduleSweep(c, "@every 1m", store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	// run the registered job directly instead of waiting for the schedule
	c.Entry(id).Job.Run()
	assert.Equal(t, 0, store.Len())

	_, err = ScheduleSweep(c, "not a schedule", store, slog.Default())
	assert.Error(t, err)
}
