package pagecache

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// ScheduleSweep registers a cron job that evicts expired entries from store.
func ScheduleSweep(c *cron.Cron, spec string, store *MemoryStore, logger *slog.Logger) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		removed := store.Sweep()
		SweptTotal.Add(float64(removed))
		if removed > 0 {
			logger.Debug("page cache sweep", slog.Int("removed", removed))
		}
	})
}
