package http

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// ScheduleLimiterCleanup registers a cron job that drops idle per-user
// limiters so the map does not grow with every user ever seen.
func ScheduleLimiterCleanup(c *cron.Cron, spec string, limiter *WriteLimiter, logger *slog.Logger) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if removed := limiter.Cleanup(); removed > 0 {
			logger.Debug("write limiter cleanup", slog.Int("removed", removed))
		}
	})
}
