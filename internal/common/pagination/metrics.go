package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts resolved listing pages.
	// Labels: listing (index, group_list, profile, follow_index), page_range (1-10, 11-50, ...)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_pagination_requests_total",
			Help: "Total number of resolved listing pages",
		},
		[]string{"listing", "page_range"},
	)

	// AdjustedTotal counts page requests that were defaulted or clamped.
	AdjustedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_pagination_adjusted_total",
			Help: "Total number of page requests corrected to a valid page",
		},
		[]string{"listing", "reason"},
	)

	// DurationSeconds tracks how long building a listing page takes.
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yatube_pagination_duration_seconds",
			Help:    "Listing page build duration distribution",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0},
		},
		[]string{"listing"},
	)
)

// RecordPage records a resolved page for a listing.
func RecordPage[T any](listing string, p Page[T]) {
	RequestsTotal.WithLabelValues(listing, getPageRangeBucket(p.Number)).Inc()
	if p.Adjusted != AdjustNone {
		AdjustedTotal.WithLabelValues(listing, string(p.Adjusted)).Inc()
	}
}

// RecordDuration records listing build duration in seconds.
func RecordDuration(listing string, duration float64) {
	DurationSeconds.WithLabelValues(listing).Observe(duration)
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
