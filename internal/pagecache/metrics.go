package pagecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit    = "hit"
	resultMiss   = "miss"
	resultBypass = "bypass"
	resultError  = "error"
)

var (
	// LookupsTotal counts cache lookups by route, partition and result.
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_pagecache_lookups_total",
			Help: "Total number of page cache lookups",
		},
		[]string{"route", "partition", "result"},
	)

	// StoredTotal counts responses written to the cache.
	StoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_pagecache_stored_total",
			Help: "Total number of responses stored in the page cache",
		},
		[]string{"route"},
	)

	// SweptTotal counts expired entries removed by the sweeper.
	SweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yatube_pagecache_swept_total",
			Help: "Total number of expired entries removed eagerly",
		},
	)
)

func partitionLabel(authenticated bool) string {
	if authenticated {
		return partitionAuth
	}
	return partitionAnon
}
