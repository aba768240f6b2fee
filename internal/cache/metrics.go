package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits counts cache reads that returned a live entry.
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_cache_hits_total",
			Help: "Total number of cache reads served from a live entry",
		},
		[]string{"namespace"},
	)

	// Misses counts cache reads that found no usable entry.
	Misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_cache_misses_total",
			Help: "Total number of cache reads that found no entry, an expired entry or a corrupt entry",
		},
		[]string{"namespace"},
	)

	// Evictions counts entries removed because a read found them expired or corrupt.
	Evictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_cache_evictions_total",
			Help: "Total number of entries evicted at read time",
		},
		[]string{"namespace"},
	)

	// Invalidations counts entries removed by explicit invalidation calls.
	Invalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_cache_invalidations_total",
			Help: "Total number of entries removed by prefix or full invalidation",
		},
		[]string{"namespace"},
	)

	// WriteFailures counts cache writes swallowed because the backing store failed.
	WriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_cache_write_failures_total",
			Help: "Total number of cache writes dropped due to storage errors",
		},
		[]string{"namespace"},
	)
)
