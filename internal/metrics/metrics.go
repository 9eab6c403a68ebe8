// Package metrics defines Prometheus metrics for borderroute.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "borderroute_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borderroute_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borderroute_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borderroute_lookups_total",
			Help: "Adjacency lookups by resolver mode and result",
		},
		[]string{"mode", "result"},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "borderroute_resolver_cache_hits_total",
			Help: "Lookups answered by the cross-search resolver cache",
		},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borderroute_searches_total",
			Help: "Completed route searches by final state",
		},
		[]string{"state"},
	)

	SearchRounds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "borderroute_search_rounds",
			Help:    "Expansion rounds per route search",
			Buckets: prometheus.LinearBuckets(0, 2, 12),
		},
	)

	SearchQueries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "borderroute_search_queries",
			Help:    "Adjacency lookups issued per route search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "borderroute_websocket_connections",
			Help: "Active route stream connections",
		},
	)

	SnapshotCountries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "borderroute_snapshot_countries",
			Help: "Countries in the persisted border snapshot",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		LookupsTotal, CacheHits,
		SearchesTotal, SearchRounds, SearchQueries,
		WSConnections, SnapshotCountries,
	)
}
