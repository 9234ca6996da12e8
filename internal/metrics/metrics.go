package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ucd_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ucd_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ucd_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)

// Lookup and transform metrics.
var (
	CharacterLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ucd_character_lookups_total",
		Help: "Character lookups by kind (codepoint, name, partial) and result",
	}, []string{"kind", "result"})

	CasefoldRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ucd_casefold_requests_total",
		Help: "Casefold requests by fold variant",
	}, []string{"variant"})

	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ucd_dataset_load_duration_seconds",
		Help:    "Time spent parsing the UCD tables at startup",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	QueryLogErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ucd_query_log_errors_total",
		Help: "Failures writing to the query log",
	})
)

// Database pool metrics, exported only when the PostgreSQL backend is
// in use.
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ucd_db_pool_total_conns",
		Help: "Total connections in the pgx pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ucd_db_pool_idle_conns",
		Help: "Idle connections in the pgx pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ucd_db_pool_acquired_conns",
		Help: "Acquired connections in the pgx pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ucd_db_pool_max_conns",
		Help: "Maximum connections allowed in the pgx pool",
	})
)
