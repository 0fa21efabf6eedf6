package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Flightline
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec
	DBConnections   prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	VisitsLoggedTotal    prometheus.Counter
	ComponentsOverdue    prometheus.GaugeVec
	ComponentsDueSoon    prometheus.GaugeVec
	DueScanDuration      prometheus.HistogramVec
	StatementsBuiltTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightline_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightline_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightline_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightline_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightline_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),
		DBConnections: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightline_db_connections",
				Help: "Current number of database connections",
			},
			[]string{"state"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightline_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightline_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		VisitsLoggedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightline_visits_logged_total",
				Help: "Total maintenance visits logged",
			},
		),
		ComponentsOverdue: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightline_components_overdue",
				Help: "Components currently past their effective due point, per school",
			},
			[]string{"school_id"},
		),
		ComponentsDueSoon: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightline_components_due_soon",
				Help: "Components inside the due-soon window, per school",
			},
			[]string{"school_id"},
		),
		DueScanDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightline_due_scan_duration_seconds",
				Help:    "Fleet due-status scan execution time in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"school_id"},
		),
		StatementsBuiltTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightline_statements_built_total",
				Help: "Total account statements assembled",
			},
		),
	}
}
