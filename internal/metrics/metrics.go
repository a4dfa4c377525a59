package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts HTTP requests by handler and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests",
		},
		[]string{"handler", "status"},
	)

	// HttpRequestDuration measures handler latency.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests",
		},
		[]string{"handler"},
	)

	// OrdersCreated counts created orders by kind: "cod", "partial_cod".
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Number of orders created by the intake pipeline",
		},
		[]string{"kind"},
	)

	// ValidationFailures counts rejected submissions by failed rule.
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Number of submissions rejected by the validation gate",
		},
		[]string{"field"},
	)

	// SequenceRetries counts order-name collisions resolved by retry.
	SequenceRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_sequence_retries_total",
			Help: "Number of order name collisions retried on insert",
		},
	)

	// LookupResults counts identity resolutions by source:
	// "directory", "orders", "directory_normalized", "orders_normalized",
	// "cache", "not_found".
	LookupResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_lookup_results_total",
			Help: "Number of customer lookups by resolution source",
		},
		[]string{"source"},
	)

	// PlatformRequests counts draft-order calls by outcome:
	// "success", "unauthorized", "user_error", "transport_error".
	PlatformRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_requests_total",
			Help: "Number of external platform draft-order calls",
		},
		[]string{"outcome"},
	)

	// EventsPublished counts order events by status: "success", "error".
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Number of order-created events published",
		},
		[]string{"status"},
	)

	// DBErrors counts storage failures by operation.
	DBErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Number of storage operation failures",
		},
		[]string{"operation"},
	)

	// CacheHits counts lookup cache hits.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Number of customer cache hits",
		},
	)

	// CacheMisses counts lookup cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Number of customer cache misses",
		},
	)

	// CacheSize tracks the current number of cached customer matches.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size_items",
			Help: "Current customer cache size in items",
		},
	)

	// CacheEvictions counts LRU evictions.
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Number of customer cache evictions",
		},
	)
)

// Init exists for call sites that want an explicit registration point;
// promauto registers every collector at package init.
func Init() {
	log.Println("Prometheus metrics initialized.")
}
