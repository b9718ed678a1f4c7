// Package metrics provides Prometheus metrics for the Norwegian ID MCP server.
// It tracks tool calls, validation outcomes, generation retries, enumerations
// and cache performance.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "norwegian_id_mcp"
)

// Generation outcomes
const (
	OutcomeFound     = "found"
	OutcomeExhausted = "exhausted"
	OutcomeRejected  = "rejected"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.0001, .001, .01, .05, .1, .5, 1, 5, 10, 30},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// ValidationsTotal counts validations by kind and result code
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "validations_total",
		Help:      "Identifier validations by kind and result code",
	}, []string{"kind", "code"})

	// GenerationsTotal counts generation requests by kind, mode and outcome
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "generations_total",
		Help:      "Identifier generation requests by kind, mode and outcome",
	}, []string{"kind", "mode", "outcome"})

	// GeneratedIdentifiers counts identifiers handed out
	GeneratedIdentifiers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "generated_identifiers_total",
		Help:      "Identifiers returned by generation tools",
	}, []string{"kind"})

	// EnumerationDuration measures full and partial domain walks
	EnumerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "enumeration_duration_seconds",
		Help:      "Duration of identifier domain walks by kind",
		Buckets:   []float64{.01, .1, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"kind"})

	// EnumerationsInFlight tracks walks holding a limiter slot
	EnumerationsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "enumerations_in_flight",
		Help:      "Number of identifier domain walks currently running",
	})

	// EnumerationsShared counts requests served by a walk already in flight
	EnumerationsShared = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "enumerations_shared_total",
		Help:      "Enumeration requests coalesced into an in-flight walk",
	})

	// CacheHits counts cache hits
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_hits_total",
		Help:      "Total cache hit count",
	})

	// CacheMisses counts cache misses
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_misses_total",
		Help:      "Total cache miss count",
	})

	// CacheSize tracks current cache entry count
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "cache_entries",
		Help:      "Current number of cache entries",
	})

	// RateLimitRejections counts requests rejected due to rate limiting
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected due to rate limiting",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordValidation records one validation outcome
func RecordValidation(kind, code string) {
	if kind == "" {
		kind = "any"
	}
	ValidationsTotal.WithLabelValues(kind, code).Inc()
}

// RecordGeneration records a generation request and how many identifiers it
// returned.
func RecordGeneration(kind, mode, outcome string, produced int) {
	GenerationsTotal.WithLabelValues(kind, mode, outcome).Inc()
	if produced > 0 {
		GeneratedIdentifiers.WithLabelValues(kind).Add(float64(produced))
	}
}

// RecordEnumeration records a finished domain walk
func RecordEnumeration(kind string, duration float64, shared bool) {
	EnumerationDuration.WithLabelValues(kind).Observe(duration)
	if shared {
		EnumerationsShared.Inc()
	}
}

// RecordCacheAccess records a cache hit or miss
func RecordCacheAccess(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// SetCacheSize updates the current cache size gauge
func SetCacheSize(size int64) {
	CacheSize.Set(float64(size))
}
