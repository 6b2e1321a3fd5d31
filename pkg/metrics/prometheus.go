// Package metrics provides Prometheus metrics for the rankview gateway.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Manager manages all Prometheus metrics for the gateway.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Upstream Metrics - calls against the remote ranking service
	upstreamFetches       *prometheus.CounterVec
	upstreamFetchErrors   *prometheus.CounterVec
	upstreamFetchDuration *prometheus.HistogramVec
	weeksFallbacks        prometheus.Counter
	upstreamHealthy       prometheus.Gauge

	// Snapshot cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Gateway HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Default histogram buckets in milliseconds.
var defaultBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// New creates a Manager and registers all collectors on a fresh registry.
func New(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankview",
		subsystem:        "gateway",
		histogramBuckets: defaultBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.upstreamFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_fetches_total",
		Help:      "Requests issued against the remote ranking service, by operation.",
	}, []string{"operation"})

	m.upstreamFetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_fetch_errors_total",
		Help:      "Failed upstream requests, by operation.",
	}, []string{"operation"})

	m.upstreamFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_fetch_duration_ms",
		Help:      "Upstream request latency in milliseconds, by operation.",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.weeksFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weeks_fallbacks_total",
		Help:      "Times the weeks lookup fell back to the default 1..15 range.",
	})

	m.upstreamHealthy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_healthy",
		Help:      "Result of the last upstream health probe (1 healthy, 0 not).",
	})

	m.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_hits_total",
		Help:      "Rankings snapshot cache hits.",
	})

	m.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_misses_total",
		Help:      "Rankings snapshot cache misses.",
	})

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Gateway HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "Gateway HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.registry.MustRegister(
		m.upstreamFetches,
		m.upstreamFetchErrors,
		m.upstreamFetchDuration,
		m.weeksFallbacks,
		m.upstreamHealthy,
		m.cacheHits,
		m.cacheMisses,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

var (
	globalMu sync.Mutex
	global   *Manager
)

// Init installs the global manager used by the package-level helpers.
func Init(opts ...Option) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = New(opts...)
}

// GetRegistry returns the registry backing the global manager. It initializes
// a default manager on first use so /healthz can always serve something.
func GetRegistry() *prometheus.Registry {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = New()
	}
	return global.registry
}

func get() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = New()
	}
	return global
}

// RecordUpstreamFetch records one upstream request and its latency.
func RecordUpstreamFetch(operation string, durationMs float64) {
	m := get()
	if !m.enabled {
		return
	}
	m.upstreamFetches.WithLabelValues(operation).Inc()
	m.upstreamFetchDuration.WithLabelValues(operation).Observe(durationMs)
}

// RecordUpstreamError records one failed upstream request.
func RecordUpstreamError(operation string) {
	m := get()
	if !m.enabled {
		return
	}
	m.upstreamFetchErrors.WithLabelValues(operation).Inc()
}

// RecordWeeksFallback records a weeks lookup that substituted the default range.
func RecordWeeksFallback() {
	m := get()
	if !m.enabled {
		return
	}
	m.weeksFallbacks.Inc()
}

// SetUpstreamHealthy records the outcome of a health probe.
func SetUpstreamHealthy(healthy bool) {
	m := get()
	if !m.enabled {
		return
	}
	if healthy {
		m.upstreamHealthy.Set(1)
	} else {
		m.upstreamHealthy.Set(0)
	}
}

// RecordCacheHit records a snapshot cache hit.
func RecordCacheHit() {
	m := get()
	if !m.enabled {
		return
	}
	m.cacheHits.Inc()
}

// RecordCacheMiss records a snapshot cache miss.
func RecordCacheMiss() {
	m := get()
	if !m.enabled {
		return
	}
	m.cacheMisses.Inc()
}

// RecordHTTPRequest records one gateway HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	m := get()
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records gateway HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	m := get()
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
