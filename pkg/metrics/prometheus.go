// Package metrics provides Prometheus metrics for the wbdash indicator service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Fetch outcomes recorded by RecordUpstreamFetch.
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "bad_status"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
	OutcomeEmpty     = "empty"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Upstream
	upstreamFetches      *prometheus.CounterVec
	upstreamLatency      prometheus.Histogram
	upstreamRecords      prometheus.Counter
	upstreamPagesFetched prometheus.Counter

	// Cache
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheEntries prometheus.Gauge
	cachePurged  prometheus.Counter

	// Analysis
	analysisRuns    *prometheus.CounterVec
	analysisLatency *prometheus.HistogramVec
	countriesScored prometheus.Counter
	featureRows     prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
	systemCPUPercent     prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wbdash",
		subsystem:        "indicators",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	return m.metricPrefix + n
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels, Buckets: buckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels, Buckets: m.histogramBuckets,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.upstreamFetches = m.counterVec("upstream_fetches_total", "World Bank API fetches by outcome", "outcome")
	m.upstreamLatency = m.histogram("upstream_fetch_latency_milliseconds", "Latency of one World Bank API fetch including paging", m.histogramBuckets)
	m.upstreamRecords = m.counter("upstream_records_total", "Non-null indicator records received from the World Bank API")
	m.upstreamPagesFetched = m.counter("upstream_pages_total", "Result pages requested from the World Bank API")

	m.cacheHits = m.counter("cache_hits_total", "Fetch cache hits")
	m.cacheMisses = m.counter("cache_misses_total", "Fetch cache misses")
	m.cacheEntries = m.gauge("cache_entries", "Live entries in the fetch cache")
	m.cachePurged = m.counter("cache_purged_total", "Expired cache entries removed by the purge job")

	m.analysisRuns = m.counterVec("analysis_runs_total", "Analysis runs by kind and outcome", "kind", "outcome")
	m.analysisLatency = m.histogramVec("analysis_latency_milliseconds", "Analysis latency by kind", "kind")
	m.countriesScored = m.counter("countries_scored_total", "Countries that received a composite score")
	m.featureRows = m.histogram("feature_rows", "Rows produced per feature table assembly", []float64{0, 5, 10, 25, 50, 100, 250, 500})

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of requests that ended in error", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Allocated heap bytes")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds", "Average GC pause in milliseconds", []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50})
	m.systemCPUPercent = m.gauge("system_cpu_percent", "Host CPU utilisation percent")
}

// RecordUpstreamFetch counts one fetch and its latency.
func RecordUpstreamFetch(outcome string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.upstreamFetches.WithLabelValues(outcome).Inc()
	globalManager.upstreamLatency.Observe(latencyMs)
}

// RecordUpstreamRecords adds n received records.
func RecordUpstreamRecords(n int) {
	if globalManager.enabled {
		globalManager.upstreamRecords.Add(float64(n))
	}
}

// RecordUpstreamPage counts one requested page.
func RecordUpstreamPage() {
	if globalManager.enabled {
		globalManager.upstreamPagesFetched.Inc()
	}
}

// RecordCacheHit counts a cache hit.
func RecordCacheHit() {
	if globalManager.enabled {
		globalManager.cacheHits.Inc()
	}
}

// RecordCacheMiss counts a cache miss.
func RecordCacheMiss() {
	if globalManager.enabled {
		globalManager.cacheMisses.Inc()
	}
}

// UpdateCacheEntries sets the live entry gauge.
func UpdateCacheEntries(n int) {
	if globalManager.enabled {
		globalManager.cacheEntries.Set(float64(n))
	}
}

// RecordCachePurged adds n purged entries.
func RecordCachePurged(n int) {
	if globalManager.enabled {
		globalManager.cachePurged.Add(float64(n))
	}
}

// RecordAnalysis counts one analysis run of kind with its outcome and latency.
func RecordAnalysis(kind, outcome string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.analysisRuns.WithLabelValues(kind, outcome).Inc()
	globalManager.analysisLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordCountriesScored adds n scored countries.
func RecordCountriesScored(n int) {
	if globalManager.enabled {
		globalManager.countriesScored.Add(float64(n))
	}
}

// RecordFeatureRows observes the size of one assembled feature table.
func RecordFeatureRows(n int) {
	if globalManager.enabled {
		globalManager.featureRows.Observe(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByComponent records an error for a component.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// UpdateSystemCPUPercent sets host CPU utilisation.
func UpdateSystemCPUPercent(pct float64) {
	if globalManager.enabled {
		globalManager.systemCPUPercent.Set(pct)
	}
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
