// Package metrics provides Prometheus metrics for the score engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service records.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Engine metrics
	recomputesTotal     prometheus.Counter
	recomputeFailures   prometheus.Counter
	recomputeLatency    prometheus.Histogram
	propagationsSkipped prometheus.Counter
	eventsPublished     *prometheus.CounterVec
	fanOutSize          prometheus.Histogram

	// State gauges
	trackedResearchers prometheus.Gauge
	activeResearchers  prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoreboard",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recomputesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recomputes_total",
		Help:      "Total number of score recomputations persisted",
	})

	m.recomputeFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_failures_total",
		Help:      "Total number of per-researcher recompute failures",
	})

	m.recomputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_latency_milliseconds",
		Help:      "Histogram of single-researcher recompute latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.propagationsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "propagations_skipped_total",
		Help:      "Total number of propagation units skipped due to missing references",
	})

	m.eventsPublished = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_published_total",
		Help:      "Total number of domain events published, by kind",
	}, []string{"kind"})

	m.fanOutSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fan_out_size",
		Help:      "Histogram of the number of researchers recomputed per fan-out trigger",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	})

	m.trackedResearchers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_researchers",
		Help:      "Number of researchers with a persisted score record",
	})

	m.activeResearchers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_researchers",
		Help:      "Number of active researchers known to the source",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests, by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers recording on the global manager.

// RecordRecompute counts one persisted recomputation with its latency.
func RecordRecompute(latencyMs float64) {
	globalManager.recomputesTotal.Inc()
	globalManager.recomputeLatency.Observe(latencyMs)
}

// RecordRecomputeFailure counts one failed per-researcher recompute.
func RecordRecomputeFailure() {
	globalManager.recomputeFailures.Inc()
}

// RecordPropagationSkipped counts one propagation unit skipped because the
// referenced researcher, line or article no longer exists.
func RecordPropagationSkipped() {
	globalManager.propagationsSkipped.Inc()
}

// RecordEventPublished counts one published domain event.
func RecordEventPublished(kind string) {
	globalManager.eventsPublished.WithLabelValues(kind).Inc()
}

// RecordFanOutSize observes the number of researchers touched by one
// fan-out trigger.
func RecordFanOutSize(n int) {
	globalManager.fanOutSize.Observe(float64(n))
}

// UpdateTrackedResearchers sets the score record count gauge.
func UpdateTrackedResearchers(n int) {
	globalManager.trackedResearchers.Set(float64(n))
}

// UpdateActiveResearchers sets the active researcher gauge.
func UpdateActiveResearchers(n int) {
	globalManager.activeResearchers.Set(float64(n))
}

// RecordHTTPRequest counts one handled HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request's duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// GetRegistry returns the registry metrics are exposed from.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
