// Package metrics provides Prometheus metrics for the club site.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeStatus    = "bad_status"
	OutcomeDecode    = "decode_error"
)

// Manager manages all Prometheus metrics for the site.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Data source
	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec

	// Loaded content
	catalogEvents      prometheus.Gauge
	leaderboardPlayers prometheus.Gauge
	lastLoadUnix       *prometheus.GaugeVec
	reloads            prometheus.Counter

	// Interaction
	intents *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	renderErrors        *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "blindern",
		subsystem:        "site",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
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
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: m.constLabels,
		}
	}
	histOpts := func(name, help string) prometheus.HistogramOpts {
		o := opts(name, help)
		return prometheus.HistogramOpts{
			Namespace:   o.Namespace,
			Subsystem:   o.Subsystem,
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Buckets:     m.histogramBuckets,
		}
	}

	m.fetchTotal = auto.NewCounterVec(prometheus.CounterOpts(opts(
		"fetch_total", "Data source fetches by resource and outcome")),
		[]string{"resource", "outcome"})
	m.fetchDuration = auto.NewHistogramVec(histOpts(
		"fetch_duration_seconds", "Data source fetch latency in seconds"),
		[]string{"resource"})

	m.catalogEvents = auto.NewGauge(prometheus.GaugeOpts(opts(
		"catalog_events", "Number of events in the loaded catalog")))
	m.leaderboardPlayers = auto.NewGauge(prometheus.GaugeOpts(opts(
		"leaderboard_players", "Number of players in the loaded leaderboard")))
	m.lastLoadUnix = auto.NewGaugeVec(prometheus.GaugeOpts(opts(
		"last_load_timestamp_seconds", "Unix time of the last successful load per resource")),
		[]string{"resource"})
	m.reloads = auto.NewCounter(prometheus.CounterOpts(opts(
		"reloads_total", "Number of content reloads")))

	m.intents = auto.NewCounterVec(prometheus.CounterOpts(opts(
		"intents_total", "User intents dispatched by kind and whether they changed state")),
		[]string{"kind", "applied"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts(opts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method")),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(histOpts(
		"http_request_duration_seconds", "HTTP request duration in seconds"),
		[]string{"endpoint", "method", "status_code"})
	m.renderErrors = auto.NewCounterVec(prometheus.CounterOpts(opts(
		"render_errors_total", "Template execution failures by page")),
		[]string{"page"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts(opts(
		"system_memory_usage_bytes", "System memory usage in bytes")))
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts(opts(
		"system_goroutine_count", "Number of goroutines")))
}

// RecordFetch counts one data source fetch and its latency.
func (m *Manager) RecordFetch(resource, outcome string, d time.Duration) {
	m.fetchTotal.WithLabelValues(resource, outcome).Inc()
	m.fetchDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// RecordFetch counts one data source fetch on the global manager.
func RecordFetch(resource, outcome string, d time.Duration) {
	globalManager.RecordFetch(resource, outcome, d)
}

// UpdateCatalogEvents sets the loaded event count.
func UpdateCatalogEvents(n int) {
	globalManager.catalogEvents.Set(float64(n))
}

// UpdateLeaderboardPlayers sets the loaded player count.
func UpdateLeaderboardPlayers(n int) {
	globalManager.leaderboardPlayers.Set(float64(n))
}

// MarkLoaded stamps the last successful load time of resource.
func MarkLoaded(resource string, at time.Time) {
	globalManager.lastLoadUnix.WithLabelValues(resource).Set(float64(at.Unix()))
}

// RecordReload counts one content reload.
func RecordReload() {
	globalManager.reloads.Inc()
}

// RecordIntent counts a dispatched intent.
func RecordIntent(kind string, applied bool) {
	a := "false"
	if applied {
		a = "true"
	}
	globalManager.intents.WithLabelValues(kind, a).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, d time.Duration) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(d.Seconds())
}

// RecordRenderError counts a failed page render.
func RecordRenderError(page string) {
	globalManager.renderErrors.WithLabelValues(page).Inc()
}

// UpdateSystemMemoryUsage sets system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
