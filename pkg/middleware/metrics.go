package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "stateview").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "stateview",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for stateview.
type metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	bookmarkRedirects prometheus.Counter
	resolveFallbacks  *prometheus.CounterVec
	cookiesWritten    prometheus.Counter
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP requests handled",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Request processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		bookmarkRedirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bookmark_redirects_total",
			Help:        "Total number of bookmark redirects issued from persisted state",
			ConstLabels: config.ConstLabels,
		}),

		resolveFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_fallbacks_total",
			Help:        "Total number of state resolutions that degraded to type defaults",
			ConstLabels: config.ConstLabels,
		}, []string{"path"}),

		cookiesWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_cookies_written_total",
			Help:        "Total number of state cookies written back to clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// statusWriter captures the status code written by downstream handlers.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Prometheus creates middleware that collects Prometheus metrics for every
// request passing through it.
//
// Metrics collected:
//   - stateview_requests_total: Counter of requests by path and status
//   - stateview_request_duration_seconds: Histogram of request duration
//   - stateview_bookmark_redirects_total: Counter of bookmark redirects
//     (incremented by the StateURLs middleware)
//   - stateview_resolve_fallbacks_total: Counter of degraded resolutions
//     (incremented via RecordResolveFallback)
//   - stateview_state_cookies_written_total: Counter of state cookies written
//
// Example:
//
//	r.Use(middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	))
//
//	// Expose metrics endpoint
//	r.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "" {
				path = "/"
			}

			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(sw, r)

			duration := time.Since(start).Seconds()
			m.requestDuration.WithLabelValues(path).Observe(duration)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}
			m.requestsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
		})
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordBookmarkRedirect records a bookmark redirect issued from persisted
// cookie state. The StateURLs middleware calls this on every redirect.
func RecordBookmarkRedirect() {
	if globalMetrics != nil {
		globalMetrics.bookmarkRedirects.Inc()
	}
}

// RecordResolveFallback records a state resolution that degraded to the
// type's defaults. Wire this to the resolve pipeline's fallback hook.
func RecordResolveFallback(path string) {
	if globalMetrics != nil {
		globalMetrics.resolveFallbacks.WithLabelValues(path).Inc()
	}
}

// RecordCookiesWritten records state cookies written back to a client.
func RecordCookiesWritten(count int) {
	if globalMetrics != nil {
		globalMetrics.cookiesWritten.Add(float64(count))
	}
}
