// Package metrics exposes Prometheus instrumentation for the layout server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Simulation Metrics
	TicksTotal     prometheus.Counter
	TickDuration   prometheus.Histogram
	SettlesTotal   prometheus.Counter
	DragEvents     *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	// Persistence Metrics
	LayoutOperations *prometheus.CounterVec

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initSimulationMetrics()
	r.initHTTPMetrics()

	return r
}

func (r *Registry) initSimulationMetrics() {
	r.TicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "forcegraph_ticks_total",
			Help: "Total number of simulation ticks executed",
		},
	)

	r.TickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forcegraph_tick_duration_seconds",
			Help:    "Wall time of a single simulation tick",
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.SettlesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "forcegraph_settles_total",
			Help: "Number of times a simulation cooled below alpha_min",
		},
	)

	r.DragEvents = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "forcegraph_drag_events_total",
			Help: "Drag gestures by phase",
		},
		[]string{"phase"},
	)

	r.ActiveSessions = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "forcegraph_active_sessions",
			Help: "Number of live simulation sessions",
		},
	)

	r.LayoutOperations = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "forcegraph_layout_operations_total",
			Help: "Layout persistence operations",
		},
		[]string{"operation", "status"},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "forcegraph_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forcegraph_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
}

// RecordTick records one tick executed by the host loop
func (r *Registry) RecordTick(duration time.Duration) {
	r.TicksTotal.Inc()
	r.TickDuration.Observe(duration.Seconds())
}

// RecordBatch records ticks executed synchronously by step or run
func (r *Registry) RecordBatch(ticks int, duration time.Duration) {
	if ticks <= 0 {
		return
	}
	r.TicksTotal.Add(float64(ticks))
	r.TickDuration.Observe(duration.Seconds() / float64(ticks))
}

// RecordSettle records a simulation cooling below alpha_min
func (r *Registry) RecordSettle() {
	r.SettlesTotal.Inc()
}

// RecordDrag records a drag gesture phase (start, move, end)
func (r *Registry) RecordDrag(phase string) {
	r.DragEvents.WithLabelValues(phase).Inc()
}

// RecordLayoutOperation records a freeze, thaw or delete against storage
func (r *Registry) RecordLayoutOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.LayoutOperations.WithLabelValues(operation, status).Inc()
}

// SetActiveSessions updates the live session gauge
func (r *Registry) SetActiveSessions(n int) {
	r.ActiveSessions.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
