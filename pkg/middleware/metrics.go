package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for cycle duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
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

// WithBuckets sets the cycle duration histogram buckets.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the render and transport metrics.
type Metrics struct {
	cyclesTotal    *prometheus.CounterVec
	cycleDuration  *prometheus.HistogramVec
	cycleErrors    *prometheus.CounterVec
	cycleMutations prometheus.Histogram
	changesTotal   *prometheus.CounterVec
	framesSent     prometheus.Counter
	frameBytes     prometheus.Counter
	activeClients  prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

// NewMetrics registers the metrics with the configured registry.
//
// Metrics collected:
//   - vtree_cycles_total: Counter of render cycles by action and status
//   - vtree_cycle_duration_seconds: Histogram of cycle duration by action
//   - vtree_cycle_errors_total: Counter of failed cycles by action and error type
//   - vtree_cycle_mutations: Histogram of live mutations per cycle
//   - vtree_changes_total: Counter of visited positions by change kind
//   - vtree_frames_sent_total: Counter of patch frames sent to clients
//   - vtree_frame_bytes_total: Counter of patch frame bytes sent
//   - vtree_active_clients: Gauge of connected WebSocket clients
//   - vtree_websocket_errors_total: Counter of WebSocket errors by type
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		cyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycles_total",
			Help:        "Total number of render cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"action", "status"}),

		cycleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycle_duration_seconds",
			Help:        "Render and patch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"action"}),

		cycleErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycle_errors_total",
			Help:        "Total number of failed render cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"action", "error_type"}),

		cycleMutations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycle_mutations",
			Help:        "Live tree mutations per render cycle",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),

		changesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "changes_total",
			Help:        "Visited tree positions by change kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_sent_total",
			Help:        "Total number of patch frames sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		frameBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frame_bytes_total",
			Help:        "Total bytes of patch frames sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_clients",
			Help:        "Number of connected WebSocket clients",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus returns cycle middleware that records m.
//
// Example:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("myapp"))
//	a := app.New(doc, doc.Root(), view, state,
//	    app.WithMiddleware(middleware.Prometheus(m)),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(m *Metrics) app.Middleware {
	return func(ctx context.Context, c *app.Cycle, next func(context.Context) error) error {
		start := time.Now()

		err := next(ctx)

		m.cycleDuration.WithLabelValues(c.Action).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.cycleErrors.WithLabelValues(c.Action, categorizeError(err)).Inc()
		} else {
			m.cycleMutations.Observe(float64(c.Mutations))
		}
		for kind, n := range c.Changes {
			m.changesTotal.WithLabelValues(kind.String()).Add(float64(n))
		}
		m.cyclesTotal.WithLabelValues(c.Action, status).Inc()

		return err
	}
}

// categorizeError returns a low-cardinality label for a cycle error.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, dom.ErrUnknownTag):
		return "unknown_tag"
	case errors.Is(err, reconcile.ErrNotHandler):
		return "bad_handler"
	case errors.Is(err, reconcile.ErrReorderUnsupported):
		return "reorder_unsupported"
	case errors.Is(err, dom.ErrIndexOutOfRange), errors.Is(err, dom.ErrNotElement):
		return "host"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case strings.Contains(err.Error(), "panic"):
		return "panic"
	default:
		return "internal"
	}
}

// RecordFrame records one patch frame of size bytes sent to a client.
func (m *Metrics) RecordFrame(size int) {
	m.framesSent.Inc()
	m.frameBytes.Add(float64(size))
}

// ClientConnected records a new WebSocket client.
func (m *Metrics) ClientConnected() {
	m.activeClients.Inc()
}

// ClientDisconnected records a WebSocket client going away.
func (m *Metrics) ClientDisconnected() {
	m.activeClients.Dec()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}

// ActiveClients returns the connected-clients gauge.
func (m *Metrics) ActiveClients() prometheus.Gauge {
	return m.activeClients
}

// WebSocketErrors returns the error counter for errorType.
func (m *Metrics) WebSocketErrors(errorType string) prometheus.Counter {
	return m.wsErrors.WithLabelValues(errorType)
}
