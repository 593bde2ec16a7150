package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics for a live server.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "formwork").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event handling duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
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

// Metrics holds the live server's Prometheus collectors.
type Metrics struct {
	sessionsActive  prometheus.Gauge
	eventsTotal     *prometheus.CounterVec
	eventErrors     prometheus.Counter
	submitsTotal    *prometheus.CounterVec
	eventDuration   prometheus.Histogram
	snapshotsPushed prometheus.Counter
}

// NewMetrics creates and registers the live server metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := &MetricsConfig{
		Namespace: "formwork",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "live",
			Name:        "sessions_active",
			Help:        "Number of open form sessions.",
			ConstLabels: cfg.ConstLabels,
		}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "live",
			Name:        "events_total",
			Help:        "Client events received, by type.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"type"}),
		eventErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "live",
			Name:        "event_errors_total",
			Help:        "Client events that failed to decode or apply.",
			ConstLabels: cfg.ConstLabels,
		}),
		submitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "live",
			Name:        "submits_total",
			Help:        "Submit triggers, by outcome (accepted or rejected).",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),
		eventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "live",
			Name:        "event_duration_seconds",
			Help:        "Time spent applying an event and recomputing form state.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),
		snapshotsPushed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "live",
			Name:        "snapshots_pushed_total",
			Help:        "State snapshots pushed to clients.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}
