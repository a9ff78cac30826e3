package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "minivue").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "minivue",
		// renders are sub-millisecond for small trees
		Buckets:  prometheus.ExponentialBuckets(0.00001, 4, 10),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics groups the collectors for one renderer and scheduler pair.
type Metrics struct {
	flushesTotal   prometheus.Counter
	jobsTotal      prometheus.Counter
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	hostOpsTotal   *prometheus.CounterVec
	compilesTotal  *prometheus.CounterVec
	mountedGauge   prometheus.Gauge
}

// NewMetrics registers the collectors with the configured registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scheduler_flushes_total",
			Help:        "Number of job queue flushes",
			ConstLabels: config.ConstLabels,
		}),

		jobsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scheduler_jobs_total",
			Help:        "Number of jobs run by the scheduler",
			ConstLabels: config.ConstLabels,
		}),

		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_renders_total",
			Help:        "Number of component renders by phase",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "phase"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_render_duration_seconds",
			Help:        "Time spent rendering and patching a component",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"phase"}),

		hostOpsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_operations_total",
			Help:        "Number of host mutations by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		compilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "template_compiles_total",
			Help:        "Template compilations by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		mountedGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounted_components",
			Help:        "Number of currently mounted component instances",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Flush records one scheduler flush that ran jobs jobs.
func (m *Metrics) Flush(jobs int) {
	if m == nil {
		return
	}
	m.flushesTotal.Inc()
	m.jobsTotal.Add(float64(jobs))
}

// Render records a component render for phase "mount" or "update".
func (m *Metrics) Render(component, phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(component, phase).Inc()
	m.renderDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// HostOp counts one host mutation.
func (m *Metrics) HostOp(op string) {
	if m == nil {
		return
	}
	m.hostOpsTotal.WithLabelValues(op).Inc()
}

// Compile records a template compilation: "ok", "error", or "cached".
func (m *Metrics) Compile(result string) {
	if m == nil {
		return
	}
	m.compilesTotal.WithLabelValues(result).Inc()
}

// Mounted adjusts the mounted component gauge by delta.
func (m *Metrics) Mounted(delta int) {
	if m == nil {
		return
	}
	m.mountedGauge.Add(float64(delta))
}
