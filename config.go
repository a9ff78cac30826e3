package minivue

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/minivue/internal/config"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/telemetry"
)

// Config configures an App.
type Config struct {
	// Logger receives diagnostics from every layer.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics collects render, flush, and host counters. Nil disables them.
	Metrics *telemetry.Metrics

	// Tracer wraps mounts, updates, flushes, and compiles in spans.
	// Nil disables tracing.
	Tracer *telemetry.Tracer

	// Compiler compiles component templates.
	// If nil, a caching compiler is created per app.
	Compiler runtime.CompileFunc

	// Debug logs every host operation at debug level.
	Debug bool
}

// Option configures CreateApp.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Config) { c.Metrics = m }
}

// WithTracer sets the tracer.
func WithTracer(t *telemetry.Tracer) Option {
	return func(c *Config) { c.Tracer = t }
}

// WithCompiler sets the template compiler.
func WithCompiler(fn runtime.CompileFunc) Option {
	return func(c *Config) { c.Compiler = fn }
}

// FromFile builds a Config from a loaded configuration file. Metrics are
// registered with reg when enabled; a nil reg uses the default registerer.
func FromFile(file *config.Config, logger *slog.Logger, reg prometheus.Registerer) Config {
	cfg := Config{
		Logger: logger,
		Debug:  file.Debug,
	}
	if file.Metrics.Enabled {
		opts := []telemetry.MetricsOption{telemetry.WithNamespace(file.Metrics.Namespace)}
		if reg != nil {
			opts = append(opts, telemetry.WithRegistry(reg))
		}
		cfg.Metrics = telemetry.NewMetrics(opts...)
	}
	if file.Tracing.Enabled {
		cfg.Tracer = telemetry.NewTracer(file.Tracing.ServiceName)
	}
	return cfg
}
