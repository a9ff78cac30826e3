// Package telemetry holds the Prometheus metrics and OpenTelemetry spans
// reported by the renderer, scheduler, and compiler.
//
// Both types are optional and nil-safe: a nil *Metrics or *Tracer turns
// every call into a no-op, so instrumented code never checks for them.
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	r := runtime.NewRenderer(host, runtime.WithMetrics(m))
package telemetry
