package telemetry

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName is the instrumentation name used for spans.
const DefaultTracerName = "github.com/vango-dev/minivue"

// Attribute keys set on spans.
const (
	AttrComponent  = attribute.Key("minivue.component")
	AttrJobs       = attribute.Key("minivue.jobs")
	AttrTemplate   = attribute.Key("minivue.template_bytes")
	AttrCacheHit   = attribute.Key("minivue.cache_hit")
	AttrPanicStack = attribute.Key("minivue.panic.stack")
)

// Tracer starts spans from the global OpenTelemetry provider.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer resolves a tracer from the global provider. Configure the
// provider with otel.SetTracerProvider before calling.
func NewTracer(name string) *Tracer {
	if name == "" {
		name = DefaultTracerName
	}
	return &Tracer{tracer: otel.Tracer(name)}
}

// Start begins a span. A nil Tracer returns ctx's current span, which is a
// no-op span when none is recording.
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// End records err on span, sets its status, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// EndRecover ends span, recording a panic in progress and the stack of
// the panicking goroutine before re-raising it.
// Use as: defer telemetry.EndRecover(span).
func EndRecover(span trace.Span) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = panicError{value: r}
		}
		// The deferred call still runs on top of the panicking frames.
		span.SetAttributes(AttrPanicStack.String(string(debug.Stack())))
		span.RecordError(err, trace.WithStackTrace(true))
		span.SetStatus(codes.Error, err.Error())
		span.End()
		panic(r)
	}
	End(span, nil)
}

type panicError struct{ value any }

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
