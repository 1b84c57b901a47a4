// Package tracing holds the process-wide tracer. When no tracer has been
// installed every helper degrades to a no-op, so library code can create
// spans unconditionally.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer

// SetTracer installs the tracer used by all spans started through this
// package. Call once during startup.
func SetTracer(t trace.Tracer) {
	tracer = t
}

// StartSpan starts a child span of whatever span the context carries.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name)
}

// ActiveSpan returns the context's span, or nil when tracing is off.
func ActiveSpan(ctx context.Context) trace.Span {
	if tracer == nil {
		return nil
	}
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	return span
}

// TraceParent renders the current span as a W3C traceparent header value,
// suitable for propagation on outgoing messages.
func TraceParent(ctx context.Context) string {
	if ActiveSpan(ctx) == nil {
		return ""
	}
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)
	return carrier.Get("traceparent")
}

// TraceID returns the current trace id, or empty when tracing is off.
func TraceID(ctx context.Context) string {
	span := ActiveSpan(ctx)
	if span == nil {
		return ""
	}
	return span.SpanContext().TraceID().String()
}
