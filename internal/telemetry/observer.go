// Package telemetry records tool invocations and NS API requests into
// OpenTelemetry. Without a configured SDK the global providers are no-ops.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/bbernstein/nstravel"

// Observer is safe for concurrent use; a nil *Observer discards everything.
type Observer struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	requests    metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewObserver creates an observer bound to the provided meter/tracer.
func NewObserver(meter metric.Meter, tracer trace.Tracer) (*Observer, error) {
	invocations, err := meter.Int64Counter(
		"nstravel.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	requests, err := meter.Int64Counter(
		"nstravel.ns.requests",
		metric.WithDescription("Number of NS API requests"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"nstravel.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Observer{
		tracer:      tracer,
		invocations: invocations,
		requests:    requests,
		latency:     latency,
	}, nil
}

// Default builds an observer on the global otel providers.
func Default() *Observer {
	o, err := NewObserver(
		otel.GetMeterProvider().Meter(instrumentationName),
		otel.GetTracerProvider().Tracer(instrumentationName),
	)
	if err != nil {
		return nil
	}
	return o
}

// StartRequest opens a span for one NS API request. The returned func must be
// called with the HTTP status (0 when no response arrived) and the final error.
func (o *Observer) StartRequest(ctx context.Context, endpoint string) (context.Context, func(status int, err error)) {
	if o == nil || o.tracer == nil {
		return ctx, func(int, error) {}
	}

	ctx, span := o.tracer.Start(ctx, "ns.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("ns.endpoint", endpoint)),
	)
	return ctx, func(status int, err error) {
		attrs := []attribute.KeyValue{
			attribute.String("ns.endpoint", endpoint),
			attribute.Int("http.status_code", status),
		}
		span.SetAttributes(attrs...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		o.requests.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	}
}

// ObserveInvocation records one finished tool call.
func (o *Observer) ObserveInvocation(ctx context.Context, tool, outcome string, elapsed time.Duration) {
	if o == nil {
		return
	}

	options := metric.WithAttributes(
		attribute.String("tool_name", tool),
		attribute.String("outcome", outcome),
	)
	o.invocations.Add(ctx, 1, options)
	o.latency.Record(ctx, elapsed.Seconds(), options)
}
