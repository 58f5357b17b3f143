package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanAdapt names the span covering one adapted call.
const SpanAdapt = "adapter.adapt"

// Span attribute keys.
const (
	AttrServiceName  = "service.name"
	AttrKind         = "call.kind"
	AttrCallID       = "call.id"
	AttrURL          = "http.url"
	AttrStatusCode   = "http.status_code"
	AttrDurationMs   = "duration_ms"
	AttrOutcome      = "outcome"
	AttrErrorMessage = "error.message"
)

// Operation is one traced call from dispatch to settlement.
type Operation struct {
	kind    string
	start   time.Time
	span    trace.Span
	metrics *Metrics
}

// StartOperation opens a client span on the global tracer and counts the
// call as pending. metrics may be nil.
func StartOperation(ctx context.Context, service, kind, callID string, metrics *Metrics, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, SpanAdapt,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrServiceName, service),
			attribute.String(AttrKind, kind),
			attribute.String(AttrCallID, callID),
		),
		trace.WithAttributes(attrs...),
	)
	metrics.started(ctx)
	return ctx, &Operation{kind: kind, start: time.Now(), span: span, metrics: metrics}
}

// SetStatusCode records the platform status on the span.
func (o *Operation) SetStatusCode(code int) {
	o.span.SetAttributes(attribute.Int(AttrStatusCode, code))
}

// End closes the span with outcome and records the settled call.
func (o *Operation) End(ctx context.Context, outcome string, err error) {
	elapsed := o.Elapsed()
	if err != nil {
		o.span.RecordError(err)
		o.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		o.span.SetStatus(codes.Error, outcome)
	}
	o.span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int64(AttrDurationMs, elapsed.Milliseconds()),
	)
	o.span.End()
	o.metrics.ended(ctx, o.kind, outcome, elapsed)
}

// Elapsed returns the time since StartOperation.
func (o *Operation) Elapsed() time.Duration {
	return time.Since(o.start)
}
