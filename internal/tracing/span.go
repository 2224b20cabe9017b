package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

// Run executes fn inside a span named name. A failure is recorded on the span together with its
// error code before being returned unchanged.
func Run(ctx context.Context, tracer trace.Tracer, name string, fn func(ctx context.Context, span trace.Span) error, attrs ...attribute.KeyValue) error {
	if tracer == nil {
		return fn(ctx, trace.SpanFromContext(ctx))
	}

	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal), trace.WithAttributes(attrs...))
	defer span.End()

	err := fn(ctx, span)
	if err != nil {
		span.RecordError(err)
		if code := sbolerr.Code(err); code != "" {
			span.SetAttributes(attribute.String(AttrErrorCode, code))
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
