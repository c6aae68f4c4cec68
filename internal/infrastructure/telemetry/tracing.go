package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// TracerName is the instrumentation scope used for application spans
const TracerName = "github.com/sakhalil42-svg/dedeagalar-sub001"

// StartServiceSpan starts an internal span named "{service}.{method}".
// The caller must end the returned span.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "season_report", "get")
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, fmt.Sprintf("%s.%s", service, method),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err on span, if any, and ends it.
// Expected domain outcomes (not found, invalid input) are recorded as events
// without marking the span as failed.
func EndSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) && de.Code != shared.CodeUnavailable {
		span.AddEvent("domain_error", trace.WithAttributes(
			attribute.String("error.code", de.Code),
			attribute.String("error.message", de.Message),
		))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// GetTraceID returns the trace id of the span in ctx, or "" when none is recording.
func GetTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
