package usecase

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
)

var usecaseTracer = otel.Tracer("futbol-api/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name)
}

// observe closes a use case call: it records the error on the span and the
// latency histogram. Use as `defer observe(span, "op", time.Now(), &err)`.
func observe(span trace.Span, operation string, started time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
		span.RecordError(*errp)
		span.SetStatus(codes.Error, (*errp).Error())
	}
	metrics.UsecaseDuration.WithLabelValues(operation, outcome).Observe(time.Since(started).Seconds())
	span.End()
}
