package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/pmxbuilder/internal/builder"
)

// TracingMiddlewareConfig configures the stage tracing middleware.
type TracingMiddlewareConfig struct {
	// Tracer creates the stage spans. With a nil Tracer the middleware only
	// puts the run id on the context.
	Tracer trace.Tracer
}

// NewTracingMiddleware wraps every stage in a span named after the stage.
// Each link the stage attempted becomes a span event and the outcome tally
// is set as attributes once the stage returns.
func NewTracingMiddleware(cfg TracingMiddlewareConfig) builder.Middleware {
	if cfg.Tracer == nil {
		return func(next builder.StageFunc) builder.StageFunc {
			return func(ctx context.Context, stage builder.Stage) error {
				return next(ContextWithRunID(ctx, stage.RunID), stage)
			}
		}
	}

	return func(next builder.StageFunc) builder.StageFunc {
		return func(ctx context.Context, stage builder.Stage) error {
			ctx = ContextWithRunID(ctx, stage.RunID)
			ctx, span := cfg.Tracer.Start(ctx, SpanPrefixStage+string(stage.Name),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					AttrRunID.String(stage.RunID),
					AttrStageName.String(string(stage.Name)),
					AttrStageIndex.Int(stage.Index),
					AttrStageTotal.Int(stage.Total),
				),
			)
			defer span.End()

			err := next(ctx, stage)

			if stage.Report != nil {
				recordLinks(span, stage.Report.LinksFor(stage.Name))
			}
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(AttrErrorType.String(errorType(err)))
				span.SetStatus(codes.Error, err.Error())
				return err
			}
			span.SetStatus(codes.Ok, "")
			return nil
		}
	}
}

func recordLinks(span trace.Span, records []builder.LinkRecord) {
	var created, skipped, failed int
	for _, rec := range records {
		attrs := []attribute.KeyValue{
			AttrSubject.String(rec.Subject),
			AttrLink.String(rec.Link.String()),
		}
		if rec.Reason != "" {
			attrs = append(attrs, AttrReason.String(rec.Reason))
		}

		var event string
		switch rec.Outcome {
		case builder.OutcomeCreated:
			created++
			event = EventLinkCreated
		case builder.OutcomeSkipped:
			skipped++
			event = EventLinkSkipped
		case builder.OutcomeFailed:
			failed++
			event = EventLinkFailed
		}
		span.AddEvent(event, trace.WithAttributes(attrs...))
	}
	span.SetAttributes(
		AttrCreated.Int(created),
		AttrSkipped.Int(skipped),
		AttrFailed.Int(failed),
	)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, builder.ErrDiscovery):
		return "discovery"
	case errors.Is(err, builder.ErrProvisioning):
		return "provisioning"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}

// StartRun opens the root span of a build. Stage spans started from the
// returned context become its children.
func StartRun(ctx context.Context, tracer trace.Tracer) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, SpanRun, trace.WithSpanKind(trace.SpanKindInternal))
}

// EndRun annotates the root span with the report totals and ends it.
func EndRun(span trace.Span, report *builder.Report, err error) {
	defer span.End()

	if report != nil {
		span.SetAttributes(
			AttrRunID.String(report.RunID),
			AttrInputs.Int(report.Inputs()),
			AttrCreated.Int(report.Count(builder.OutcomeCreated)),
			AttrSkipped.Int(report.Count(builder.OutcomeSkipped)),
			AttrFailed.Int(report.Count(builder.OutcomeFailed)),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("build failed: %v", err))
		return
	}
	span.SetStatus(codes.Ok, "")
}
