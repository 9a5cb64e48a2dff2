package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/pmxbuilder/internal/builder"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
	"github.com/zjrosen/pmxbuilder/internal/testutil"
)

func setupTestTracer(t *testing.T) (trace.Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider.Tracer("test-tracer"), exporter
}

func getSpanByName(exporter *tracetest.InMemoryExporter, name string) (tracetest.SpanStub, bool) {
	for _, span := range exporter.GetSpans() {
		if span.Name == name {
			return span, true
		}
	}
	return tracetest.SpanStub{}, false
}

func getAttributeValue(span tracetest.SpanStub, key attribute.Key) (attribute.Value, bool) {
	for _, attr := range span.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func eventCount(span tracetest.SpanStub, name string) int {
	n := 0
	for _, evt := range span.Events {
		if evt.Name == name {
			n++
		}
	}
	return n
}

func runTraced(t *testing.T, studio *testutil.Studio, tracer trace.Tracer) (*builder.Report, error) {
	t.Helper()
	ctx, span := StartRun(context.Background(), tracer)
	report, err := builder.New(
		builder.Services{Registry: studio, Factory: studio, Graph: studio},
		builder.Options{
			Middleware: []builder.Middleware{NewTracingMiddleware(TracingMiddlewareConfig{Tracer: tracer})},
			NewRunID:   func() string { return "run-under-test" },
		},
	).Run(ctx)
	EndRun(span, report, err)
	return report, err
}

func TestTracingMiddleware_OneSpanPerStage(t *testing.T) {
	tracer, exporter := setupTestTracer(t)

	_, err := runTraced(t, testutil.NewStudio().WithStandardRig(), tracer)
	require.NoError(t, err)

	root, ok := getSpanByName(exporter, SpanRun)
	require.True(t, ok)
	require.Equal(t, codes.Ok, root.Status.Code)

	names := builder.StageNames()
	for i, name := range names {
		span, ok := getSpanByName(exporter, SpanPrefixStage+string(name))
		require.True(t, ok, "missing span for %s", name)
		require.Equal(t, root.SpanContext.SpanID(), span.Parent.SpanID(), "%s must be a child of the run", name)
		require.Equal(t, codes.Ok, span.Status.Code)

		idx, ok := getAttributeValue(span, AttrStageIndex)
		require.True(t, ok)
		require.Equal(t, int64(i+1), idx.AsInt64())

		runID, ok := getAttributeValue(span, AttrRunID)
		require.True(t, ok)
		require.Equal(t, "run-under-test", runID.AsString())
	}
	require.Len(t, exporter.GetSpans(), len(names)+1)
}

func TestTracingMiddleware_RecordsLinkEvents(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	studio := testutil.NewStudio().WithStandardRig().
		WithInput("Ghost", testutil.Mono("nowhere:capture_1"), testutil.Group("Drums"))

	report, err := runTraced(t, studio, tracer)
	require.NoError(t, err)

	span, ok := getSpanByName(exporter, SpanPrefixStage+string(builder.StageInputToStrip))
	require.True(t, ok)

	created := len(report.LinksFor(builder.StageInputToStrip)) - 1
	require.Equal(t, created, eventCount(span, EventLinkCreated))
	require.Equal(t, 1, eventCount(span, EventLinkSkipped))

	skipped, ok := getAttributeValue(span, AttrSkipped)
	require.True(t, ok)
	require.Equal(t, int64(1), skipped.AsInt64())

	for _, evt := range span.Events {
		if evt.Name != EventLinkSkipped {
			continue
		}
		attrs := attribute.NewSet(evt.Attributes...)
		subject, _ := attrs.Value(AttrSubject)
		require.Equal(t, "Ghost", subject.AsString())
		reason, _ := attrs.Value(AttrReason)
		require.Contains(t, reason.AsString(), "nowhere:capture_1")
	}

	root, ok := getSpanByName(exporter, SpanRun)
	require.True(t, ok)
	total, ok := getAttributeValue(root, AttrCreated)
	require.True(t, ok)
	require.Equal(t, int64(report.Count(builder.OutcomeCreated)), total.AsInt64())
}

func TestTracingMiddleware_RecordsFailedLinks(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	studio := testutil.NewStudio().WithStandardRig().
		FailLinks(func(l pmx.Link) bool { return l.InputNode == builder.LooperNode }, errors.New("port busy"))

	_, err := runTraced(t, studio, tracer)
	require.NoError(t, err)

	span, ok := getSpanByName(exporter, SpanPrefixStage+string(builder.StageLoopers))
	require.True(t, ok)
	require.Equal(t, 6, eventCount(span, EventLinkFailed))
	require.Equal(t, codes.Ok, span.Status.Code, "failed links do not fail the stage")
}

func TestTracingMiddleware_RecordsStageError(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	studio := testutil.NewStudio().WithStandardRig().FailOn("CreateChannelStrip", errors.New("factory unavailable"))

	_, err := runTraced(t, studio, tracer)
	require.ErrorIs(t, err, builder.ErrProvisioning)

	span, ok := getSpanByName(exporter, SpanPrefixStage+string(builder.StageStripProvisioning))
	require.True(t, ok)
	require.Equal(t, codes.Error, span.Status.Code)
	require.Contains(t, span.Status.Description, "factory unavailable")
	require.Equal(t, 1, eventCount(span, "exception"))

	kind, ok := getAttributeValue(span, AttrErrorType)
	require.True(t, ok)
	require.Equal(t, "provisioning", kind.AsString())

	_, ok = getSpanByName(exporter, SpanPrefixStage+string(builder.StageGraphSnapshot))
	require.False(t, ok, "stages after the failure never start")

	root, ok := getSpanByName(exporter, SpanRun)
	require.True(t, ok)
	require.Equal(t, codes.Error, root.Status.Code)
}

func TestTracingMiddleware_NilTracerStillCarriesRunID(t *testing.T) {
	mw := NewTracingMiddleware(TracingMiddlewareConfig{Tracer: nil})

	var got string
	handler := mw(func(ctx context.Context, stage builder.Stage) error {
		got = RunIDFromContext(ctx)
		return nil
	})
	require.NoError(t, handler(context.Background(), builder.Stage{Name: builder.StageInputDiscovery, RunID: "abc"}))
	require.Equal(t, "abc", got)
}

func TestTracingMiddleware_NilReport(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	mw := NewTracingMiddleware(TracingMiddlewareConfig{Tracer: tracer})

	err := mw(func(ctx context.Context, stage builder.Stage) error {
		return context.Canceled
	})(context.Background(), builder.Stage{Name: builder.StageLoopers, Index: 5, Total: 10})
	require.ErrorIs(t, err, context.Canceled)

	span, ok := getSpanByName(exporter, "build.stage.looper_wiring")
	require.True(t, ok)
	kind, _ := getAttributeValue(span, AttrErrorType)
	require.Equal(t, "canceled", kind.AsString())
}

func TestErrorType(t *testing.T) {
	require.Equal(t, "discovery", errorType(builder.ErrDiscovery))
	require.Equal(t, "provisioning", errorType(builder.ErrProvisioning))
	require.Equal(t, "canceled", errorType(context.DeadlineExceeded))
	require.Equal(t, "other", errorType(errors.New("x")))
}
