// Package tracing records build runs as OpenTelemetry spans and carries the
// run id to the pmx services.
package tracing

import "context"

type contextKey string

const runIDKey contextKey = "run_id"

// RunIDFromContext returns the run id stored in ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if runID, ok := ctx.Value(runIDKey).(string); ok {
		return runID
	}
	return ""
}

// ContextWithRunID returns ctx carrying runID. An empty id leaves ctx as is.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, runID)
}
