package tracing

import "go.opentelemetry.io/otel/attribute"

// Span attribute keys.
const (
	AttrRunID      attribute.Key = "run.id"
	AttrStageName  attribute.Key = "stage.name"
	AttrStageIndex attribute.Key = "stage.index"
	AttrStageTotal attribute.Key = "stage.total"
	AttrInputs     attribute.Key = "build.inputs"
	AttrCreated    attribute.Key = "links.created"
	AttrSkipped    attribute.Key = "links.skipped"
	AttrFailed     attribute.Key = "links.failed"
	AttrSubject    attribute.Key = "link.subject"
	AttrLink       attribute.Key = "link"
	AttrReason     attribute.Key = "link.reason"
	AttrRPCMethod  attribute.Key = "rpc.method"
	AttrErrorType  attribute.Key = "error.type"
)

// Span names.
const (
	SpanRun         = "build.run"
	SpanPrefixStage = "build.stage."
	SpanPrefixRPC   = "rpc."
)

// Event names, one per link outcome.
const (
	EventLinkCreated = "link.created"
	EventLinkSkipped = "link.skipped"
	EventLinkFailed  = "link.failed"
)

// RunIDMetadataKey carries the run id to the pmx services.
const RunIDMetadataKey = "x-pmx-run-id"
