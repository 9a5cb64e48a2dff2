package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// metadataCarrier adapts outgoing gRPC metadata to a propagation carrier.
type metadataCarrier metadata.MD

func (c metadataCarrier) Get(key string) string {
	if v := metadata.MD(c).Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c metadataCarrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

func (c metadataCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

var _ propagation.TextMapCarrier = metadataCarrier{}

// UnaryClientInterceptor attaches the run id from the context to every
// outgoing call and, when tracer is non-nil, wraps the call in a client span
// whose context is propagated as traceparent metadata.
func UnaryClientInterceptor(tracer trace.Tracer) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		md, ok := metadata.FromOutgoingContext(ctx)
		if ok {
			md = md.Copy()
		} else {
			md = metadata.MD{}
		}
		if runID := RunIDFromContext(ctx); runID != "" {
			md.Set(RunIDMetadataKey, runID)
		}

		if tracer == nil {
			return invoker(metadata.NewOutgoingContext(ctx, md), method, req, reply, cc, opts...)
		}

		ctx, span := tracer.Start(ctx, SpanPrefixRPC+strings.TrimPrefix(method, "/"),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(AttrRPCMethod.String(method)),
		)
		defer span.End()

		otel.GetTextMapPropagator().Inject(ctx, metadataCarrier(md))
		err := invoker(metadata.NewOutgoingContext(ctx, md), method, req, reply, cc, opts...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, status.Code(err).String())
			return err
		}
		span.SetStatus(codes.Ok, "")
		return nil
	}
}
