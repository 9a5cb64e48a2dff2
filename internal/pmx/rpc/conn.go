// Package rpc implements the pmx service contracts over gRPC.
package rpc

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx/wire"
)

// DefaultCallTimeout bounds every unary call when no timeout is configured.
const DefaultCallTimeout = 10 * time.Second

// Target converts a service URL into a gRPC dial target. Plain host:port
// values pass through; http:// and https:// URLs are reduced to their host.
func Target(serviceURL string) (string, error) {
	serviceURL = strings.TrimSpace(serviceURL)
	if serviceURL == "" {
		return "", fmt.Errorf("empty service url")
	}
	if !strings.Contains(serviceURL, "://") {
		return serviceURL, nil
	}

	u, err := url.Parse(serviceURL)
	if err != nil {
		return "", fmt.Errorf("parsing service url %q: %w", serviceURL, err)
	}
	switch u.Scheme {
	case "http", "https", "grpc":
		if u.Host == "" {
			return "", fmt.Errorf("service url %q has no host", serviceURL)
		}
		return u.Host, nil
	default:
		// Let gRPC resolvers (dns://, unix://, passthrough://) handle it.
		return serviceURL, nil
	}
}

// Dial creates a client connection for a pmx service. The connection is
// lazy: no I/O happens until the first call.
func Dial(serviceURL string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	target, err := Target(serviceURL)
	if err != nil {
		return nil, err
	}

	base := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", target, err)
	}
	log.Debug(log.CatRPC, "client created", "target", target)
	return conn, nil
}

// caller issues unary calls with a per-call timeout.
type caller struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

func newCaller(conn grpc.ClientConnInterface, timeout time.Duration) caller {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return caller{conn: conn, timeout: timeout}
}

func (c caller) invoke(ctx context.Context, method string, req, resp wire.Message) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.conn.Invoke(ctx, method, req, resp, grpc.ForceCodec(wire.Codec{}))
	if err != nil {
		err = &CallError{Method: method, Err: err}
		log.Debug(log.CatRPC, "call failed",
			"method", method,
			"code", Code(err).String(),
			"duration", time.Since(start),
		)
		return err
	}
	log.Debug(log.CatRPC, "call completed", "method", method, "duration", time.Since(start))
	return nil
}
