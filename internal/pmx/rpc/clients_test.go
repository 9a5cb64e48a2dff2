package rpc

import (
	"bytes"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
	"github.com/zjrosen/pmxbuilder/internal/pmx/wire"
)

// ===========================================================================
// Test server
// ===========================================================================

type handlerFunc func(ctx context.Context, req wire.Message) (wire.Message, error)

func method(name string, newReq func() wire.Message, fn handlerFunc) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(_ any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
			req := newReq()
			if err := dec(req); err != nil {
				return nil, err
			}
			return fn(ctx, req)
		},
	}
}

func newEmpty() wire.Message { return &wire.Empty{} }

// pmxServer is an in-process stand-in for the three pmx services.
type pmxServer struct {
	mu       sync.Mutex
	inputs   []pmx.Input
	ports    []pmx.Port
	links    []pmx.Link
	filters  []*uint32
	linkErr  error
	blockFor time.Duration
}

func (s *pmxServer) register(srv *grpc.Server) {
	srv.RegisterService(&grpc.ServiceDesc{
		ServiceName: "pmx.PmxRegistry",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			method("ListInputs", newEmpty, func(ctx context.Context, _ wire.Message) (wire.Message, error) {
				if s.blockFor > 0 {
					select {
					case <-ctx.Done():
						return nil, status.FromContextError(ctx.Err()).Err()
					case <-time.After(s.blockFor):
					}
				}
				return &wire.ListInputsResponse{Inputs: s.inputs}, nil
			}),
			method("RegisterLooper", func() wire.Message { return &wire.RegisterLooperRequest{} },
				func(_ context.Context, req wire.Message) (wire.Message, error) {
					n := req.(*wire.RegisterLooperRequest).LoopNumber
					return &wire.Looper{Looper: pmx.Looper{ID: 100 + n, LoopNumber: n}}, nil
				}),
		},
	}, nil)

	srv.RegisterService(&grpc.ServiceDesc{
		ServiceName: "pmx.factory.PmxFactory",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			method("CreateChannelStrip", func() wire.Message { return &wire.CreateChannelStripRequest{} },
				func(_ context.Context, req wire.Message) (wire.Message, error) {
					r := req.(*wire.CreateChannelStripRequest)
					return &wire.ChannelStrip{ChannelStrip: pmx.ChannelStrip{
						ID:                 1,
						Name:               r.Name,
						Type:               r.Type,
						CrossFaderPluginID: pmx.Uint32(10),
						GainPluginID:       11,
						SaturatorPluginID:  12,
					}}, nil
				}),
			method("CreateOutputStage", func() wire.Message { return &wire.CreateOutputStageRequest{} },
				func(_ context.Context, req wire.Message) (wire.Message, error) {
					r := req.(*wire.CreateOutputStageRequest)
					return &wire.OutputStage{OutputStage: pmx.OutputStage{ID: 9, Name: r.Name, CrossFaderPluginID: 90}}, nil
				}),
		},
	}, nil)

	srv.RegisterService(&grpc.ServiceDesc{
		ServiceName: "pmx.pipewire.Pipewire",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			method("ListPorts", func() wire.Message { return &wire.ListPortsRequest{} },
				func(_ context.Context, req wire.Message) (wire.Message, error) {
					s.mu.Lock()
					defer s.mu.Unlock()
					s.filters = append(s.filters, req.(*wire.ListPortsRequest).NodeIDFilter)
					return &wire.ListPortsResponse{Ports: s.ports}, nil
				}),
			method("CreateLinkByName", func() wire.Message { return &wire.CreateLinkByNameRequest{} },
				func(_ context.Context, req wire.Message) (wire.Message, error) {
					s.mu.Lock()
					defer s.mu.Unlock()
					if s.linkErr != nil {
						return nil, s.linkErr
					}
					s.links = append(s.links, req.(*wire.CreateLinkByNameRequest).Link)
					return &wire.Empty{}, nil
				}),
		},
	}, nil)
}

func startServer(t *testing.T, s *pmxServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ForceServerCodec(wire.Codec{}))
	s.register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// ===========================================================================
// Tests
// ===========================================================================

func TestTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "127.0.0.1:50051", want: "127.0.0.1:50051"},
		{in: "http://127.0.0.1:50051", want: "127.0.0.1:50051"},
		{in: "https://registry.local:443", want: "registry.local:443"},
		{in: "  http://[::1]:50052  ", want: "[::1]:50052"},
		{in: "unix:///run/pmx/registry.sock", want: "unix:///run/pmx/registry.sock"},
		{in: "http://", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Target(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryClient_ListInputs(t *testing.T) {
	srv := &pmxServer{inputs: []pmx.Input{
		{ID: 1, Name: "Kick", Type: pmx.InputMono, LeftPortPath: "alsa:capture_1", GroupName: "Drums"},
		{ID: 2, Name: "Synth", Type: pmx.InputStereo, LeftPortPath: "alsa:capture_3", RightPortPath: "alsa:capture_4", GroupName: "Melody"},
	}}
	conn := startServer(t, srv)

	inputs, err := NewRegistryClient(conn, time.Second).ListInputs(context.Background())
	require.NoError(t, err)
	require.Equal(t, srv.inputs, inputs)
}

func TestRegistryClient_RegisterLooper(t *testing.T) {
	conn := startServer(t, &pmxServer{})

	looper, err := NewRegistryClient(conn, time.Second).RegisterLooper(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, pmx.Looper{ID: 103, LoopNumber: 3}, looper)
}

func TestFactoryClient_Create(t *testing.T) {
	conn := startServer(t, &pmxServer{})
	factory := NewFactoryClient(conn, time.Second)

	strip, err := factory.CreateChannelStrip(context.Background(), "Bass", pmx.ChannelStripCrossFaded)
	require.NoError(t, err)
	require.Equal(t, "Bass", strip.Name)
	require.Equal(t, pmx.ChannelStripCrossFaded, strip.Type)
	require.NotNil(t, strip.CrossFaderPluginID)
	require.Equal(t, uint32(10), *strip.CrossFaderPluginID)

	stage, err := factory.CreateOutputStage(context.Background(), "Output Stage")
	require.NoError(t, err)
	require.Equal(t, pmx.OutputStage{ID: 9, Name: "Output Stage", CrossFaderPluginID: 90}, stage)
}

func TestGraphClient_ListPortsFilter(t *testing.T) {
	srv := &pmxServer{ports: []pmx.Port{{ID: 0, Name: "capture_FL", NodeID: 42, Path: "alsa:capture_1"}}}
	conn := startServer(t, srv)
	graph := NewGraphClient(conn, time.Second)

	ports, err := graph.ListPorts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, srv.ports, ports)

	_, err = graph.ListPorts(context.Background(), pmx.Uint32(42))
	require.NoError(t, err)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Len(t, srv.filters, 2)
	require.Nil(t, srv.filters[0])
	require.Equal(t, uint32(42), *srv.filters[1])
}

func TestGraphClient_CreateLinkByName(t *testing.T) {
	srv := &pmxServer{}
	conn := startServer(t, srv)

	link := pmx.Link{OutputNode: "gain_11", OutputPort: 1, InputNode: "saturator_32", InputPort: 1}
	require.NoError(t, NewGraphClient(conn, time.Second).CreateLinkByName(context.Background(), link))

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Equal(t, []pmx.Link{link}, srv.links)
}

func TestGraphClient_CreateLinkByName_StatusError(t *testing.T) {
	srv := &pmxServer{linkErr: status.Error(codes.NotFound, "node saturator_32 not found")}
	conn := startServer(t, srv)

	err := NewGraphClient(conn, time.Second).CreateLinkByName(context.Background(), pmx.Link{OutputNode: "a", InputNode: "b"})
	require.Error(t, err)
	require.Equal(t, codes.NotFound, Code(err))
	require.Equal(t, codes.NotFound, status.Code(err))
	require.Contains(t, err.Error(), MethodCreateLinkByName)
	require.Contains(t, err.Error(), "node saturator_32 not found")
}

func TestCaller_Timeout(t *testing.T) {
	conn := startServer(t, &pmxServer{blockFor: 5 * time.Second})

	start := time.Now()
	_, err := NewRegistryClient(conn, 50*time.Millisecond).ListInputs(context.Background())
	require.Error(t, err)
	require.Equal(t, codes.DeadlineExceeded, Code(err))
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestCode(t *testing.T) {
	require.Equal(t, codes.OK, Code(nil))
	require.Equal(t, codes.Unknown, Code(context.Canceled))
	require.Equal(t, codes.Unavailable, Code(&CallError{Method: MethodListNodes, Err: status.Error(codes.Unavailable, "down")}))
}

func TestCaller_LogsFailedCallCode(t *testing.T) {
	var buf bytes.Buffer
	log.InitWriter(&buf)
	t.Cleanup(func() { log.SetEnabled(false) })

	conn := startServer(t, &pmxServer{linkErr: status.Error(codes.NotFound, "no such node")})
	err := NewGraphClient(conn, time.Second).CreateLinkByName(context.Background(), pmx.Link{OutputNode: "a", InputNode: "b"})
	require.Error(t, err)

	require.Contains(t, buf.String(), "call failed method="+MethodCreateLinkByName)
	require.Contains(t, buf.String(), "code=NotFound")
}
