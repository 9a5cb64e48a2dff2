package rpc

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
	"github.com/zjrosen/pmxbuilder/internal/pmx/wire"
)

// Full method names of the pmx services.
const (
	registryService = "/pmx.PmxRegistry/"
	factoryService  = "/pmx.factory.PmxFactory/"
	pipewireService = "/pmx.pipewire.Pipewire/"

	MethodListInputs         = registryService + "ListInputs"
	MethodListOutputs        = registryService + "ListOutputs"
	MethodListChannelStrips  = registryService + "ListChannelStrips"
	MethodListPlugins        = registryService + "ListPlugins"
	MethodRegisterLooper     = registryService + "RegisterLooper"
	MethodCreateChannelStrip = factoryService + "CreateChannelStrip"
	MethodCreateOutputStage  = factoryService + "CreateOutputStage"
	MethodListNodes          = pipewireService + "ListNodes"
	MethodListPorts          = pipewireService + "ListPorts"
	MethodCreateLinkByName   = pipewireService + "CreateLinkByName"
)

// RegistryClient implements pmx.Registry.
type RegistryClient struct{ c caller }

var _ pmx.Registry = (*RegistryClient)(nil)

// NewRegistryClient wraps conn. A zero timeout uses DefaultCallTimeout.
func NewRegistryClient(conn grpc.ClientConnInterface, timeout time.Duration) *RegistryClient {
	return &RegistryClient{c: newCaller(conn, timeout)}
}

func (r *RegistryClient) ListInputs(ctx context.Context) ([]pmx.Input, error) {
	var resp wire.ListInputsResponse
	if err := r.c.invoke(ctx, MethodListInputs, &wire.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Inputs, nil
}

func (r *RegistryClient) ListOutputs(ctx context.Context) ([]pmx.Output, error) {
	var resp wire.ListOutputsResponse
	if err := r.c.invoke(ctx, MethodListOutputs, &wire.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Outputs, nil
}

func (r *RegistryClient) ListChannelStrips(ctx context.Context) ([]pmx.ChannelStrip, error) {
	var resp wire.ListChannelStripsResponse
	if err := r.c.invoke(ctx, MethodListChannelStrips, &wire.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.ChannelStrips, nil
}

func (r *RegistryClient) ListPlugins(ctx context.Context) ([]pmx.Plugin, error) {
	var resp wire.ListPluginsResponse
	if err := r.c.invoke(ctx, MethodListPlugins, &wire.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Plugins, nil
}

func (r *RegistryClient) RegisterLooper(ctx context.Context, loopNumber uint32) (pmx.Looper, error) {
	var resp wire.Looper
	if err := r.c.invoke(ctx, MethodRegisterLooper, &wire.RegisterLooperRequest{LoopNumber: loopNumber}, &resp); err != nil {
		return pmx.Looper{}, err
	}
	return resp.Looper, nil
}

// FactoryClient implements pmx.Factory.
type FactoryClient struct{ c caller }

var _ pmx.Factory = (*FactoryClient)(nil)

// NewFactoryClient wraps conn. A zero timeout uses DefaultCallTimeout.
func NewFactoryClient(conn grpc.ClientConnInterface, timeout time.Duration) *FactoryClient {
	return &FactoryClient{c: newCaller(conn, timeout)}
}

func (f *FactoryClient) CreateChannelStrip(ctx context.Context, name string, stripType pmx.ChannelStripType) (pmx.ChannelStrip, error) {
	var resp wire.ChannelStrip
	req := &wire.CreateChannelStripRequest{Name: name, Type: stripType}
	if err := f.c.invoke(ctx, MethodCreateChannelStrip, req, &resp); err != nil {
		return pmx.ChannelStrip{}, err
	}
	return resp.ChannelStrip, nil
}

func (f *FactoryClient) CreateOutputStage(ctx context.Context, name string) (pmx.OutputStage, error) {
	var resp wire.OutputStage
	if err := f.c.invoke(ctx, MethodCreateOutputStage, &wire.CreateOutputStageRequest{Name: name}, &resp); err != nil {
		return pmx.OutputStage{}, err
	}
	return resp.OutputStage, nil
}

// GraphClient implements pmx.Graph against the pipewire bridge.
type GraphClient struct{ c caller }

var _ pmx.Graph = (*GraphClient)(nil)

// NewGraphClient wraps conn. A zero timeout uses DefaultCallTimeout.
func NewGraphClient(conn grpc.ClientConnInterface, timeout time.Duration) *GraphClient {
	return &GraphClient{c: newCaller(conn, timeout)}
}

func (g *GraphClient) ListNodes(ctx context.Context) ([]pmx.Node, error) {
	var resp wire.ListNodesResponse
	if err := g.c.invoke(ctx, MethodListNodes, &wire.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

func (g *GraphClient) ListPorts(ctx context.Context, nodeIDFilter *uint32) ([]pmx.Port, error) {
	var resp wire.ListPortsResponse
	if err := g.c.invoke(ctx, MethodListPorts, &wire.ListPortsRequest{NodeIDFilter: nodeIDFilter}, &resp); err != nil {
		return nil, err
	}
	return resp.Ports, nil
}

func (g *GraphClient) CreateLinkByName(ctx context.Context, link pmx.Link) error {
	return g.c.invoke(ctx, MethodCreateLinkByName, &wire.CreateLinkByNameRequest{Link: link}, &wire.Empty{})
}
