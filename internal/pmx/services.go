package pmx

import "context"

// Registry is the topology source of truth.
type Registry interface {
	ListInputs(ctx context.Context) ([]Input, error)
	ListOutputs(ctx context.Context) ([]Output, error)
	ListChannelStrips(ctx context.Context) ([]ChannelStrip, error)
	ListPlugins(ctx context.Context) ([]Plugin, error)
	RegisterLooper(ctx context.Context, loopNumber uint32) (Looper, error)
}

// Factory creates channel strips and the output stage. Each creation also
// instantiates the backing plugins server-side.
type Factory interface {
	CreateChannelStrip(ctx context.Context, name string, stripType ChannelStripType) (ChannelStrip, error)
	CreateOutputStage(ctx context.Context, name string) (OutputStage, error)
}

// Graph exposes the live media graph.
type Graph interface {
	ListNodes(ctx context.Context) ([]Node, error)
	// ListPorts returns all ports, or only the ports of one node when
	// nodeIDFilter is set.
	ListPorts(ctx context.Context, nodeIDFilter *uint32) ([]Port, error)
	CreateLinkByName(ctx context.Context, link Link) error
}
