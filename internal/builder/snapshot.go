package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/pmxbuilder/internal/cachemanager"
	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

const snapshotTTL = time.Minute

type snapshotKey string

const (
	keyPlugins snapshotKey = "plugins"
	keyPorts   snapshotKey = "ports"
	keyNodes   snapshotKey = "nodes"
	keyStrips  snapshotKey = "channel_strips"
)

// Snapshot is the builder's view of the registry and the live graph. Reads
// go through per-list caches; Invalidate forces the next read of every list
// back to the services. With caching disabled every read is a fresh call.
type Snapshot struct {
	plugins *cachemanager.ReadThroughCache[snapshotKey, []pmx.Plugin]
	ports   *cachemanager.ReadThroughCache[snapshotKey, []pmx.Port]
	nodes   *cachemanager.ReadThroughCache[snapshotKey, []pmx.Node]
	strips  *cachemanager.ReadThroughCache[snapshotKey, []pmx.ChannelStrip]
}

func newList[V any](name string, load cachemanager.Loader[snapshotKey, V], bypass bool) *cachemanager.ReadThroughCache[snapshotKey, V] {
	return cachemanager.NewReadThroughCache[snapshotKey, V](
		cachemanager.NewInMemoryCacheManager[snapshotKey, V](name, snapshotTTL, cachemanager.NoCleanup),
		load,
		snapshotTTL,
		bypass,
	)
}

// NewSnapshot creates an empty snapshot over the registry and graph.
func NewSnapshot(registry pmx.Registry, graph pmx.Graph, useCache bool) *Snapshot {
	bypass := !useCache
	return &Snapshot{
		plugins: newList("plugins", func(ctx context.Context, _ snapshotKey) ([]pmx.Plugin, error) {
			return registry.ListPlugins(ctx)
		}, bypass),
		ports: newList("ports", func(ctx context.Context, _ snapshotKey) ([]pmx.Port, error) {
			return graph.ListPorts(ctx, nil)
		}, bypass),
		nodes: newList("nodes", func(ctx context.Context, _ snapshotKey) ([]pmx.Node, error) {
			return graph.ListNodes(ctx)
		}, bypass),
		strips: newList("channel_strips", func(ctx context.Context, _ snapshotKey) ([]pmx.ChannelStrip, error) {
			return registry.ListChannelStrips(ctx)
		}, bypass),
	}
}

func (s *Snapshot) Plugins(ctx context.Context) ([]pmx.Plugin, error) {
	plugins, err := s.plugins.Get(ctx, keyPlugins)
	if err != nil {
		return nil, fmt.Errorf("%w: listing plugins: %w", ErrDiscovery, err)
	}
	return plugins, nil
}

func (s *Snapshot) Ports(ctx context.Context) ([]pmx.Port, error) {
	ports, err := s.ports.Get(ctx, keyPorts)
	if err != nil {
		return nil, fmt.Errorf("%w: listing ports: %w", ErrDiscovery, err)
	}
	return ports, nil
}

func (s *Snapshot) Nodes(ctx context.Context) ([]pmx.Node, error) {
	nodes, err := s.nodes.Get(ctx, keyNodes)
	if err != nil {
		return nil, fmt.Errorf("%w: listing nodes: %w", ErrDiscovery, err)
	}
	return nodes, nil
}

func (s *Snapshot) ChannelStrips(ctx context.Context) ([]pmx.ChannelStrip, error) {
	strips, err := s.strips.Get(ctx, keyStrips)
	if err != nil {
		return nil, fmt.Errorf("%w: listing channel strips: %w", ErrDiscovery, err)
	}
	return strips, nil
}

// Stats sums cache hits and service calls across every list.
func (s *Snapshot) Stats() (hits, misses uint64) {
	for _, stats := range []func() (uint64, uint64){
		s.plugins.Stats, s.ports.Stats, s.nodes.Stats, s.strips.Stats,
	} {
		h, m := stats()
		hits += h
		misses += m
	}
	return hits, misses
}

// Invalidate drops every cached list. Called after each provisioning stage
// so plugins and ports created server-side become visible.
func (s *Snapshot) Invalidate(ctx context.Context) {
	_ = s.plugins.Invalidate(ctx, keyPlugins)
	_ = s.ports.Invalidate(ctx, keyPorts)
	_ = s.nodes.Invalidate(ctx, keyNodes)
	_ = s.strips.Invalidate(ctx, keyStrips)
	log.Debug(log.CatCache, "snapshot invalidated")
}

// view loads the lists a wiring stage resolves against.
func (s *Snapshot) view(ctx context.Context) (view, error) {
	plugins, err := s.Plugins(ctx)
	if err != nil {
		return view{}, err
	}
	ports, err := s.Ports(ctx)
	if err != nil {
		return view{}, err
	}
	nodes, err := s.Nodes(ctx)
	if err != nil {
		return view{}, err
	}
	return view{plugins: plugins, ports: ports, nodes: nodes}, nil
}
