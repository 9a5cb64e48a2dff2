package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

// serialOffset separates node object serials from node ids so code that
// confuses the two fails to resolve.
const serialOffset = 1000

// Studio is an in-memory registry, factory and graph engine. It records
// every call and every created link, and is safe for concurrent use.
type Studio struct {
	mu sync.Mutex

	nextID  uint32
	inputs  []pmx.Input
	outputs []pmx.Output
	strips  []pmx.ChannelStrip
	plugins []pmx.Plugin
	loopers []pmx.Looper
	stages  []pmx.OutputStage
	nodes   []pmx.Node
	ports   []pmx.Port
	links   []pmx.Link
	calls   []string

	failures      map[string]error
	linkFailures  []linkFailure
	detachedStage bool
}

type linkFailure struct {
	match func(pmx.Link) bool
	err   error
}

var (
	_ pmx.Registry = (*Studio)(nil)
	_ pmx.Factory  = (*Studio)(nil)
	_ pmx.Graph    = (*Studio)(nil)
)

// NewStudio creates an empty studio.
func NewStudio() *Studio {
	return &Studio{nextID: 1, failures: make(map[string]error)}
}

func (s *Studio) id() uint32 {
	id := s.nextID
	s.nextID++
	return id
}

// WithDevice adds a graph node with one port per path. Port ids count from
// zero in path order.
func (s *Studio) WithDevice(name string, paths ...string) *Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := pmx.Node{ID: s.id(), Name: name}
	node.ObjectSerial = node.ID + serialOffset
	s.nodes = append(s.nodes, node)
	for i, path := range paths {
		s.ports = append(s.ports, pmx.Port{
			ID:     uint32(i),
			Name:   fmt.Sprintf("port_%d", i),
			NodeID: node.ObjectSerial,
			Path:   path,
		})
	}
	return s
}

// WithInput adds an input. Inputs default to mono with no port path.
func (s *Studio) WithInput(name string, opts ...InputOption) *Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := pmx.Input{ID: s.id(), Name: name, Type: pmx.InputMono}
	for _, opt := range opts {
		opt(&in)
	}
	s.inputs = append(s.inputs, in)
	return s
}

// WithOutput adds a physical output pair.
func (s *Studio) WithOutput(name, left, right string) *Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs = append(s.outputs, pmx.Output{ID: s.id(), Name: name, LeftPortPath: left, RightPortPath: right})
	return s
}

// FailOn makes every call to method return err.
func (s *Studio) FailOn(method string, err error) *Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
	return s
}

// FailLinks makes CreateLinkByName return err for matching links.
func (s *Studio) FailLinks(match func(pmx.Link) bool, err error) *Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linkFailures = append(s.linkFailures, linkFailure{match: match, err: err})
	return s
}

// DetachOutputStageStrips makes CreateOutputStage reference channel strips
// the registry does not list.
func (s *Studio) DetachOutputStageStrips() *Studio {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachedStage = true
	return s
}

func (s *Studio) enter(method string) error {
	s.calls = append(s.calls, method)
	return s.failures[method]
}

// ===========================================================================
// Registry
// ===========================================================================

func (s *Studio) ListInputs(ctx context.Context) ([]pmx.Input, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListInputs"); err != nil {
		return nil, err
	}
	return clone(s.inputs), nil
}

func (s *Studio) ListOutputs(ctx context.Context) ([]pmx.Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListOutputs"); err != nil {
		return nil, err
	}
	return clone(s.outputs), nil
}

func (s *Studio) ListChannelStrips(ctx context.Context) ([]pmx.ChannelStrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListChannelStrips"); err != nil {
		return nil, err
	}
	return clone(s.strips), nil
}

func (s *Studio) ListPlugins(ctx context.Context) ([]pmx.Plugin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListPlugins"); err != nil {
		return nil, err
	}
	return clone(s.plugins), nil
}

func (s *Studio) RegisterLooper(ctx context.Context, loopNumber uint32) (pmx.Looper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("RegisterLooper"); err != nil {
		return pmx.Looper{}, err
	}
	looper := pmx.Looper{ID: s.id(), LoopNumber: loopNumber}
	s.loopers = append(s.loopers, looper)
	return looper, nil
}

// ===========================================================================
// Factory
// ===========================================================================

func (s *Studio) CreateChannelStrip(ctx context.Context, name string, stripType pmx.ChannelStripType) (pmx.ChannelStrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateChannelStrip"); err != nil {
		return pmx.ChannelStrip{}, err
	}
	strip := s.newStrip(name, stripType)
	s.strips = append(s.strips, strip)
	return strip, nil
}

func (s *Studio) CreateOutputStage(ctx context.Context, name string) (pmx.OutputStage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateOutputStage"); err != nil {
		return pmx.OutputStage{}, err
	}
	left := s.newStrip(name+" L", pmx.ChannelStripBasic)
	right := s.newStrip(name+" R", pmx.ChannelStripBasic)
	if !s.detachedStage {
		s.strips = append(s.strips, left, right)
	}
	stage := pmx.OutputStage{
		ID:                  s.id(),
		Name:                name,
		CrossFaderPluginID:  s.newPlugin("cross_fader"),
		LeftChannelStripID:  left.ID,
		RightChannelStripID: right.ID,
	}
	s.stages = append(s.stages, stage)
	return stage, nil
}

func (s *Studio) newStrip(name string, stripType pmx.ChannelStripType) pmx.ChannelStrip {
	strip := pmx.ChannelStrip{ID: s.id(), Name: name, Type: stripType}
	if stripType == pmx.ChannelStripCrossFaded {
		strip.CrossFaderPluginID = pmx.Uint32(s.newPlugin("cross_fader"))
	}
	strip.GainPluginID = s.newPlugin("gain")
	strip.SaturatorPluginID = s.newPlugin("saturator")
	return strip
}

func (s *Studio) newPlugin(kind string) uint32 {
	id := s.id()
	s.plugins = append(s.plugins, pmx.Plugin{ID: id, Name: fmt.Sprintf("%s_%d", kind, id)})
	return id
}

// ===========================================================================
// Graph
// ===========================================================================

func (s *Studio) ListNodes(ctx context.Context) ([]pmx.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListNodes"); err != nil {
		return nil, err
	}
	return clone(s.nodes), nil
}

func (s *Studio) ListPorts(ctx context.Context, nodeIDFilter *uint32) ([]pmx.Port, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListPorts"); err != nil {
		return nil, err
	}
	if nodeIDFilter == nil {
		return clone(s.ports), nil
	}
	var out []pmx.Port
	for _, p := range s.ports {
		if p.NodeID == *nodeIDFilter {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Studio) CreateLinkByName(ctx context.Context, link pmx.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateLinkByName"); err != nil {
		return err
	}
	for _, f := range s.linkFailures {
		if f.match(link) {
			return f.err
		}
	}
	s.links = append(s.links, link)
	return nil
}

// ===========================================================================
// Inspection
// ===========================================================================

// Links returns the created links in call order.
func (s *Studio) Links() []pmx.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.links)
}

// Strips returns every channel strip the factory created, including the
// output stage strips.
func (s *Studio) Strips() []pmx.ChannelStrip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.strips)
}

// Loopers returns the registered loopers in call order.
func (s *Studio) Loopers() []pmx.Looper {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.loopers)
}

// OutputStages returns the created output stages.
func (s *Studio) OutputStages() []pmx.OutputStage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.stages)
}

// PluginName returns the node name of a plugin, or "" when unknown.
func (s *Studio) PluginName(id uint32) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plugins {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

// StripNamed returns the last created strip with the given name.
func (s *Studio) StripNamed(name string) (pmx.ChannelStrip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.strips) - 1; i >= 0; i-- {
		if s.strips[i].Name == name {
			return s.strips[i], true
		}
	}
	return pmx.ChannelStrip{}, false
}

// Calls returns how many times method was called.
func (s *Studio) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == method {
			n++
		}
	}
	return n
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
