// Package pmx defines the entities of the pmx mixing topology and the
// service contracts of the registry, factory and graph engine that own them.
//
// All records are remote-owned. The builder holds transient copies for the
// duration of a single run.
package pmx

import "fmt"

// InputType describes how many physical ports an input feeds.
type InputType int32

const (
	InputNone InputType = iota
	InputMono
	InputStereo
)

func (t InputType) String() string {
	switch t {
	case InputNone:
		return "none"
	case InputMono:
		return "mono"
	case InputStereo:
		return "stereo"
	default:
		return fmt.Sprintf("InputType(%d)", int32(t))
	}
}

// ChannelStripType selects the plugin chain the factory attaches to a strip.
type ChannelStripType int32

const (
	ChannelStripBasic ChannelStripType = iota
	ChannelStripCrossFaded
)

func (t ChannelStripType) String() string {
	switch t {
	case ChannelStripBasic:
		return "basic"
	case ChannelStripCrossFaded:
		return "cross_faded"
	default:
		return fmt.Sprintf("ChannelStripType(%d)", int32(t))
	}
}

// Input is a configured input channel.
// Empty port paths mean the path is not set.
type Input struct {
	ID            uint32
	Name          string
	Type          InputType
	LeftPortPath  string
	RightPortPath string
	GroupName     string
}

// ChannelStrip is a named processing chain. CrossFaderPluginID is nil for
// Basic strips, which carry no cross-fader.
type ChannelStrip struct {
	ID                 uint32
	Name               string
	Type               ChannelStripType
	CrossFaderPluginID *uint32
	GainPluginID       uint32
	SaturatorPluginID  uint32
}

// OutputStage is the final stereo bus. Its left and right channel strips
// are referenced by id.
type OutputStage struct {
	ID                  uint32
	Name                string
	CrossFaderPluginID  uint32
	LeftChannelStripID  uint32
	RightChannelStripID uint32
}

// Output is a physical output pair.
type Output struct {
	ID            uint32
	Name          string
	LeftPortPath  string
	RightPortPath string
}

// HasPorts reports whether both port paths are set.
func (o Output) HasPorts() bool {
	return o.LeftPortPath != "" && o.RightPortPath != ""
}

// Plugin is a processing plugin instantiated by the factory. Its name is
// also the name of its node in the media graph.
type Plugin struct {
	ID   uint32
	Name string
}

// Looper is an auxiliary loop-recording tap addressed by loop number.
type Looper struct {
	ID         uint32
	LoopNumber uint32
}

// Node is a live media-graph node.
type Node struct {
	ID           uint32
	ObjectSerial uint32
	Name         string
}

// Port is a live media-graph port. NodeID holds the object serial of the
// owning node.
type Port struct {
	ID     uint32
	Name   string
	NodeID uint32
	Path   string
}

// Link is a directed connection between two named graph endpoints.
type Link struct {
	OutputNode string
	OutputPort uint32
	InputNode  string
	InputPort  uint32
}

func (l Link) String() string {
	return fmt.Sprintf("%s:%d -> %s:%d", l.OutputNode, l.OutputPort, l.InputNode, l.InputPort)
}

// Uint32 returns a pointer to v.
func Uint32(v uint32) *uint32 { return &v }
