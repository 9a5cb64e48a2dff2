package builder

import (
	"fmt"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

// find returns the first item matching the predicate.
func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// MissError describes a lookup that found nothing. It is never fatal: the
// affected connection is skipped and recorded.
type MissError struct {
	Kind string
	Key  string
}

func (e *MissError) Error() string {
	return fmt.Sprintf("no %s matching %s", e.Kind, e.Key)
}

func miss(kind string, key any) error {
	return &MissError{Kind: kind, Key: fmt.Sprint(key)}
}

// endpoint is one side of a link: a graph node or plugin name and a port.
type endpoint struct {
	node string
	port uint32
}

// view is the set of graph lists one wiring stage resolves against.
type view struct {
	plugins []pmx.Plugin
	ports   []pmx.Port
	nodes   []pmx.Node
}

func (v view) portByPath(path string) (pmx.Port, error) {
	if path == "" {
		return pmx.Port{}, miss("port", "an unset path")
	}
	port, ok := find(v.ports, func(p pmx.Port) bool { return p.Path == path })
	if !ok {
		return pmx.Port{}, miss("port", fmt.Sprintf("path %q", path))
	}
	return port, nil
}

func (v view) nodeForPort(port pmx.Port) (pmx.Node, error) {
	node, ok := find(v.nodes, func(n pmx.Node) bool { return n.ObjectSerial == port.NodeID })
	if !ok {
		return pmx.Node{}, miss("node", fmt.Sprintf("object serial %d", port.NodeID))
	}
	return node, nil
}

func (v view) plugin(id uint32) (pmx.Plugin, error) {
	plugin, ok := find(v.plugins, func(p pmx.Plugin) bool { return p.ID == id })
	if !ok {
		return pmx.Plugin{}, miss("plugin", fmt.Sprintf("id %d", id))
	}
	return plugin, nil
}

// physical resolves a physical port path to the node that owns it. The
// endpoint port is the live port id.
func (v view) physical(path string) (endpoint, error) {
	port, err := v.portByPath(path)
	if err != nil {
		return endpoint{}, err
	}
	node, err := v.nodeForPort(port)
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{node: node.Name, port: port.ID}, nil
}

// pluginNode resolves a plugin id to its node name.
func (v view) pluginNode(id uint32) (string, error) {
	plugin, err := v.plugin(id)
	if err != nil {
		return "", err
	}
	return plugin.Name, nil
}

// crossFader resolves the cross-fader plugin of a strip. Basic strips have
// none.
func (v view) crossFader(strip pmx.ChannelStrip) (string, error) {
	if strip.CrossFaderPluginID == nil {
		return "", miss("cross-fader", fmt.Sprintf("strip %q", strip.Name))
	}
	return v.pluginNode(*strip.CrossFaderPluginID)
}

func stripByName(strips []pmx.ChannelStrip, name string) (pmx.ChannelStrip, error) {
	strip, ok := find(strips, func(s pmx.ChannelStrip) bool { return s.Name == name })
	if !ok {
		return pmx.ChannelStrip{}, miss("channel strip", fmt.Sprintf("name %q", name))
	}
	return strip, nil
}

func stripByID(strips []pmx.ChannelStrip, id uint32) (pmx.ChannelStrip, error) {
	strip, ok := find(strips, func(s pmx.ChannelStrip) bool { return s.ID == id })
	if !ok {
		return pmx.ChannelStrip{}, miss("channel strip", fmt.Sprintf("id %d", id))
	}
	return strip, nil
}

// channels returns the physical port paths an input feeds, left first.
func channels(in pmx.Input) []string {
	switch in.Type {
	case pmx.InputMono:
		return []string{in.LeftPortPath}
	case pmx.InputStereo:
		return []string{in.LeftPortPath, in.RightPortPath}
	default:
		return nil
	}
}
