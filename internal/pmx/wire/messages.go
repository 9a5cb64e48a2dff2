package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

// Empty is EmptyRequest, EmptyResponse and ListNodesRequest.
type Empty struct{}

func (*Empty) AppendWire(b []byte) []byte { return b }

func (*Empty) UnmarshalWire(b []byte) error {
	return walk(b, skipAll)
}

func skipAll(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil }

// ===========================================================================
// Entities
// ===========================================================================

func appendInput(b []byte, in pmx.Input) []byte {
	b = appendUint32(b, 1, in.ID)
	b = appendString(b, 2, in.Name)
	b = appendEnum(b, 3, int32(in.Type))
	b = appendString(b, 4, in.LeftPortPath)
	b = appendString(b, 5, in.RightPortPath)
	return appendString(b, 6, in.GroupName)
}

func decodeInput(b []byte) (pmx.Input, error) {
	var in pmx.Input
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			in.ID, n = consumeUint32(typ, v)
		case 2:
			in.Name, n = consumeString(typ, v)
		case 3:
			var e int32
			e, n = consumeEnum(typ, v)
			in.Type = pmx.InputType(e)
		case 4:
			in.LeftPortPath, n = consumeString(typ, v)
		case 5:
			in.RightPortPath, n = consumeString(typ, v)
		case 6:
			in.GroupName, n = consumeString(typ, v)
		}
		return n, nil
	})
	return in, err
}

func appendOutput(b []byte, out pmx.Output) []byte {
	b = appendUint32(b, 1, out.ID)
	b = appendString(b, 2, out.Name)
	b = appendString(b, 3, out.LeftPortPath)
	return appendString(b, 4, out.RightPortPath)
}

func decodeOutput(b []byte) (pmx.Output, error) {
	var out pmx.Output
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			out.ID, n = consumeUint32(typ, v)
		case 2:
			out.Name, n = consumeString(typ, v)
		case 3:
			out.LeftPortPath, n = consumeString(typ, v)
		case 4:
			out.RightPortPath, n = consumeString(typ, v)
		}
		return n, nil
	})
	return out, err
}

func appendChannelStrip(b []byte, cs pmx.ChannelStrip) []byte {
	b = appendUint32(b, 1, cs.ID)
	b = appendString(b, 2, cs.Name)
	b = appendEnum(b, 3, int32(cs.Type))
	b = appendOptionalUint32(b, 4, cs.CrossFaderPluginID)
	b = appendUint32(b, 5, cs.GainPluginID)
	return appendUint32(b, 6, cs.SaturatorPluginID)
}

func decodeChannelStrip(b []byte) (pmx.ChannelStrip, error) {
	var cs pmx.ChannelStrip
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			cs.ID, n = consumeUint32(typ, v)
		case 2:
			cs.Name, n = consumeString(typ, v)
		case 3:
			var e int32
			e, n = consumeEnum(typ, v)
			cs.Type = pmx.ChannelStripType(e)
		case 4:
			var id uint32
			id, n = consumeUint32(typ, v)
			if n > 0 {
				cs.CrossFaderPluginID = pmx.Uint32(id)
			}
		case 5:
			cs.GainPluginID, n = consumeUint32(typ, v)
		case 6:
			cs.SaturatorPluginID, n = consumeUint32(typ, v)
		}
		return n, nil
	})
	return cs, err
}

func appendPlugin(b []byte, p pmx.Plugin) []byte {
	b = appendUint32(b, 1, p.ID)
	return appendString(b, 2, p.Name)
}

func decodePlugin(b []byte) (pmx.Plugin, error) {
	var p pmx.Plugin
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			p.ID, n = consumeUint32(typ, v)
		case 2:
			p.Name, n = consumeString(typ, v)
		}
		return n, nil
	})
	return p, err
}

func appendNode(b []byte, node pmx.Node) []byte {
	b = appendUint32(b, 1, node.ID)
	b = appendUint32(b, 2, node.ObjectSerial)
	return appendString(b, 3, node.Name)
}

func decodeNode(b []byte) (pmx.Node, error) {
	var node pmx.Node
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			node.ID, n = consumeUint32(typ, v)
		case 2:
			node.ObjectSerial, n = consumeUint32(typ, v)
		case 3:
			node.Name, n = consumeString(typ, v)
		}
		return n, nil
	})
	return node, err
}

func appendPort(b []byte, port pmx.Port) []byte {
	b = appendUint32(b, 1, port.ID)
	b = appendString(b, 2, port.Name)
	b = appendUint32(b, 3, port.NodeID)
	return appendString(b, 4, port.Path)
}

func decodePort(b []byte) (pmx.Port, error) {
	var port pmx.Port
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			port.ID, n = consumeUint32(typ, v)
		case 2:
			port.Name, n = consumeString(typ, v)
		case 3:
			port.NodeID, n = consumeUint32(typ, v)
		case 4:
			port.Path, n = consumeString(typ, v)
		}
		return n, nil
	})
	return port, err
}

// repeated decodes every occurrence of field num as an element.
func repeated[T any](b []byte, num protowire.Number, decode func([]byte) (T, error)) ([]T, error) {
	var items []T
	err := walk(b, func(n protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if n != num {
			return 0, nil
		}
		raw, m := consumeMessage(typ, v)
		if m <= 0 {
			return m, nil
		}
		item, err := decode(raw)
		if err != nil {
			return 0, err
		}
		items = append(items, item)
		return m, nil
	})
	return items, err
}

// ===========================================================================
// Registry messages
// ===========================================================================

type ListInputsResponse struct{ Inputs []pmx.Input }

func (m *ListInputsResponse) AppendWire(b []byte) []byte {
	for _, in := range m.Inputs {
		b = appendMessage(b, 1, appendInput(nil, in))
	}
	return b
}

func (m *ListInputsResponse) UnmarshalWire(b []byte) (err error) {
	m.Inputs, err = repeated(b, 1, decodeInput)
	return err
}

type ListOutputsResponse struct{ Outputs []pmx.Output }

func (m *ListOutputsResponse) AppendWire(b []byte) []byte {
	for _, out := range m.Outputs {
		b = appendMessage(b, 1, appendOutput(nil, out))
	}
	return b
}

func (m *ListOutputsResponse) UnmarshalWire(b []byte) (err error) {
	m.Outputs, err = repeated(b, 1, decodeOutput)
	return err
}

type ListChannelStripsResponse struct{ ChannelStrips []pmx.ChannelStrip }

func (m *ListChannelStripsResponse) AppendWire(b []byte) []byte {
	for _, cs := range m.ChannelStrips {
		b = appendMessage(b, 1, appendChannelStrip(nil, cs))
	}
	return b
}

func (m *ListChannelStripsResponse) UnmarshalWire(b []byte) (err error) {
	m.ChannelStrips, err = repeated(b, 1, decodeChannelStrip)
	return err
}

type ListPluginsResponse struct{ Plugins []pmx.Plugin }

func (m *ListPluginsResponse) AppendWire(b []byte) []byte {
	for _, p := range m.Plugins {
		b = appendMessage(b, 1, appendPlugin(nil, p))
	}
	return b
}

func (m *ListPluginsResponse) UnmarshalWire(b []byte) (err error) {
	m.Plugins, err = repeated(b, 1, decodePlugin)
	return err
}

type RegisterLooperRequest struct{ LoopNumber uint32 }

func (m *RegisterLooperRequest) AppendWire(b []byte) []byte {
	return appendUint32(b, 1, m.LoopNumber)
}

func (m *RegisterLooperRequest) UnmarshalWire(b []byte) error {
	*m = RegisterLooperRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		var n int
		m.LoopNumber, n = consumeUint32(typ, v)
		return n, nil
	})
}

type Looper struct{ pmx.Looper }

func (m *Looper) AppendWire(b []byte) []byte {
	b = appendUint32(b, 1, m.ID)
	return appendUint32(b, 2, m.LoopNumber)
}

func (m *Looper) UnmarshalWire(b []byte) error {
	*m = Looper{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			m.ID, n = consumeUint32(typ, v)
		case 2:
			m.LoopNumber, n = consumeUint32(typ, v)
		}
		return n, nil
	})
}

// ===========================================================================
// Factory messages
// ===========================================================================

type CreateChannelStripRequest struct {
	Name string
	Type pmx.ChannelStripType
}

func (m *CreateChannelStripRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Name)
	return appendEnum(b, 2, int32(m.Type))
}

func (m *CreateChannelStripRequest) UnmarshalWire(b []byte) error {
	*m = CreateChannelStripRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			m.Name, n = consumeString(typ, v)
		case 2:
			var e int32
			e, n = consumeEnum(typ, v)
			m.Type = pmx.ChannelStripType(e)
		}
		return n, nil
	})
}

type ChannelStrip struct{ pmx.ChannelStrip }

func (m *ChannelStrip) AppendWire(b []byte) []byte {
	return appendChannelStrip(b, m.ChannelStrip)
}

func (m *ChannelStrip) UnmarshalWire(b []byte) (err error) {
	m.ChannelStrip, err = decodeChannelStrip(b)
	return err
}

type CreateOutputStageRequest struct{ Name string }

func (m *CreateOutputStageRequest) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.Name)
}

func (m *CreateOutputStageRequest) UnmarshalWire(b []byte) error {
	*m = CreateOutputStageRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		var n int
		m.Name, n = consumeString(typ, v)
		return n, nil
	})
}

type OutputStage struct{ pmx.OutputStage }

func (m *OutputStage) AppendWire(b []byte) []byte {
	b = appendUint32(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendUint32(b, 3, m.CrossFaderPluginID)
	b = appendUint32(b, 4, m.LeftChannelStripID)
	return appendUint32(b, 5, m.RightChannelStripID)
}

func (m *OutputStage) UnmarshalWire(b []byte) error {
	*m = OutputStage{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			m.ID, n = consumeUint32(typ, v)
		case 2:
			m.Name, n = consumeString(typ, v)
		case 3:
			m.CrossFaderPluginID, n = consumeUint32(typ, v)
		case 4:
			m.LeftChannelStripID, n = consumeUint32(typ, v)
		case 5:
			m.RightChannelStripID, n = consumeUint32(typ, v)
		}
		return n, nil
	})
}

// ===========================================================================
// Pipewire messages
// ===========================================================================

type ListNodesResponse struct{ Nodes []pmx.Node }

func (m *ListNodesResponse) AppendWire(b []byte) []byte {
	for _, node := range m.Nodes {
		b = appendMessage(b, 1, appendNode(nil, node))
	}
	return b
}

func (m *ListNodesResponse) UnmarshalWire(b []byte) (err error) {
	m.Nodes, err = repeated(b, 1, decodeNode)
	return err
}

type ListPortsRequest struct{ NodeIDFilter *uint32 }

func (m *ListPortsRequest) AppendWire(b []byte) []byte {
	return appendOptionalUint32(b, 1, m.NodeIDFilter)
}

func (m *ListPortsRequest) UnmarshalWire(b []byte) error {
	*m = ListPortsRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		id, n := consumeUint32(typ, v)
		if n > 0 {
			m.NodeIDFilter = pmx.Uint32(id)
		}
		return n, nil
	})
}

type ListPortsResponse struct{ Ports []pmx.Port }

func (m *ListPortsResponse) AppendWire(b []byte) []byte {
	for _, port := range m.Ports {
		b = appendMessage(b, 1, appendPort(nil, port))
	}
	return b
}

func (m *ListPortsResponse) UnmarshalWire(b []byte) (err error) {
	m.Ports, err = repeated(b, 1, decodePort)
	return err
}

type CreateLinkByNameRequest struct{ pmx.Link }

func (m *CreateLinkByNameRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.OutputNode)
	b = appendUint32(b, 2, m.OutputPort)
	b = appendString(b, 3, m.InputNode)
	return appendUint32(b, 4, m.InputPort)
}

func (m *CreateLinkByNameRequest) UnmarshalWire(b []byte) error {
	*m = CreateLinkByNameRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		var n int
		switch num {
		case 1:
			m.OutputNode, n = consumeString(typ, v)
		case 2:
			m.OutputPort, n = consumeUint32(typ, v)
		case 3:
			m.InputNode, n = consumeString(typ, v)
		case 4:
			m.InputPort, n = consumeUint32(typ, v)
		}
		return n, nil
	})
}
