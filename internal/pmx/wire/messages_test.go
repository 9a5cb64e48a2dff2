package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

func TestCodec_Name(t *testing.T) {
	require.Equal(t, "proto", Codec{}.Name())
}

func TestCodec_RejectsForeignTypes(t *testing.T) {
	_, err := Codec{}.Marshal("not a message")
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot marshal string")

	err = Codec{}.Unmarshal(nil, 42)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot unmarshal into int")
}

// TestListInputsResponse_DecodesHandEncodedBytes pins the field numbers of
// proto/pmx.proto independently of the encoder.
func TestListInputsResponse_DecodesHandEncodedBytes(t *testing.T) {
	var input []byte
	input = protowire.AppendTag(input, 1, protowire.VarintType)
	input = protowire.AppendVarint(input, 7)
	input = protowire.AppendTag(input, 2, protowire.BytesType)
	input = protowire.AppendString(input, "Kick")
	input = protowire.AppendTag(input, 3, protowire.VarintType)
	input = protowire.AppendVarint(input, 2)
	input = protowire.AppendTag(input, 4, protowire.BytesType)
	input = protowire.AppendString(input, "alsa:capture_1")
	input = protowire.AppendTag(input, 5, protowire.BytesType)
	input = protowire.AppendString(input, "alsa:capture_2")
	input = protowire.AppendTag(input, 6, protowire.BytesType)
	input = protowire.AppendString(input, "Drums")

	var msg []byte
	msg = protowire.AppendTag(msg, 1, protowire.BytesType)
	msg = protowire.AppendBytes(msg, input)

	var resp ListInputsResponse
	require.NoError(t, Codec{}.Unmarshal(msg, &resp))

	want := []pmx.Input{{
		ID:            7,
		Name:          "Kick",
		Type:          pmx.InputStereo,
		LeftPortPath:  "alsa:capture_1",
		RightPortPath: "alsa:capture_2",
		GroupName:     "Drums",
	}}
	if diff := cmp.Diff(want, resp.Inputs); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_SkipsUnknownFields(t *testing.T) {
	var plugin []byte
	plugin = protowire.AppendTag(plugin, 1, protowire.VarintType)
	plugin = protowire.AppendVarint(plugin, 3)
	plugin = protowire.AppendTag(plugin, 9, protowire.BytesType)
	plugin = protowire.AppendString(plugin, "urn:lv2:gain")
	plugin = protowire.AppendTag(plugin, 10, protowire.Fixed64Type)
	plugin = protowire.AppendFixed64(plugin, 99)
	plugin = protowire.AppendTag(plugin, 2, protowire.BytesType)
	plugin = protowire.AppendString(plugin, "gain_3")

	var msg []byte
	msg = protowire.AppendTag(msg, 1, protowire.BytesType)
	msg = protowire.AppendBytes(msg, plugin)

	var resp ListPluginsResponse
	require.NoError(t, resp.UnmarshalWire(msg))
	require.Equal(t, []pmx.Plugin{{ID: 3, Name: "gain_3"}}, resp.Plugins)
}

func TestDecode_TruncatedInputFails(t *testing.T) {
	full := (&ListPortsResponse{Ports: []pmx.Port{{ID: 1, Name: "playback_FL", NodeID: 40, Path: "alsa:playback_1"}}}).AppendWire(nil)

	var resp ListPortsResponse
	err := resp.UnmarshalWire(full[:len(full)-3])
	require.Error(t, err)
}

func TestChannelStrip_CrossFaderPresenceSurvivesZeroID(t *testing.T) {
	in := ChannelStrip{pmx.ChannelStrip{
		ID:                 4,
		Name:               "Bass",
		Type:               pmx.ChannelStripCrossFaded,
		CrossFaderPluginID: pmx.Uint32(0),
		GainPluginID:       11,
		SaturatorPluginID:  12,
	}}

	var out ChannelStrip
	require.NoError(t, out.UnmarshalWire(in.AppendWire(nil)))
	require.NotNil(t, out.CrossFaderPluginID, "explicit zero must keep presence")
	require.Equal(t, uint32(0), *out.CrossFaderPluginID)

	basic := ChannelStrip{pmx.ChannelStrip{ID: 5, Name: "Click", Type: pmx.ChannelStripBasic}}
	require.NoError(t, out.UnmarshalWire(basic.AppendWire(nil)))
	require.Nil(t, out.CrossFaderPluginID)
	require.Equal(t, pmx.ChannelStripBasic, out.Type)
}

func TestRepeated_KeepsEmptyElements(t *testing.T) {
	in := ListNodesResponse{Nodes: []pmx.Node{{}, {ID: 2, ObjectSerial: 80, Name: "sooperlooper"}}}

	var out ListNodesResponse
	require.NoError(t, out.UnmarshalWire(in.AppendWire(nil)))
	require.Len(t, out.Nodes, 2)
	require.Equal(t, pmx.Node{}, out.Nodes[0])
	require.Equal(t, "sooperlooper", out.Nodes[1].Name)
}

func TestListPortsRequest_FilterPresence(t *testing.T) {
	require.Empty(t, (&ListPortsRequest{}).AppendWire(nil))

	var req ListPortsRequest
	require.NoError(t, req.UnmarshalWire((&ListPortsRequest{NodeIDFilter: pmx.Uint32(0)}).AppendWire(nil)))
	require.NotNil(t, req.NodeIDFilter)
	require.Equal(t, uint32(0), *req.NodeIDFilter)
}

func TestCreateLinkByNameRequest_FieldLayout(t *testing.T) {
	req := CreateLinkByNameRequest{pmx.Link{OutputNode: "sooperlooper", OutputPort: 5, InputNode: "cross_fader_1", InputPort: 3}}
	b := req.AppendWire(nil)

	var want []byte
	want = protowire.AppendTag(want, 1, protowire.BytesType)
	want = protowire.AppendString(want, "sooperlooper")
	want = protowire.AppendTag(want, 2, protowire.VarintType)
	want = protowire.AppendVarint(want, 5)
	want = protowire.AppendTag(want, 3, protowire.BytesType)
	want = protowire.AppendString(want, "cross_fader_1")
	want = protowire.AppendTag(want, 4, protowire.VarintType)
	want = protowire.AppendVarint(want, 3)
	require.Equal(t, want, b)
}

func TestEmpty_IgnoresPayload(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	require.NoError(t, (&Empty{}).UnmarshalWire(b))
	require.Empty(t, (&Empty{}).AppendWire(nil))
}
