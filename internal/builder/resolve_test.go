package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

func TestParseGroup(t *testing.T) {
	for _, g := range Groups() {
		got, ok := ParseGroup(g.String())
		require.True(t, ok)
		require.Equal(t, g, got)
	}

	for _, name := range []string{"drums", "DRUMS", " Drums", "Drums ", "", "Keys"} {
		_, ok := ParseGroup(name)
		require.False(t, ok, "%q must not match", name)
	}
}

func TestGroups_Order(t *testing.T) {
	var names []string
	for _, g := range Groups() {
		names = append(names, g.String())
	}
	require.Equal(t, []string{"Drums", "Bass", "Melody", "Atmos"}, names)
	require.Equal(t, "Unknown", Group(9).String())
}

func TestFind_FirstMatchWins(t *testing.T) {
	ports := []pmx.Port{
		{ID: 0, Path: "a"},
		{ID: 1, Path: "b"},
		{ID: 2, Path: "b"},
	}

	got, ok := find(ports, func(p pmx.Port) bool { return p.Path == "b" })
	require.True(t, ok)
	require.Equal(t, uint32(1), got.ID)

	_, ok = find(ports, func(p pmx.Port) bool { return p.Path == "c" })
	require.False(t, ok)

	_, ok = find[pmx.Port](nil, func(pmx.Port) bool { return true })
	require.False(t, ok)
}

func testView() view {
	return view{
		plugins: []pmx.Plugin{{ID: 10, Name: "cross_fader_10"}, {ID: 11, Name: "gain_11"}},
		ports: []pmx.Port{
			{ID: 0, Path: "usb:capture_1", NodeID: 1042},
			{ID: 1, Path: "usb:capture_2", NodeID: 1042},
			{ID: 0, Path: "orphan:out", NodeID: 9999},
		},
		nodes: []pmx.Node{{ID: 42, ObjectSerial: 1042, Name: "usb"}},
	}
}

func TestView_Physical(t *testing.T) {
	v := testView()

	ep, err := v.physical("usb:capture_2")
	require.NoError(t, err)
	require.Equal(t, endpoint{node: "usb", port: 1}, ep)

	tests := []struct {
		path   string
		reason string
	}{
		{path: "", reason: "no port matching an unset path"},
		{path: "usb:capture_9", reason: `no port matching path "usb:capture_9"`},
		{path: "orphan:out", reason: "no node matching object serial 9999"},
	}
	for _, tt := range tests {
		_, err := v.physical(tt.path)
		var me *MissError
		require.True(t, errors.As(err, &me))
		require.EqualError(t, err, tt.reason)
	}
}

func TestView_NodeMatchesObjectSerialNotID(t *testing.T) {
	v := testView()
	v.ports = append(v.ports, pmx.Port{ID: 3, Path: "by-id", NodeID: 42})

	_, err := v.physical("by-id")
	require.EqualError(t, err, "no node matching object serial 42")
}

func TestView_CrossFader(t *testing.T) {
	v := testView()

	name, err := v.crossFader(pmx.ChannelStrip{Name: "Kick", CrossFaderPluginID: pmx.Uint32(10)})
	require.NoError(t, err)
	require.Equal(t, "cross_fader_10", name)

	_, err = v.crossFader(pmx.ChannelStrip{Name: "Click", Type: pmx.ChannelStripBasic})
	require.EqualError(t, err, `no cross-fader matching strip "Click"`)

	_, err = v.crossFader(pmx.ChannelStrip{Name: "Stale", CrossFaderPluginID: pmx.Uint32(77)})
	require.EqualError(t, err, "no plugin matching id 77")
}

func TestStripLookups(t *testing.T) {
	strips := []pmx.ChannelStrip{{ID: 1, Name: "Kick"}, {ID: 2, Name: "Snare"}}

	s, err := stripByName(strips, "Snare")
	require.NoError(t, err)
	require.Equal(t, uint32(2), s.ID)
	_, err = stripByName(strips, "snare")
	require.Error(t, err)

	s, err = stripByID(strips, 1)
	require.NoError(t, err)
	require.Equal(t, "Kick", s.Name)
	_, err = stripByID(strips, 3)
	require.EqualError(t, err, "no channel strip matching id 3")
}

func TestChannels(t *testing.T) {
	require.Nil(t, channels(pmx.Input{Type: pmx.InputNone, LeftPortPath: "l"}))
	require.Equal(t, []string{"l"}, channels(pmx.Input{Type: pmx.InputMono, LeftPortPath: "l", RightPortPath: "r"}))
	require.Equal(t, []string{"l", "r"}, channels(pmx.Input{Type: pmx.InputStereo, LeftPortPath: "l", RightPortPath: "r"}))
}

func TestLooperPorts(t *testing.T) {
	tests := []struct {
		loop       uint32
		in0, in1   uint32
		out0, out1 uint32
	}{
		{loop: 0, in0: 2, in1: 3, out0: 2, out1: 3},
		{loop: 1, in0: 4, in1: 5, out0: 3, out1: 4},
		{loop: 7, in0: 16, in1: 17, out0: 9, out1: 10},
	}
	for _, tt := range tests {
		require.Equal(t, tt.in0, looperInputPort(tt.loop, 0))
		require.Equal(t, tt.in1, looperInputPort(tt.loop, 1))
		require.Equal(t, tt.out0, looperOutputPort(tt.loop, 0))
		require.Equal(t, tt.out1, looperOutputPort(tt.loop, 1))
	}
	require.Equal(t, uint32(2), looperReturnPort(0))
	require.Equal(t, uint32(3), looperReturnPort(1))
}
