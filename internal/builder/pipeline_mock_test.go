package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pmxbuilder/internal/mocks"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

// TestRun_ExactCallSequence drives one mono input through strict mocks and
// checks every link the builder asks the graph engine for.
func TestRun_ExactCallSequence(t *testing.T) {
	registry := mocks.NewMockRegistry(t)
	factory := mocks.NewMockFactory(t)
	graph := mocks.NewMockGraph(t)

	registry.EXPECT().ListInputs(mock.Anything).Return([]pmx.Input{
		{ID: 1, Name: "Kick", Type: pmx.InputMono, LeftPortPath: "usb:capture_1", GroupName: "Drums"},
	}, nil).Once()

	factory.EXPECT().CreateChannelStrip(mock.Anything, "Kick", pmx.ChannelStripCrossFaded).Return(pmx.ChannelStrip{
		ID: 100, Name: "Kick", Type: pmx.ChannelStripCrossFaded,
		CrossFaderPluginID: pmx.Uint32(10), GainPluginID: 11, SaturatorPluginID: 12,
	}, nil).Once()
	for i, g := range Groups() {
		base := uint32(20 + 10*i)
		factory.EXPECT().CreateChannelStrip(mock.Anything, g.String(), pmx.ChannelStripCrossFaded).Return(pmx.ChannelStrip{
			ID: 200 + uint32(i), Name: g.String(), Type: pmx.ChannelStripCrossFaded,
			CrossFaderPluginID: pmx.Uint32(base), GainPluginID: base + 1, SaturatorPluginID: base + 2,
		}, nil).Once()
	}
	factory.EXPECT().CreateOutputStage(mock.Anything, "Output Stage").Return(pmx.OutputStage{
		ID: 300, Name: "Output Stage", CrossFaderPluginID: 90, LeftChannelStripID: 301, RightChannelStripID: 302,
	}, nil).Once()

	registry.EXPECT().RegisterLooper(mock.Anything, uint32(0)).Return(pmx.Looper{ID: 400, LoopNumber: 0}, nil).Once()

	plugins := []pmx.Plugin{
		{ID: 10, Name: "cf_kick"}, {ID: 11, Name: "gain_kick"}, {ID: 12, Name: "sat_kick"},
		{ID: 21, Name: "gain_drums"}, {ID: 22, Name: "sat_drums"},
		{ID: 31, Name: "gain_bass"}, {ID: 41, Name: "gain_melody"}, {ID: 51, Name: "gain_atmos"},
		{ID: 90, Name: "cf_out"}, {ID: 312, Name: "sat_left"}, {ID: 322, Name: "sat_right"},
	}
	registry.EXPECT().ListPlugins(mock.Anything).Return(plugins, nil)
	graph.EXPECT().ListPorts(mock.Anything, (*uint32)(nil)).Return([]pmx.Port{
		{ID: 0, NodeID: 5001, Path: "usb:capture_1"},
		{ID: 0, NodeID: 5002, Path: "usb:playback_1"},
		{ID: 1, NodeID: 5002, Path: "usb:playback_2"},
	}, nil)
	graph.EXPECT().ListNodes(mock.Anything).Return([]pmx.Node{
		{ID: 1, ObjectSerial: 5001, Name: "usb_in"},
		{ID: 2, ObjectSerial: 5002, Name: "usb_out"},
	}, nil)
	registry.EXPECT().ListChannelStrips(mock.Anything).Return([]pmx.ChannelStrip{
		{ID: 301, Name: "Output Stage L", SaturatorPluginID: 312},
		{ID: 302, Name: "Output Stage R", SaturatorPluginID: 322},
	}, nil).Once()
	registry.EXPECT().ListOutputs(mock.Anything).Return([]pmx.Output{
		{ID: 1, Name: "Main", LeftPortPath: "usb:playback_1", RightPortPath: "usb:playback_2"},
	}, nil).Once()

	var links []pmx.Link
	graph.EXPECT().CreateLinkByName(mock.Anything, mock.Anything).
		Run(func(_ context.Context, link pmx.Link) { links = append(links, link) }).
		Return(nil)

	report, err := New(Services{Registry: registry, Factory: factory, Graph: graph}, Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.Count(OutcomeSkipped))

	want := []pmx.Link{
		// input -> strip
		{OutputNode: "usb_in", OutputPort: 0, InputNode: "cf_kick", InputPort: 0},
		// input -> looper, looper -> strip
		{OutputNode: "usb_in", OutputPort: 0, InputNode: LooperNode, InputPort: 2},
		{OutputNode: LooperNode, OutputPort: 2, InputNode: "cf_kick", InputPort: 2},
		// strip -> group
		{OutputNode: "gain_kick", OutputPort: 0, InputNode: "sat_drums", InputPort: 0},
		{OutputNode: "gain_kick", OutputPort: 1, InputNode: "sat_drums", InputPort: 1},
	}
	for _, gain := range []string{"gain_drums", "gain_bass", "gain_melody", "gain_atmos"} {
		for _, sat := range []string{"sat_left", "sat_right"} {
			want = append(want,
				pmx.Link{OutputNode: gain, OutputPort: 0, InputNode: sat, InputPort: 0},
				pmx.Link{OutputNode: gain, OutputPort: 1, InputNode: sat, InputPort: 1},
			)
		}
	}
	want = append(want,
		pmx.Link{OutputNode: "cf_out", OutputPort: 0, InputNode: "usb_out", InputPort: 0},
		pmx.Link{OutputNode: "cf_out", OutputPort: 1, InputNode: "usb_out", InputPort: 1},
	)
	require.Equal(t, want, links)
}
