package builder

import (
	"context"
	"fmt"

	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

type stageDef struct {
	name StageName
	fn   func(ctx context.Context) error
}

func (r *run) stages() []stageDef {
	return []stageDef{
		{StageInputDiscovery, r.discoverInputs},
		{StageStripProvisioning, r.provisionStrips},
		{StageGraphSnapshot, r.takeSnapshot},
		{StageInputToStrip, r.wireInputs},
		{StageLoopers, r.provisionLoopers},
		{StageGroupProvisioning, r.provisionGroups},
		{StageStripToGroup, r.wireGroups},
		{StageOutputStageProvisioning, r.provisionOutputStage},
		{StageGroupToOutputStage, r.wireOutputStage},
		{StageOutputStageToOutputs, r.wireOutputs},
	}
}

// StageNames lists the stages in execution order.
func StageNames() []StageName {
	defs := (&run{}).stages()
	names := make([]StageName, len(defs))
	for i, def := range defs {
		names[i] = def.name
	}
	return names
}

func (r *run) discoverInputs(ctx context.Context) error {
	inputs, err := r.svc.Registry.ListInputs(ctx)
	if err != nil {
		return fmt.Errorf("%w: listing inputs: %w", ErrDiscovery, err)
	}
	r.inputs = inputs
	r.report.setInputs(len(inputs))

	log.Info(log.CatBuild, "inputs discovered", "count", len(inputs))
	for i, in := range inputs {
		log.Debug(log.CatBuild, "input",
			"index", i,
			"name", in.Name,
			"type", in.Type,
			"group", in.GroupName,
		)
	}
	return nil
}

func (r *run) provisionStrips(ctx context.Context) error {
	r.strips = make([]pmx.ChannelStrip, 0, len(r.inputs))
	for _, in := range r.inputs {
		strip, err := r.svc.Factory.CreateChannelStrip(ctx, in.Name, pmx.ChannelStripCrossFaded)
		if err != nil {
			return fmt.Errorf("%w: channel strip %q: %w", ErrProvisioning, in.Name, err)
		}
		r.strips = append(r.strips, strip)
		r.report.addProvisioned(KindChannelStrip)
		log.Info(log.CatBuild, "channel strip created", "name", strip.Name, "id", strip.ID)
	}
	r.snapshot.Invalidate(ctx)
	return nil
}

func (r *run) takeSnapshot(ctx context.Context) error {
	v, err := r.snapshot.view(ctx)
	if err != nil {
		return err
	}
	log.Info(log.CatBuild, "graph snapshot taken",
		"plugins", len(v.plugins),
		"ports", len(v.ports),
		"nodes", len(v.nodes),
	)
	return nil
}

func (r *run) wireInputs(ctx context.Context) error {
	v, err := r.snapshot.view(ctx)
	if err != nil {
		return err
	}
	return r.forEach(ctx, len(r.inputs), func(ctx context.Context, i int) {
		r.wireInputToStrip(ctx, v, i)
	})
}

// wireInputToStrip links the physical ports of input i into the first two
// cross-fader inputs of strip i.
func (r *run) wireInputToStrip(ctx context.Context, v view, i int) {
	in, strip := r.inputs[i], r.strips[i]
	paths := channels(in)
	if len(paths) == 0 {
		log.Debug(log.CatWire, "input has no ports", "input", in.Name, "type", in.Type)
		return
	}

	cf, cfErr := v.crossFader(strip)
	for c, path := range paths {
		link := pmx.Link{InputNode: cf, InputPort: uint32(c)}
		if cfErr != nil {
			r.skip(StageInputToStrip, in.Name, link, cfErr)
			continue
		}
		src, err := v.physical(path)
		if err != nil {
			r.skip(StageInputToStrip, in.Name, link, err)
			continue
		}
		link.OutputNode, link.OutputPort = src.node, src.port
		r.connect(ctx, StageInputToStrip, in.Name, link)
	}
}

func (r *run) provisionLoopers(ctx context.Context) error {
	r.loopers = make([]pmx.Looper, 0, len(r.inputs))
	for i, in := range r.inputs {
		looper, err := r.svc.Registry.RegisterLooper(ctx, uint32(i))
		if err != nil {
			return fmt.Errorf("%w: looper %d for %q: %w", ErrProvisioning, i, in.Name, err)
		}
		r.loopers = append(r.loopers, looper)
		r.report.addProvisioned(KindLooper)
		log.Info(log.CatBuild, "looper registered", "input", in.Name, "loop_number", looper.LoopNumber)
	}
	r.snapshot.Invalidate(ctx)

	v, err := r.snapshot.view(ctx)
	if err != nil {
		return err
	}
	return r.forEach(ctx, len(r.inputs), func(ctx context.Context, i int) {
		r.wireLooper(ctx, v, i)
	})
}

// wireLooper taps input i into looper i and returns the looper output into
// the sidechain inputs of strip i.
func (r *run) wireLooper(ctx context.Context, v view, i int) {
	in, strip, looper := r.inputs[i], r.strips[i], r.loopers[i]
	paths := channels(in)
	if len(paths) == 0 {
		return
	}

	for c, path := range paths {
		link := pmx.Link{InputNode: LooperNode, InputPort: looperInputPort(looper.LoopNumber, c)}
		src, err := v.physical(path)
		if err != nil {
			r.skip(StageLoopers, in.Name, link, err)
			continue
		}
		link.OutputNode, link.OutputPort = src.node, src.port
		r.connect(ctx, StageLoopers, in.Name, link)
	}

	var cf string
	var err error
	if strip.Type == pmx.ChannelStripBasic {
		err = miss("cross-fader", fmt.Sprintf("basic strip %q", strip.Name))
	} else {
		cf, err = v.crossFader(strip)
	}
	for c := range paths {
		link := pmx.Link{
			OutputNode: LooperNode,
			OutputPort: looperOutputPort(looper.LoopNumber, c),
			InputNode:  cf,
			InputPort:  looperReturnPort(c),
		}
		if err != nil {
			r.skip(StageLoopers, in.Name, link, err)
			continue
		}
		r.connect(ctx, StageLoopers, in.Name, link)
	}
}

func (r *run) provisionGroups(ctx context.Context) error {
	r.groups = make(map[Group]pmx.ChannelStrip, len(Groups()))
	for _, g := range Groups() {
		strip, err := r.svc.Factory.CreateChannelStrip(ctx, g.String(), pmx.ChannelStripCrossFaded)
		if err != nil {
			return fmt.Errorf("%w: group bus %s: %w", ErrProvisioning, g, err)
		}
		r.groups[g] = strip
		r.report.addProvisioned(KindGroupBus)
		log.Info(log.CatBuild, "group bus created", "name", strip.Name, "id", strip.ID)
	}
	r.snapshot.Invalidate(ctx)
	return nil
}

func (r *run) wireGroups(ctx context.Context) error {
	v, err := r.snapshot.view(ctx)
	if err != nil {
		return err
	}
	return r.forEach(ctx, len(r.inputs), func(ctx context.Context, i int) {
		r.wireStripToGroup(ctx, v, i)
	})
}

// wireStripToGroup feeds the gain of the strip named after input i into
// the saturator of its group bus.
func (r *run) wireStripToGroup(ctx context.Context, v view, i int) {
	in := r.inputs[i]
	g, ok := ParseGroup(in.GroupName)
	if !ok {
		log.Info(log.CatWire, "unmatched group", "input", in.Name, "group", in.GroupName)
		r.skip(StageStripToGroup, in.Name, pmx.Link{}, miss("group bus", fmt.Sprintf("name %q", in.GroupName)))
		return
	}
	strip, err := stripByName(r.strips, in.Name)
	if err != nil {
		r.skip(StageStripToGroup, in.Name, pmx.Link{}, err)
		return
	}
	r.stereo(ctx, v, StageStripToGroup, in.Name, strip.GainPluginID, r.groups[g].SaturatorPluginID)
}

func (r *run) provisionOutputStage(ctx context.Context) error {
	stage, err := r.svc.Factory.CreateOutputStage(ctx, OutputStageName)
	if err != nil {
		return fmt.Errorf("%w: output stage: %w", ErrProvisioning, err)
	}
	r.outputStage = stage
	r.report.addProvisioned(KindOutputStage)
	log.Info(log.CatBuild, "output stage created",
		"name", stage.Name,
		"id", stage.ID,
		"left_strip", stage.LeftChannelStripID,
		"right_strip", stage.RightChannelStripID,
	)
	r.snapshot.Invalidate(ctx)
	return nil
}

// wireOutputStage feeds every group bus into both saturators of the output
// stage. Its strips are looked up in a fresh registry listing.
func (r *run) wireOutputStage(ctx context.Context) error {
	strips, err := r.snapshot.ChannelStrips(ctx)
	if err != nil {
		return err
	}
	v, err := r.snapshot.view(ctx)
	if err != nil {
		return err
	}

	type side struct {
		strip pmx.ChannelStrip
		err   error
	}
	var sides [2]side
	sides[0].strip, sides[0].err = stripByID(strips, r.outputStage.LeftChannelStripID)
	sides[1].strip, sides[1].err = stripByID(strips, r.outputStage.RightChannelStripID)

	groups := Groups()
	return r.forEach(ctx, len(groups), func(ctx context.Context, i int) {
		g := groups[i]
		bus := r.groups[g]
		for _, s := range sides {
			if s.err != nil {
				r.skip(StageGroupToOutputStage, g.String(), pmx.Link{}, s.err)
				continue
			}
			r.stereo(ctx, v, StageGroupToOutputStage, g.String(), bus.GainPluginID, s.strip.SaturatorPluginID)
		}
	})
}

// wireOutputs links the output stage cross-fader, port 0 left and port 1
// right, into every physical output that has both port paths.
func (r *run) wireOutputs(ctx context.Context) error {
	outputs, err := r.svc.Registry.ListOutputs(ctx)
	if err != nil {
		return fmt.Errorf("%w: listing outputs: %w", ErrDiscovery, err)
	}
	v, err := r.snapshot.view(ctx)
	if err != nil {
		return err
	}
	cf, cfErr := v.pluginNode(r.outputStage.CrossFaderPluginID)

	return r.forEach(ctx, len(outputs), func(ctx context.Context, i int) {
		out := outputs[i]
		incomplete := incompleteOutput(out)
		if incomplete != nil {
			log.Info(log.CatWire, "output lacks a port path", "output", out.Name)
		}
		for c, path := range []string{out.LeftPortPath, out.RightPortPath} {
			link := pmx.Link{OutputNode: cf, OutputPort: uint32(c)}
			if incomplete != nil {
				r.skip(StageOutputStageToOutputs, out.Name, link, incomplete)
				continue
			}
			if cfErr != nil {
				r.skip(StageOutputStageToOutputs, out.Name, link, cfErr)
				continue
			}
			dst, err := v.physical(path)
			if err != nil {
				r.skip(StageOutputStageToOutputs, out.Name, link, err)
				continue
			}
			link.InputNode, link.InputPort = dst.node, dst.port
			r.connect(ctx, StageOutputStageToOutputs, out.Name, link)
		}
	})
}

// incompleteOutput returns why out cannot be wired as a stereo pair, or nil
// when both port paths are set.
func incompleteOutput(out pmx.Output) error {
	switch {
	case out.HasPorts():
		return nil
	case out.LeftPortPath == "" && out.RightPortPath == "":
		return fmt.Errorf("output %q has no port paths", out.Name)
	case out.LeftPortPath == "":
		return fmt.Errorf("output %q has no left port path", out.Name)
	default:
		return fmt.Errorf("output %q has no right port path", out.Name)
	}
}
