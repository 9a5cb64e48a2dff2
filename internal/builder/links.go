package builder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

// LooperNode is the graph node of the loop-recording engine. Every looper
// lives on it; the loop number selects its ports.
const LooperNode = "sooperlooper"

// Looper port numbering is a convention of the looper engine node:
//
//	input channel c  -> sooperlooper:(2n + 2 + c)
//	sooperlooper:(n + 2 + c) -> cross-fader:(2 + c)
//
// where n is the loop number and c is 0 for left and 1 for right.
func looperInputPort(loop uint32, channel int) uint32 {
	return 2*loop + 2 + uint32(channel)
}

func looperOutputPort(loop uint32, channel int) uint32 {
	return loop + 2 + uint32(channel)
}

// looperReturnPort is the cross-fader input a looper channel feeds.
func looperReturnPort(channel int) uint32 {
	return 2 + uint32(channel)
}

// connect issues one link. A failed call is logged and recorded; it never
// stops the stage.
func (r *run) connect(ctx context.Context, stage StageName, subject string, link pmx.Link) {
	if err := r.svc.Graph.CreateLinkByName(ctx, link); err != nil {
		log.ErrorErr(log.CatWire, "link failed", err,
			"stage", stage,
			"subject", subject,
			"link", link,
		)
		r.report.record(LinkRecord{Stage: stage, Subject: subject, Link: link, Outcome: OutcomeFailed, Reason: err.Error()})
		return
	}
	log.Info(log.CatWire, "link created", "stage", stage, "subject", subject, "link", link)
	r.report.record(LinkRecord{Stage: stage, Subject: subject, Link: link, Outcome: OutcomeCreated})
}

// skip records a connection that could not be resolved.
func (r *run) skip(stage StageName, subject string, link pmx.Link, reason error) {
	log.Info(log.CatWire, "link skipped", "stage", stage, "subject", subject, "reason", reason)
	r.report.record(LinkRecord{Stage: stage, Subject: subject, Link: link, Outcome: OutcomeSkipped, Reason: reason.Error()})
}

// stereo links ports 0->0 and 1->1 between two plugins.
func (r *run) stereo(ctx context.Context, v view, stage StageName, subject string, from, to uint32) {
	out, err := v.pluginNode(from)
	var in string
	if err == nil {
		in, err = v.pluginNode(to)
	}
	for ch := uint32(0); ch < 2; ch++ {
		link := pmx.Link{OutputNode: out, OutputPort: ch, InputNode: in, InputPort: ch}
		if err != nil {
			r.skip(stage, subject, link, err)
			continue
		}
		r.connect(ctx, stage, subject, link)
	}
}

// forEach runs fn for items 0..n-1. Items run in order unless concurrent
// wiring is enabled; calls for a single item always stay in order.
func (r *run) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	if !r.opts.ConcurrentWiring || n < 2 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(ctx, i)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MaxParallel)
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(gctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("wiring interrupted: %w", err)
	}
	return nil
}
