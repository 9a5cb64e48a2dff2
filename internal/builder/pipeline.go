// Package builder provisions and wires the pmx mixing topology.
//
// A run executes ten stages strictly in order: it discovers the inputs,
// creates a channel strip and a looper per input, the four group buses and
// the output stage, and links
//
//	input -> channel strip -> group bus -> output stage -> physical output
//	input -> looper -> channel strip
//
// by plugin and node name. Discovery and provisioning failures abort the
// run. A connection whose endpoints cannot be resolved, or whose link call
// fails, is logged, recorded in the Report and skipped.
package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
	"github.com/zjrosen/pmxbuilder/internal/pubsub"
)

// OutputStageName is the name the output stage is created with.
const OutputStageName = "Output Stage"

// DefaultMaxParallel bounds concurrent wiring when no limit is configured.
const DefaultMaxParallel = 4

// Services are the three collaborators a run talks to.
type Services struct {
	Registry pmx.Registry
	Factory  pmx.Factory
	Graph    pmx.Graph
}

// Options tune a Builder. The zero value runs sequentially without
// snapshot caching.
type Options struct {
	// ConcurrentWiring wires independent items of a stage in parallel.
	ConcurrentWiring bool
	// MaxParallel bounds ConcurrentWiring. Defaults to DefaultMaxParallel.
	MaxParallel int
	// CacheSnapshots reuses plugin, port and node listings between
	// provisioning stages.
	CacheSnapshots bool
	// Strict turns failed links into a run error.
	Strict bool
	// Middleware wraps every stage, outermost first.
	Middleware []Middleware
	// Progress receives stage transitions and every link record as they
	// happen. Nil publishes nothing.
	Progress pubsub.Publisher[Progress]

	NewRunID func() string
	Now      func() time.Time
}

// Builder runs the pipeline. A Builder may be run any number of times;
// every run provisions a complete new topology.
type Builder struct {
	svc  Services
	opts Options
}

// New creates a Builder.
func New(svc Services, opts Options) *Builder {
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = DefaultMaxParallel
	}
	if opts.NewRunID == nil {
		opts.NewRunID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{svc: svc, opts: opts}
}

// run holds the state threaded between the stages of one build.
type run struct {
	svc      Services
	opts     Options
	snapshot *Snapshot
	report   *Report

	inputs      []pmx.Input
	strips      []pmx.ChannelStrip
	loopers     []pmx.Looper
	groups      map[Group]pmx.ChannelStrip
	outputStage pmx.OutputStage
}

// Run executes every stage in order. The returned Report is never nil and
// describes the run up to the point it stopped.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	r := &run{
		svc:      b.svc,
		opts:     b.opts,
		snapshot: NewSnapshot(b.svc.Registry, b.svc.Graph, b.opts.CacheSnapshots),
		report:   newReport(b.opts.NewRunID(), b.opts.Now()),
	}
	runID := r.report.RunID
	log.Info(log.CatBuild, "build started", "run_id", runID, "concurrent", b.opts.ConcurrentWiring)

	middleware := b.opts.Middleware
	if pub := b.opts.Progress; pub != nil {
		r.report.onRecord = func(rec LinkRecord) {
			pub.Publish(pubsub.LinkEvent, Progress{RunID: runID, Stage: rec.Stage, Link: &rec})
		}
		middleware = append([]Middleware{progressMiddleware(pub)}, middleware...)
	}
	handler := ChainMiddleware(executeStage, middleware...)
	defs := r.stages()
	for i, def := range defs {
		stage := Stage{
			Name:   def.name,
			Index:  i + 1,
			Total:  len(defs),
			RunID:  runID,
			Report: r.report,
			run:    def.fn,
		}
		if err := handler(ctx, stage); err != nil {
			err = fmt.Errorf("stage %s: %w", def.name, err)
			r.report.finish(b.opts.Now(), err)
			log.ErrorErr(log.CatBuild, "build aborted", err, "run_id", runID)
			return r.report, err
		}
	}

	var err error
	created, skipped, failed := tally(r.report.Links())
	if failed > 0 && b.opts.Strict {
		err = fmt.Errorf("%w: %d of %d links", ErrLinksFailed, failed, created+skipped+failed)
	}
	r.report.finish(b.opts.Now(), err)

	hits, calls := r.snapshot.Stats()
	log.Debug(log.CatCache, "snapshot cache", "run_id", runID, "hits", hits, "service_calls", calls)
	log.Info(log.CatBuild, "build completed",
		"run_id", runID,
		"duration", r.report.Duration(),
		"created", created,
		"skipped", skipped,
		"failed", failed,
	)
	return r.report, err
}
