package builder

import (
	"context"
	"time"

	"github.com/zjrosen/pmxbuilder/internal/log"
)

// StageName identifies one of the ten build stages.
type StageName string

const (
	StageInputDiscovery          StageName = "input_discovery"
	StageStripProvisioning       StageName = "strip_provisioning"
	StageGraphSnapshot           StageName = "graph_snapshot"
	StageInputToStrip            StageName = "input_to_strip"
	StageLoopers                 StageName = "looper_wiring"
	StageGroupProvisioning       StageName = "group_provisioning"
	StageStripToGroup            StageName = "strip_to_group"
	StageOutputStageProvisioning StageName = "output_stage_provisioning"
	StageGroupToOutputStage      StageName = "group_to_output_stage"
	StageOutputStageToOutputs    StageName = "output_stage_to_outputs"
)

// Stage is passed through the middleware chain once per stage.
type Stage struct {
	Name   StageName
	Index  int // 1-based position in the pipeline
	Total  int
	RunID  string
	Report *Report

	run func(ctx context.Context) error
}

// StageFunc executes a stage.
type StageFunc func(ctx context.Context, stage Stage) error

// Middleware wraps a StageFunc to add behavior around every stage.
type Middleware func(next StageFunc) StageFunc

// ChainMiddleware applies middlewares to a handler in reverse order.
// The first middleware in the list will be the outermost wrapper.
func ChainMiddleware(handler StageFunc, middlewares ...Middleware) StageFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func executeStage(ctx context.Context, stage Stage) error {
	return stage.run(ctx)
}

// NewLoggingMiddleware logs the start and outcome of every stage along with
// the link tally it produced.
func NewLoggingMiddleware() Middleware {
	return func(next StageFunc) StageFunc {
		return func(ctx context.Context, stage Stage) error {
			start := time.Now()
			log.Info(log.CatBuild, "stage started",
				"run_id", stage.RunID,
				"stage", stage.Name,
				"step", stage.Index,
				"of", stage.Total,
			)

			err := next(ctx, stage)

			created, skipped, failed := tally(stage.Report.LinksFor(stage.Name))
			if err != nil {
				log.ErrorErr(log.CatBuild, "stage failed", err,
					"run_id", stage.RunID,
					"stage", stage.Name,
					"duration", time.Since(start),
				)
				return err
			}
			log.Info(log.CatBuild, "stage completed",
				"run_id", stage.RunID,
				"stage", stage.Name,
				"duration", time.Since(start),
				"created", created,
				"skipped", skipped,
				"failed", failed,
			)
			return nil
		}
	}
}

func tally(records []LinkRecord) (created, skipped, failed int) {
	for _, rec := range records {
		switch rec.Outcome {
		case OutcomeCreated:
			created++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return created, skipped, failed
}
