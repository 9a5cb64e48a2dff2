package builder

import (
	"context"

	"github.com/zjrosen/pmxbuilder/internal/pubsub"
)

// Progress is one live update from a running build. Stage events carry
// Index and Total; link events carry Link.
type Progress struct {
	RunID string
	Stage StageName
	Index int
	Total int
	Link  *LinkRecord
	Err   error // set on a StageFinishedEvent for a failed stage
}

func progressMiddleware(pub pubsub.Publisher[Progress]) Middleware {
	return func(next StageFunc) StageFunc {
		return func(ctx context.Context, stage Stage) error {
			p := Progress{RunID: stage.RunID, Stage: stage.Name, Index: stage.Index, Total: stage.Total}
			pub.Publish(pubsub.StageStartedEvent, p)
			err := next(ctx, stage)
			p.Err = err
			pub.Publish(pubsub.StageFinishedEvent, p)
			return err
		}
	}
}
