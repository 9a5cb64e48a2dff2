package presentation

import (
	"time"

	"github.com/zjrosen/pmxbuilder/internal/builder"
	"github.com/zjrosen/pmxbuilder/internal/journal"
	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/metrics"
	"github.com/zjrosen/pmxbuilder/internal/pubsub"
)

// RunDTO represents a journaled build run for presentation
type RunDTO struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	DurationMS int64      `json:"duration_ms"`
	Inputs     int        `json:"inputs"`
	Entities   EntityDTO  `json:"entities"`
	Links      CountsDTO  `json:"links"`
	Error      string     `json:"error,omitempty"`
}

// EntityDTO counts what a run provisioned
type EntityDTO struct {
	ChannelStrips int `json:"channel_strips"`
	Loopers       int `json:"loopers"`
	GroupBuses    int `json:"group_buses"`
	OutputStages  int `json:"output_stages"`
}

// CountsDTO counts link outcomes
type CountsDTO struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// LinkDTO represents one journaled link record
type LinkDTO struct {
	Seq     int    `json:"seq"`
	Stage   string `json:"stage"`
	Subject string `json:"subject"`
	Output  string `json:"output"`
	Input   string `json:"input"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// BuildResultDTO is printed after a build completes
type BuildResultDTO struct {
	RunID       string    `json:"run_id"`
	Inputs      int       `json:"inputs"`
	Entities    EntityDTO `json:"entities"`
	Links       CountsDTO `json:"links"`
	SuccessRate float64   `json:"success_rate"`
	DurationMS  int64     `json:"duration_ms"`
	Summary     string    `json:"summary"`
	Error       string    `json:"error,omitempty"`
}

// FromJournalRun converts a journal run to a DTO
func FromJournalRun(run journal.Run) RunDTO {
	dto := RunDTO{
		RunID:      run.RunID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Inputs:     run.Inputs,
		Entities: EntityDTO{
			ChannelStrips: run.ChannelStrips,
			Loopers:       run.Loopers,
			GroupBuses:    run.GroupBuses,
			OutputStages:  run.OutputStages,
		},
		Links: CountsDTO{
			Created: run.LinksCreated,
			Skipped: run.LinksSkipped,
			Failed:  run.LinksFailed,
		},
		Error: run.Error,
	}
	if run.FinishedAt != nil {
		dto.DurationMS = run.FinishedAt.Sub(run.StartedAt).Milliseconds()
	}
	return dto
}

// FromJournalRuns converts a slice of journal runs to DTOs
func FromJournalRuns(runs []journal.Run) []RunDTO {
	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = FromJournalRun(run)
	}
	return dtos
}

// FromJournalLinks converts journaled link records to DTOs. Endpoints are
// rendered as node:port.
func FromJournalLinks(links []journal.Link) []LinkDTO {
	dtos := make([]LinkDTO, len(links))
	for i, l := range links {
		dtos[i] = LinkDTO{
			Seq:     l.Seq,
			Stage:   string(l.Stage),
			Subject: l.Subject,
			Output:  endpoint(l.Link.OutputNode, l.Link.OutputPort),
			Input:   endpoint(l.Link.InputNode, l.Link.InputPort),
			Outcome: string(l.Outcome),
			Reason:  l.Reason,
		}
	}
	return dtos
}

// FromSummary converts a run summary to the build result DTO
func FromSummary(s metrics.RunSummary) BuildResultDTO {
	return BuildResultDTO{
		RunID:  s.RunID,
		Inputs: s.Inputs,
		Entities: EntityDTO{
			ChannelStrips: s.ChannelStrips,
			Loopers:       s.Loopers,
			GroupBuses:    s.GroupBuses,
			OutputStages:  s.OutputStages,
		},
		Links: CountsDTO{
			Created: s.LinksCreated,
			Skipped: s.LinksSkipped,
			Failed:  s.LinksFailed,
		},
		SuccessRate: s.SuccessRate(),
		DurationMS:  s.Duration.Milliseconds(),
		Summary:     s.FormatEntitiesDisplay() + ", " + s.FormatLinksDisplay(),
		Error:       s.Error,
	}
}

// ProgressDTO is one streamed progress line
type ProgressDTO struct {
	Seq     uint64 `json:"seq"`
	At      string `json:"at"`
	Event   string `json:"event"`
	RunID   string `json:"run_id"`
	Stage   string `json:"stage"`
	Step    int    `json:"step,omitempty"`
	Of      int    `json:"of,omitempty"`
	Subject string `json:"subject,omitempty"`
	Output  string `json:"output,omitempty"`
	Input   string `json:"input,omitempty"`
	Outcome string `json:"outcome,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FromProgress converts a published progress event to a DTO
func FromProgress(ev pubsub.Event[builder.Progress]) ProgressDTO {
	p := ev.Payload
	dto := ProgressDTO{
		Seq:   ev.Seq,
		At:    ev.Timestamp.Format(time.RFC3339Nano),
		Event: string(ev.Type),
		RunID: p.RunID,
		Stage: string(p.Stage),
		Step:  p.Index,
		Of:    p.Total,
	}
	if rec := p.Link; rec != nil {
		dto.Subject = rec.Subject
		dto.Output = endpoint(rec.Link.OutputNode, rec.Link.OutputPort)
		dto.Input = endpoint(rec.Link.InputNode, rec.Link.InputPort)
		dto.Outcome = string(rec.Outcome)
		dto.Reason = rec.Reason
	}
	if p.Err != nil {
		dto.Error = p.Err.Error()
	}
	return dto
}

// LogDTO is a log entry interleaved with progress lines
type LogDTO struct {
	At       string `json:"at"`
	Event    string `json:"event"`
	Level    string `json:"level"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Fields   string `json:"fields,omitempty"`
}

// FromLogEntry converts a log entry to a DTO
func FromLogEntry(e log.Entry) LogDTO {
	return LogDTO{
		At:       e.Time.Format(time.RFC3339Nano),
		Event:    "log",
		Level:    e.Level.String(),
		Category: string(e.Category),
		Message:  e.Message,
		Fields:   e.Fields,
	}
}
