// Package metrics turns build reports into run summaries and Prometheus
// series.
package metrics

import (
	"fmt"
	"time"

	"github.com/zjrosen/pmxbuilder/internal/builder"
)

var kinds = []builder.Kind{
	builder.KindChannelStrip,
	builder.KindLooper,
	builder.KindGroupBus,
	builder.KindOutputStage,
}

var outcomes = []builder.Outcome{
	builder.OutcomeCreated,
	builder.OutcomeSkipped,
	builder.OutcomeFailed,
}

// RunSummary holds the totals of one build run.
type RunSummary struct {
	RunID  string `json:"run_id"`
	Inputs int    `json:"inputs"`

	// Entities created through the factory and registry.
	ChannelStrips int `json:"channel_strips"`
	Loopers       int `json:"loopers"`
	GroupBuses    int `json:"group_buses"`
	OutputStages  int `json:"output_stages"`

	// Link outcomes across all stages.
	LinksCreated int `json:"links_created"`
	LinksSkipped int `json:"links_skipped"`
	LinksFailed  int `json:"links_failed"`

	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Summarize collects the totals of report.
func Summarize(report *builder.Report) RunSummary {
	s := RunSummary{
		RunID:         report.RunID,
		Inputs:        report.Inputs(),
		ChannelStrips: report.Provisioned(builder.KindChannelStrip),
		Loopers:       report.Provisioned(builder.KindLooper),
		GroupBuses:    report.Provisioned(builder.KindGroupBus),
		OutputStages:  report.Provisioned(builder.KindOutputStage),
		LinksCreated:  report.Count(builder.OutcomeCreated),
		LinksSkipped:  report.Count(builder.OutcomeSkipped),
		LinksFailed:   report.Count(builder.OutcomeFailed),
		Duration:      report.Duration(),
	}
	if err := report.Err(); err != nil {
		s.Error = err.Error()
	}
	return s
}

// Attempted is the number of links the run planned.
func (s RunSummary) Attempted() int {
	return s.LinksCreated + s.LinksSkipped + s.LinksFailed
}

// SuccessRate returns the percentage of planned links that were created
// (0-100). A run that planned nothing reports 100.
func (s RunSummary) SuccessRate() float64 {
	if s.Attempted() == 0 {
		return 100
	}
	return float64(s.LinksCreated) / float64(s.Attempted()) * 100
}

// FormatLinksDisplay returns e.g. "44/46 links (1 skipped, 1 failed)".
func (s RunSummary) FormatLinksDisplay() string {
	return fmt.Sprintf("%d/%d links (%d skipped, %d failed)",
		s.LinksCreated, s.Attempted(), s.LinksSkipped, s.LinksFailed)
}

// FormatEntitiesDisplay returns e.g. "9 strips, 4 loopers, 1 output stage".
func (s RunSummary) FormatEntitiesDisplay() string {
	return fmt.Sprintf("%d strips, %d loopers, %d output stage",
		s.ChannelStrips+s.GroupBuses, s.Loopers, s.OutputStages)
}
