package journal

import (
	"time"

	"github.com/zjrosen/pmxbuilder/internal/builder"
)

// Run is one journaled build.
type Run struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Inputs        int
	ChannelStrips int
	Loopers       int
	GroupBuses    int
	OutputStages  int
	LinksCreated  int
	LinksSkipped  int
	LinksFailed   int
	Error         string
}

// Link is one journaled link record.
type Link struct {
	Seq int
	builder.LinkRecord
}

// runModel maps the runs table. Times are Unix milliseconds.
type runModel struct {
	ID            int64
	RunID         string
	StartedAt     int64
	FinishedAt    *int64 // nullable
	Inputs        int
	ChannelStrips int
	Loopers       int
	GroupBuses    int
	OutputStages  int
	LinksCreated  int
	LinksSkipped  int
	LinksFailed   int
	Error         *string // nullable
}

func toRunModel(report *builder.Report) *runModel {
	m := &runModel{
		RunID:         report.RunID,
		StartedAt:     report.StartedAt.UnixMilli(),
		Inputs:        report.Inputs(),
		ChannelStrips: report.Provisioned(builder.KindChannelStrip),
		Loopers:       report.Provisioned(builder.KindLooper),
		GroupBuses:    report.Provisioned(builder.KindGroupBus),
		OutputStages:  report.Provisioned(builder.KindOutputStage),
		LinksCreated:  report.Count(builder.OutcomeCreated),
		LinksSkipped:  report.Count(builder.OutcomeSkipped),
		LinksFailed:   report.Count(builder.OutcomeFailed),
	}
	if finished := report.FinishedAt(); !finished.IsZero() {
		ms := finished.UnixMilli()
		m.FinishedAt = &ms
	}
	if err := report.Err(); err != nil {
		msg := err.Error()
		m.Error = &msg
	}
	return m
}

func (m *runModel) toRun() Run {
	r := Run{
		RunID:         m.RunID,
		StartedAt:     time.UnixMilli(m.StartedAt).UTC(),
		Inputs:        m.Inputs,
		ChannelStrips: m.ChannelStrips,
		Loopers:       m.Loopers,
		GroupBuses:    m.GroupBuses,
		OutputStages:  m.OutputStages,
		LinksCreated:  m.LinksCreated,
		LinksSkipped:  m.LinksSkipped,
		LinksFailed:   m.LinksFailed,
	}
	if m.FinishedAt != nil {
		t := time.UnixMilli(*m.FinishedAt).UTC()
		r.FinishedAt = &t
	}
	if m.Error != nil {
		r.Error = *m.Error
	}
	return r
}
