package builder

import (
	"sync"
	"time"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

// Outcome is the result of one attempted connection.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Kind names a provisioned entity kind.
type Kind string

const (
	KindChannelStrip Kind = "channel_strip"
	KindLooper       Kind = "looper"
	KindGroupBus     Kind = "group_bus"
	KindOutputStage  Kind = "output_stage"
)

// LinkRecord is one connection the run attempted or skipped. Link is only
// partially filled when resolution failed before both endpoints were known.
type LinkRecord struct {
	Stage   StageName
	Subject string
	Link    pmx.Link
	Outcome Outcome
	Reason  string
}

// Report summarizes one run. It is safe for concurrent use.
type Report struct {
	RunID     string
	StartedAt time.Time

	mu          sync.Mutex
	finishedAt  time.Time
	err         error
	inputs      int
	provisioned map[Kind]int
	links       []LinkRecord

	onRecord func(LinkRecord) // called outside mu
}

func newReport(runID string, startedAt time.Time) *Report {
	return &Report{
		RunID:       runID,
		StartedAt:   startedAt,
		provisioned: make(map[Kind]int),
	}
}

func (r *Report) setInputs(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = n
}

func (r *Report) addProvisioned(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provisioned[kind]++
}

func (r *Report) record(rec LinkRecord) {
	r.mu.Lock()
	r.links = append(r.links, rec)
	r.mu.Unlock()
	if r.onRecord != nil {
		r.onRecord(rec)
	}
}

func (r *Report) finish(at time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishedAt = at
	r.err = err
}

// Inputs returns the number of discovered inputs.
func (r *Report) Inputs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inputs
}

// Provisioned returns how many entities of a kind the run created.
func (r *Report) Provisioned(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.provisioned[kind]
}

// Links returns a copy of every link record in the order they were made.
func (r *Report) Links() []LinkRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LinkRecord, len(r.links))
	copy(out, r.links)
	return out
}

// LinksFor returns the records of a single stage.
func (r *Report) LinksFor(stage StageName) []LinkRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []LinkRecord
	for _, rec := range r.links {
		if rec.Stage == stage {
			out = append(out, rec)
		}
	}
	return out
}

// Count returns the number of records with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.links {
		if rec.Outcome == outcome {
			n++
		}
	}
	return n
}

// FinishedAt is zero until the run returns.
func (r *Report) FinishedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finishedAt
}

// Duration is the wall time of a finished run.
func (r *Report) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finishedAt.IsZero() {
		return 0
	}
	return r.finishedAt.Sub(r.StartedAt)
}

// Err is the error that ended the run, if any.
func (r *Report) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
