package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zjrosen/pmxbuilder/internal/builder"
	"github.com/zjrosen/pmxbuilder/internal/log"
)

const namespace = "pmx_builder"

// Recorder keeps the build series in a private registry so a one-shot
// process can dump them to a node_exporter textfile.
type Recorder struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	links       *prometheus.CounterVec
	provisioned *prometheus.CounterVec
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewRecorder creates a Recorder with all series registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Build runs by result.",
		}, []string{"result"}),
		links: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Link attempts by stage and outcome.",
		}, []string{"stage", "outcome"}),
		provisioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_provisioned_total",
			Help:      "Entities created by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last build run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last build run finished.",
		}),
	}
	r.registry.MustRegister(r.runs, r.links, r.provisioned, r.duration, r.lastRun)

	// Zero-initialise known label sets so absent series read as 0.
	for _, stage := range builder.StageNames() {
		for _, outcome := range outcomes {
			r.links.WithLabelValues(string(stage), string(outcome))
		}
	}
	for _, kind := range kinds {
		r.provisioned.WithLabelValues(string(kind))
	}
	return r
}

// Registry exposes the underlying gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveReport adds the totals of one run.
func (r *Recorder) ObserveReport(report *builder.Report) {
	result := "success"
	if report.Err() != nil {
		result = "error"
	}
	r.runs.WithLabelValues(result).Inc()

	for _, rec := range report.Links() {
		r.links.WithLabelValues(string(rec.Stage), string(rec.Outcome)).Inc()
	}
	for _, kind := range kinds {
		r.provisioned.WithLabelValues(string(kind)).Add(float64(report.Provisioned(kind)))
	}
	r.duration.Set(report.Duration().Seconds())
	if finished := report.FinishedAt(); !finished.IsZero() {
		r.lastRun.Set(float64(finished.Unix()))
	}
	log.Debug(log.CatMetrics, "report observed", "run_id", report.RunID, "result", result)
}

// WriteToTextfile writes all series to path in the text exposition format.
// The write is atomic.
func (r *Recorder) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	log.Info(log.CatMetrics, "metrics written", "path", path)
	return nil
}
