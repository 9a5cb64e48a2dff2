package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"

	"github.com/zjrosen/pmxbuilder/internal/builder"
	"github.com/zjrosen/pmxbuilder/internal/config"
	"github.com/zjrosen/pmxbuilder/internal/flags"
	"github.com/zjrosen/pmxbuilder/internal/journal"
	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/metrics"
	"github.com/zjrosen/pmxbuilder/internal/pmx/rpc"
	"github.com/zjrosen/pmxbuilder/internal/presentation"
	"github.com/zjrosen/pmxbuilder/internal/pubsub"
	"github.com/zjrosen/pmxbuilder/internal/tracing"
)

const progressBuffer = 1024

// buildEnv is everything one build invocation needs.
type buildEnv struct {
	cfg      config.Config
	flags    *flags.Registry
	tracer   trace.Tracer // nil disables tracing
	services builder.Services
	out      io.Writer
	progress io.Writer // nil disables streaming
}

func newTracingProvider(tc config.TracingConfig) (*tracing.Provider, error) {
	return tracing.NewProvider(tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     tc.FilePath,
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
}

// dialServices creates one client connection per service. The returned
// func closes all of them.
func dialServices(sc config.ServicesConfig, tracer trace.Tracer) (builder.Services, func(), error) {
	var conns []*grpc.ClientConn
	closeAll := func() {
		for _, c := range conns {
			_ = c.Close()
		}
	}

	dial := func(url string) (*grpc.ClientConn, error) {
		conn, err := rpc.Dial(url, grpc.WithUnaryInterceptor(tracing.UnaryClientInterceptor(tracer)))
		if err != nil {
			return nil, err
		}
		conns = append(conns, conn)
		return conn, nil
	}

	registryConn, err := dial(sc.RegistryURL)
	if err != nil {
		return builder.Services{}, nil, fmt.Errorf("registry: %w", err)
	}
	factoryConn, err := dial(sc.FactoryURL)
	if err != nil {
		closeAll()
		return builder.Services{}, nil, fmt.Errorf("factory: %w", err)
	}
	graphConn, err := dial(sc.PipewireURL)
	if err != nil {
		closeAll()
		return builder.Services{}, nil, fmt.Errorf("pipewire: %w", err)
	}

	return builder.Services{
		Registry: rpc.NewRegistryClient(registryConn, sc.CallTimeout),
		Factory:  rpc.NewFactoryClient(factoryConn, sc.CallTimeout),
		Graph:    rpc.NewGraphClient(graphConn, sc.CallTimeout),
	}, closeAll, nil
}

// executeBuild runs the pipeline once, then exports metrics, journals the
// run and prints the summary. Export failures are logged and do not change
// the result of the run.
func executeBuild(ctx context.Context, env buildEnv) (*builder.Report, error) {
	middleware := []builder.Middleware{builder.NewLoggingMiddleware()}
	middleware = append(middleware, tracing.NewTracingMiddleware(tracing.TracingMiddlewareConfig{Tracer: env.tracer}))

	opts := builder.Options{
		ConcurrentWiring: env.flags.Enabled(flags.FlagConcurrentWiring),
		MaxParallel:      env.cfg.Build.MaxParallel,
		CacheSnapshots:   env.cfg.Build.SnapshotCache,
		Strict:           env.cfg.Build.Strict,
		Middleware:       middleware,
	}
	if env.progress != nil {
		stop := streamProgress(env.progress, &opts)
		defer stop()
	}

	ctx, span := tracing.StartRun(ctx, env.tracer)
	report, runErr := builder.New(env.services, opts).Run(ctx)
	tracing.EndRun(span, report, runErr)

	if path := env.cfg.Metrics.TextfilePath; path != "" {
		rec := metrics.NewRecorder()
		rec.ObserveReport(report)
		if err := rec.WriteToTextfile(path); err != nil {
			log.ErrorErr(log.CatMetrics, "Writing metrics textfile failed", err, "path", path)
		}
	}

	if env.cfg.Journal.Enabled {
		if err := saveToJournal(ctx, env, report); err != nil {
			log.ErrorErr(log.CatJournal, "Journaling run failed", err, "run_id", report.RunID)
		}
	}

	summary := metrics.Summarize(report)
	if err := presentation.NewFormatter(env.out).FormatBuildResult(presentation.FromSummary(summary)); err != nil {
		return report, errors.Join(runErr, err)
	}
	return report, runErr
}

func saveToJournal(ctx context.Context, env buildEnv, report *builder.Report) error {
	db, err := journal.Open(env.cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	// A canceled build is still journaled.
	return db.Save(context.WithoutCancel(ctx), report, env.flags.Enabled(flags.FlagJournalLinks))
}

// streamProgress publishes the run's progress to w as JSON lines, together
// with the warnings and errors logged while it runs. The returned func
// flushes what is buffered and must be called once the run has returned.
func streamProgress(w io.Writer, opts *builder.Options) func() {
	broker := pubsub.NewBroker[builder.Progress](pubsub.WithBuffer(progressBuffer))
	events := broker.Subscribe(context.Background())
	logCtx, stopLogs := context.WithCancel(context.Background())
	logs := log.NewListener(logCtx)
	formatter := presentation.NewFormatter(w)

	// Write errors are reported after the stream ends; logging them from
	// here would feed the stream itself.
	var writeErr error
	write := func(fn func() error) {
		if writeErr == nil {
			writeErr = fn()
		}
	}
	writeEntry := func(ev log.LogEvent) {
		if ev.Payload.Level >= log.LevelWarn {
			write(func() error { return formatter.FormatLogEntry(presentation.FromLogEntry(ev.Payload)) })
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					for _, entry := range logs.Drain() {
						writeEntry(entry)
					}
					return
				}
				write(func() error { return formatter.FormatProgress(presentation.FromProgress(ev)) })
			case entry, ok := <-logs.C():
				if !ok {
					logs = nil
					continue
				}
				writeEntry(entry)
			}
		}
	}()

	opts.Progress = broker
	return func() {
		broker.Close()
		<-done
		stopLogs()
		if writeErr != nil {
			log.ErrorErr(log.CatBuild, "Writing progress failed", writeErr)
		}
		if n := broker.Dropped(); n > 0 {
			log.Warn(log.CatBuild, "Progress events dropped", "count", n)
		}
	}
}
