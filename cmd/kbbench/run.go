package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/engine"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/history"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sink"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
)

type runFlags struct {
	specPath string
	output   string
	simulate bool
	noTable  bool
}

func (a *app) runCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every job in a bench spec and write a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.run(ctx, cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.specPath, "spec", "f", "bench.yaml", "path to bench spec YAML")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "report path (default <report dir>/kbbench-<timestamp>.json)")
	cmd.Flags().BoolVar(&f.simulate, "simulate", false, "replace every adapter with a simulated in-memory backend")
	cmd.Flags().BoolVar(&f.noTable, "no-table", false, "skip the comparison table on stdout")
	return cmd
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, f runFlags) error {
	bs, err := spec.LoadFromFile(f.specPath)
	if err != nil {
		return err
	}

	corpora, err := runner.LoadCorpora(bs.Dataset)
	if err != nil {
		return err
	}

	executors, cleanup, err := engine.CreateFromSpec(ctx, bs.Adapters, engine.Config{
		Embedding: a.cfg.Embedding,
		Simulate:  f.simulate,
	})
	if err != nil {
		return fmt.Errorf("create executors: %w", err)
	}
	defer cleanup()

	out, closeSink, err := a.sink()
	if err != nil {
		return err
	}
	defer closeSink()

	started := time.Now()
	slog.Info("benchmark started", "spec", f.specPath, "jobs", len(bs.Jobs), "adapters", len(executors))

	outcomes, runErr := runner.New(runner.ConfigFromSpec(bs)).RunAll(ctx, bs, executors, corpora)
	if runErr != nil {
		slog.Warn("benchmark interrupted, reporting partial results", "error", runErr)
	}

	// Publishing and history use a fresh context so an interrupt still persists partial results.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	for _, o := range outcomes {
		if err := out.Publish(persistCtx, o); err != nil {
			slog.Error("failed to publish outcome", "run_id", o.RunID, "error", err)
		}
	}
	a.recordHistory(persistCtx, outcomes)

	rep := report.Generate(bs, outcomes, corpora, started)
	path := f.output
	if path == "" {
		path = filepath.Join(a.cfg.ReportDir, report.FileName(started))
	}
	if err := report.WriteJSON(rep, path); err != nil {
		return err
	}
	slog.Info("report written", "path", path, "outcomes", len(outcomes), "elapsed", time.Since(started).Round(time.Millisecond))

	if !f.noTable {
		report.WriteTable(rep, cmd.OutOrStdout())
	}
	return runErr
}

func (a *app) sink() (sink.Sink, func(), error) {
	sinks := sink.Multi{sink.Log{Logger: slog.Default()}}

	if len(a.cfg.KafkaBrokers) > 0 {
		k, err := sink.NewKafkaSink(sink.KafkaConfig{
			Brokers: a.cfg.KafkaBrokers,
			Topic:   a.cfg.KafkaTopic,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create kafka sink: %w", err)
		}
		sinks = append(sinks, k)
	}

	return sinks, func() {
		if err := sinks.Close(); err != nil {
			slog.Error("failed to close sinks", "error", err)
		}
	}, nil
}

func (a *app) recordHistory(ctx context.Context, outcomes []runner.Outcome) {
	if a.cfg.RedisURL == "" || len(outcomes) == 0 {
		return
	}

	store, err := history.NewRedisStore(ctx, a.cfg.RedisURL)
	if err != nil {
		slog.Error("history store unavailable", "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, outcomes); err != nil {
		slog.Error("failed to record history", "error", err)
	}
}
