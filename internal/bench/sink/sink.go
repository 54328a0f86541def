// Package sink publishes run outcomes to external consumers as they finish.
package sink

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/runner"
)

type Sink interface {
	Publish(ctx context.Context, o runner.Outcome) error
	Close() error
}

// Multi fans out to every sink; one failing sink does not starve the others.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, o runner.Outcome) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes a one-line summary of each outcome.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Publish(_ context.Context, o runner.Outcome) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if o.Result == nil {
		return nil
	}
	logger.Info("outcome",
		"run_id", o.RunID,
		"adapter", o.Result.AdapterName,
		"scale", o.Result.Scale,
		"concurrency", o.Result.Concurrency,
		"p95_ms", o.Result.P95(),
		"qps", o.Result.Throughput.QPS,
		"error_rate", o.Result.Throughput.ErrorRate,
	)
	return nil
}

func (Log) Close() error { return nil }
