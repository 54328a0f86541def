// Package runner drives adapters through the benchmark matrix and turns
// every run into an Outcome.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/cost"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/engine"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sample"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
	pkgserver "github.com/DjordjeVuckovic/kb-bench/pkg/server"
)

type Runner struct {
	config Config
	now    func() time.Time
	// retry policy; replaced in tests to avoid real sleeps
	newBackOff func() backoff.BackOff
}

type Option func(*Runner)

func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func WithBackOff(f func() backoff.BackOff) Option {
	return func(r *Runner) { r.newBackOff = f }
}

func New(cfg Config, opts ...Option) *Runner {
	cfg.normalize()
	r := &Runner{
		config: cfg,
		now:    time.Now,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll runs every job's adapters over every corpus and concurrency level.
// A failing adapter yields failed outcomes but never stops the others; only
// a canceled ctx ends the matrix early.
func (r *Runner) RunAll(
	ctx context.Context,
	bs *spec.BenchSpec,
	executors map[string]engine.Executor,
	corpora map[dataset.Scale]*dataset.Corpus,
) ([]Outcome, error) {
	var outcomes []Outcome

	for _, job := range bs.Jobs {
		for _, name := range job.Adapters {
			ex, ok := executors[name]
			if !ok {
				return outcomes, fmt.Errorf("job %q: executor %q not found", job.Name, name)
			}
			service := bs.Adapters[name].Service
			if service == "" {
				service = bs.Adapters[name].Type
			}

			for _, raw := range bs.Dataset.Scales {
				if err := ctx.Err(); err != nil {
					return outcomes, err
				}

				corpus, ok := corpora[dataset.Scale(raw)]
				if !ok {
					return outcomes, fmt.Errorf("no corpus for scale %q", raw)
				}

				outcomes = append(outcomes, r.RunAdapter(ctx, job.Name, service, ex, corpus)...)
			}
		}
	}

	return outcomes, nil
}

// RunAdapter indexes corpus into ex when it can, then runs every concurrency
// level and iteration.
func (r *Runner) RunAdapter(ctx context.Context, job, service string, ex engine.Executor, corpus *dataset.Corpus) []Outcome {
	log := slog.With("job", job, "adapter", ex.Name(), "scale", corpus.Scale)

	var indexTime time.Duration
	var setupErr error
	if hc, ok := ex.(pkgserver.HealthChecker); ok && !hc.Healthy(ctx) {
		setupErr = engine.Unavailable(ex.Name(), errors.New("health check failed"))
		log.Error("adapter unhealthy, skipping queries")
	}
	if ix, ok := ex.(engine.Indexer); ok && setupErr == nil && !r.config.SkipIndex {
		start := r.now()
		setupErr = ix.Index(ctx, corpus.Documents)
		indexTime = r.now().Sub(start)
		if setupErr != nil {
			log.Error("indexing failed", "error", setupErr)
		} else {
			log.Info("corpus indexed", "documents", len(corpus.Documents), "duration", indexTime)
		}
	}

	var outcomes []Outcome
	for _, conc := range r.config.Concurrency {
		for it := 1; it <= r.config.Iterations; it++ {
			var o Outcome
			if setupErr != nil {
				o = r.failedOutcome(ex, corpus, conc, setupErr)
			} else {
				o = r.runOnce(ctx, ex, corpus, conc)
				o.Details.IndexMs = float64(indexTime) / float64(time.Millisecond)
			}

			o.Job = job
			o.Service = service
			o.Details.Iteration = it
			o.Cost = r.config.Pricing.Estimate(service, o.Result.Throughput.TotalRequests, cost.BytesToGB(corpus.SizeBytes()))

			log.Info("run finished",
				"concurrency", conc,
				"iteration", it,
				"p95_ms", o.Result.P95(),
				"qps", o.Result.Throughput.QPS,
				"error_rate", o.Result.Throughput.ErrorRate,
			)
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

func (r *Runner) runOnce(ctx context.Context, ex engine.Executor, corpus *dataset.Corpus, concurrency int) Outcome {
	queries := corpus.Queries
	r.warmup(ctx, ex, queries)

	var limiter *rate.Limiter
	if r.config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.config.RateLimit), concurrency)
	}

	d := &dispatcher{
		runner:      r,
		ex:          ex,
		limiter:     limiter,
		recorder:    sample.NewRecorderWithClock(r.now),
		predictions: make(map[string][]any, len(queries)),
	}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	stress := r.config.Duration > 0
	expected := len(queries)

	d.recorder.Start()
	if stress {
		expected = 0
		deadline := r.now().Add(r.config.Duration)
		for w := 0; w < concurrency && len(queries) > 0; w++ {
			g.Go(func() error {
				for i := w; ctx.Err() == nil && r.now().Before(deadline); i += concurrency {
					d.dispatch(ctx, queries[i%len(queries)])
				}
				return nil
			})
		}
	} else {
		for _, q := range queries {
			g.Go(func() error {
				d.dispatch(ctx, q)
				return nil
			})
		}
	}
	_ = g.Wait()
	d.recorder.Stop()

	samples, wall := d.recorder.Drain()

	res, err := result.NewBuilder(result.Meta{
		AdapterName: ex.Name(),
		Scale:       string(corpus.Scale),
		Concurrency: concurrency,
	}, result.WithClock(r.now)).Build(result.Input{
		Samples:          samples,
		WallClock:        wall,
		Predictions:      d.predictions,
		Truth:            corpus.Truth,
		ExpectedRequests: expected,
	})
	if err != nil {
		return r.failedOutcome(ex, corpus, concurrency, err)
	}

	return Outcome{
		RunID:      uuid.New(),
		Capability: ex.Capability(),
		Result:     res,
		Details: Details{
			Documents:  len(corpus.Documents),
			Queries:    len(queries),
			Retries:    d.retries.Load(),
			StressMode: stress,
			Scores:     extendedScores(d.predictions, corpus.Truth, r.config.KValues),
		},
	}
}

func (r *Runner) warmup(ctx context.Context, ex engine.Executor, queries []string) {
	if len(queries) == 0 {
		return
	}
	for i := 0; i < r.config.Warmup && ctx.Err() == nil; i++ {
		qctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
		exe, err := ex.Execute(qctx, queries[i%len(queries)], r.config.TopK)
		cancel()
		if err != nil {
			slog.Debug("warmup request failed", "adapter", ex.Name(), "error", err)
			continue
		}
		slog.Debug("warmup request", "adapter", ex.Name(), "latency", exe.Latency)
	}
}

// failedOutcome records every query as failed with the setup error's kind,
// so the run still appears in reports with a 100% error rate.
func (r *Runner) failedOutcome(ex engine.Executor, corpus *dataset.Corpus, concurrency int, cause error) Outcome {
	kind := sample.KindOf(cause)
	if kind == sample.KindNone {
		kind = sample.KindInternal
	}

	samples := make([]sample.Sample, len(corpus.Queries))
	for i, q := range corpus.Queries {
		samples[i] = sample.Sample{Query: q, ErrorKind: kind}
	}

	res, err := result.NewBuilder(result.Meta{
		AdapterName: ex.Name(),
		Scale:       string(corpus.Scale),
		Concurrency: concurrency,
	}, result.WithClock(r.now)).Build(result.Input{Samples: samples, Truth: corpus.Truth})
	if err != nil {
		// only reachable with an unnamed adapter or concurrency < 1
		slog.Error("failed to summarize failed run", "adapter", ex.Name(), "error", err)
		res = &result.RunResult{AdapterName: ex.Name(), Scale: string(corpus.Scale), Concurrency: concurrency, Timestamp: r.now().UTC()}
	}

	return Outcome{
		RunID:      uuid.New(),
		Capability: ex.Capability(),
		Result:     res,
		Details:    Details{Documents: len(corpus.Documents), Queries: len(corpus.Queries)},
		Error:      cause.Error(),
	}
}

type dispatcher struct {
	runner   *Runner
	ex       engine.Executor
	limiter  *rate.Limiter
	recorder *sample.Recorder
	retries  atomic.Int64

	mu          sync.Mutex
	predictions map[string][]any
}

// dispatch sends one query, retrying retryable failures, and records exactly
// one sample for it.
func (d *dispatcher) dispatch(ctx context.Context, query string) {
	cfg := d.runner.config

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			d.recorder.Record(sample.Sample{Query: query, ErrorKind: kindOrCanceled(ctx, err)})
			return
		}
	}

	attempt := 0
	// duration of the latest attempt only; backoff sleeps are not service latency
	var lastAttempt time.Duration
	op := func() (*engine.Execution, error) {
		if attempt > 0 {
			d.retries.Add(1)
		}
		attempt++

		qctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		attemptStart := d.runner.now()
		exe, err := d.ex.Execute(qctx, query, cfg.TopK)
		lastAttempt = d.runner.now().Sub(attemptStart)
		if err != nil {
			if !sample.KindOf(err).Retryable() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return exe, nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(d.runner.newBackOff(), uint64(cfg.Retries)), ctx)

	start := d.runner.now()
	exe, err := backoff.RetryWithData(op, policy)
	elapsed := d.runner.now().Sub(start)

	if err != nil {
		d.recorder.Record(sample.Sample{
			Query:     query,
			LatencyMs: ms(elapsed),
			ErrorKind: kindOrCanceled(ctx, err),
		})
		return
	}

	d.recorder.Record(sample.Sample{
		Query:        query,
		LatencyMs:    ms(lastAttempt),
		Success:      true,
		PredictedIDs: exe.PredictedIDs,
	})

	d.mu.Lock()
	d.predictions[query] = exe.PredictedIDs
	d.mu.Unlock()
}

func kindOrCanceled(ctx context.Context, err error) sample.ErrorKind {
	if errors.Is(ctx.Err(), context.Canceled) {
		return sample.KindCanceled
	}
	if kind := sample.KindOf(err); kind != sample.KindNone {
		return kind
	}
	return sample.KindInternal
}

func ms(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
