package result

import (
	"fmt"
	"math"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sample"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/stats"
)

// Meta identifies the run being summarized.
type Meta struct {
	AdapterName string
	Scale       string
	Concurrency int
}

// Input is everything collected during one run.
type Input struct {
	Samples   []sample.Sample
	WallClock time.Duration
	// Predictions holds the ranked ids returned per query.
	Predictions map[string][]any
	Truth       dataset.GroundTruth
	// ExpectedRequests is the number of requests the orchestrator dispatched.
	// Zero skips the count check, as in duration-bound stress runs.
	ExpectedRequests int
}

type Builder struct {
	meta Meta
	now  func() time.Time
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBuilder(meta Meta, opts ...Option) *Builder {
	b := &Builder{meta: meta, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates the input and composes the run result. Degenerate runs
// (all requests failed, no ground truth, zero wall clock) are not errors.
func (b *Builder) Build(in Input) (*RunResult, error) {
	if err := b.validate(in); err != nil {
		return nil, err
	}

	lat, tp := stats.Aggregate(in.Samples, in.WallClock)
	quality, _ := metrics.Score(in.Predictions, in.Truth)

	return &RunResult{
		LatencyPercentiles: lat.Summary(),
		Throughput:         tp,
		Quality:            quality,
		AdapterName:        b.meta.AdapterName,
		Scale:              b.meta.Scale,
		Concurrency:        b.meta.Concurrency,
		Timestamp:          b.now().UTC(),
	}, nil
}

func (b *Builder) validate(in Input) error {
	if b.meta.AdapterName == "" {
		return apperr.NewFieldValidation("adapter_name", "must not be empty")
	}
	if b.meta.Concurrency < 1 {
		return apperr.NewFieldValidation("concurrency", "must be at least 1")
	}
	if in.ExpectedRequests > 0 && in.ExpectedRequests != len(in.Samples) {
		return apperr.NewFieldValidation("samples",
			fmt.Sprintf("recorded %d samples but %d requests were dispatched", len(in.Samples), in.ExpectedRequests))
	}

	for i, s := range in.Samples {
		if math.IsNaN(s.LatencyMs) || math.IsInf(s.LatencyMs, 0) || s.LatencyMs < 0 {
			return apperr.NewFieldValidation(fmt.Sprintf("samples[%d].latency_ms", i),
				fmt.Sprintf("must be a non-negative number, got %v", s.LatencyMs))
		}
		if s.Success && s.ErrorKind != sample.KindNone {
			return apperr.NewFieldValidation(fmt.Sprintf("samples[%d].error_kind", i),
				fmt.Sprintf("successful sample carries error kind %q", s.ErrorKind))
		}
	}

	return nil
}
