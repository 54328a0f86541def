package engine

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/in_mem"
)

// SimulationConfig shapes the fabricated latency and failures of a MemoryExecutor.
type SimulationConfig struct {
	BaseLatency time.Duration
	Jitter      time.Duration
	FailureRate float64
	Seed        int64
}

// MemoryExecutor answers from an in-process keyword index and reports
// simulated latency. It stands in for vendors without credentials.
type MemoryExecutor struct {
	name  string
	index *in_mem.Index
	sim   SimulationConfig

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMemoryExecutor(name string, sim SimulationConfig) *MemoryExecutor {
	return &MemoryExecutor{
		name:  name,
		index: in_mem.NewIndex(),
		sim:   sim,
		rng:   rand.New(rand.NewSource(sim.Seed)),
	}
}

func (e *MemoryExecutor) Execute(ctx context.Context, query string, topK int) (*Execution, error) {
	delay, fail := e.draw()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	if fail {
		return nil, &StatusError{Adapter: e.name, Status: http.StatusServiceUnavailable, Body: "simulated failure"}
	}

	ids, total := e.index.Search(query, topK)
	return &Execution{
		PredictedIDs: stringIDs(ids),
		TotalMatches: int64(total),
		Latency:      delay,
	}, nil
}

func (e *MemoryExecutor) draw() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delay := e.sim.BaseLatency
	if e.sim.Jitter > 0 {
		delay += time.Duration(e.rng.Int63n(int64(e.sim.Jitter) + 1))
	}
	fail := e.sim.FailureRate > 0 && e.rng.Float64() < e.sim.FailureRate
	return delay, fail
}

func (e *MemoryExecutor) Index(ctx context.Context, docs []dataset.Document) error {
	return e.index.Replace(ctx, docs)
}

func (e *MemoryExecutor) Name() string           { return e.name }
func (e *MemoryExecutor) Capability() Capability { return CapabilitySimulated }
func (e *MemoryExecutor) Close() error           { return nil }
