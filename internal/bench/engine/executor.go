// Package engine adapts services under test to a single query interface.
package engine

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
)

// Capability tags whether an executor talks to a real backend or fabricates
// its answers. Reports carry it so simulated numbers are never mistaken for
// measurements.
type Capability string

const (
	CapabilityReal      Capability = "real"
	CapabilitySimulated Capability = "simulated"
)

type Executor interface {
	Execute(ctx context.Context, query string, topK int) (*Execution, error)
	Name() string
	Capability() Capability
	Close() error
}

// Indexer is implemented by executors that can be loaded with the benchmark corpus.
type Indexer interface {
	Index(ctx context.Context, docs []dataset.Document) error
}

// Execution is one answered query. PredictedIDs keeps the identifiers exactly
// as the backend returned them, best first.
type Execution struct {
	PredictedIDs []any
	TotalMatches int64
	Latency      time.Duration
}

func stringIDs(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
