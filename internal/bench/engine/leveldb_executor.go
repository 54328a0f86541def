package engine

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/leveldb"
)

// LevelDBExecutor is the embedded keyword baseline.
type LevelDBExecutor struct {
	name  string
	index *leveldb.Index
}

func NewLevelDBExecutor(name string, index *leveldb.Index) *LevelDBExecutor {
	return &LevelDBExecutor{name: name, index: index}
}

func (e *LevelDBExecutor) Execute(ctx context.Context, query string, topK int) (*Execution, error) {
	start := time.Now()
	hits, total, err := e.index.Search(ctx, query, topK)
	if err != nil {
		return nil, classify(e.name, err)
	}
	latency := time.Since(start)

	ids := make([]any, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}

	return &Execution{
		PredictedIDs: ids,
		TotalMatches: int64(total),
		Latency:      latency,
	}, nil
}

func (e *LevelDBExecutor) Index(ctx context.Context, docs []dataset.Document) error {
	return classify(e.name, e.index.Replace(ctx, docs))
}

func (e *LevelDBExecutor) Name() string           { return e.name }
func (e *LevelDBExecutor) Capability() Capability { return CapabilityReal }
func (e *LevelDBExecutor) Close() error           { return e.index.Close() }
