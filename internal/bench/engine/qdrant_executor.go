package engine

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/vector"
)

// QdrantExecutor is the dense-retrieval baseline. Its latency includes
// embedding the query, as a vendor's would.
type QdrantExecutor struct {
	name  string
	store *vector.Store
}

func NewQdrantExecutor(name string, store *vector.Store) *QdrantExecutor {
	return &QdrantExecutor{name: name, store: store}
}

func (e *QdrantExecutor) Execute(ctx context.Context, query string, topK int) (*Execution, error) {
	start := time.Now()
	hits, err := e.store.Search(ctx, query, topK)
	if err != nil {
		return nil, classify(e.name, err)
	}
	latency := time.Since(start)

	ids := make([]any, len(hits))
	for i, h := range hits {
		ids[i] = h.DocID
	}

	return &Execution{
		PredictedIDs: ids,
		TotalMatches: int64(len(hits)),
		Latency:      latency,
	}, nil
}

func (e *QdrantExecutor) Index(ctx context.Context, docs []dataset.Document) error {
	return classify(e.name, e.store.Replace(ctx, docs))
}

func (e *QdrantExecutor) Name() string           { return e.name }
func (e *QdrantExecutor) Capability() Capability { return CapabilityReal }
func (e *QdrantExecutor) Close() error           { return e.store.Close() }
