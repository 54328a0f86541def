package engine

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/es"
)

// EsExecutor runs multi_match queries against an Elasticsearch or
// OpenSearch compatible cluster.
type EsExecutor struct {
	name  string
	store *es.Store
}

func NewEsExecutor(name string, store *es.Store) *EsExecutor {
	return &EsExecutor{name: name, store: store}
}

func (e *EsExecutor) Execute(ctx context.Context, query string, topK int) (*Execution, error) {
	start := time.Now()
	res, err := e.store.Search(ctx, query, topK)
	if err != nil {
		return nil, classify(e.name, err)
	}

	return &Execution{
		PredictedIDs: stringIDs(res.IDs),
		TotalMatches: res.TotalMatches,
		Latency:      time.Since(start),
	}, nil
}

func (e *EsExecutor) Index(ctx context.Context, docs []dataset.Document) error {
	return classify(e.name, e.store.Replace(ctx, docs))
}

func (e *EsExecutor) Name() string           { return e.name }
func (e *EsExecutor) Capability() Capability { return CapabilityReal }
func (e *EsExecutor) Close() error           { return nil }
