package engine

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/pg"
)

// PgExecutor is the Postgres full-text baseline.
type PgExecutor struct {
	name   string
	pool   *pg.ConnectionPool
	store  *pg.DocumentStore
	health *pg.HealthChecker
}

func NewPgExecutor(name string, pool *pg.ConnectionPool, table string) *PgExecutor {
	return &PgExecutor{
		name:   name,
		pool:   pool,
		store:  pg.NewDocumentStore(pool, table),
		health: pg.NewHealthChecker(pool),
	}
}

func (e *PgExecutor) Execute(ctx context.Context, query string, topK int) (*Execution, error) {
	start := time.Now()
	hits, err := e.store.Search(ctx, query, topK)
	if err != nil {
		return nil, classify(e.name, err)
	}
	latency := time.Since(start)

	ids := make([]any, len(hits))
	var total int64
	for i, h := range hits {
		ids[i] = h.ID
		total = h.Total
	}

	return &Execution{
		PredictedIDs: ids,
		TotalMatches: total,
		Latency:      latency,
	}, nil
}

func (e *PgExecutor) Index(ctx context.Context, docs []dataset.Document) error {
	if err := e.store.EnsureSchema(ctx); err != nil {
		return classify(e.name, err)
	}
	return classify(e.name, e.store.Replace(ctx, docs))
}

// Healthy pings the pool before a run so an unreachable database fails fast.
func (e *PgExecutor) Healthy(ctx context.Context) bool {
	return e.health.Healthy(ctx)
}

func (e *PgExecutor) Name() string           { return e.name }
func (e *PgExecutor) Capability() Capability { return CapabilityReal }

func (e *PgExecutor) Close() error {
	e.pool.Close()
	return nil
}
