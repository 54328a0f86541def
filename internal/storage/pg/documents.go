package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
)

// DocumentStore keeps benchmark documents in a table with a generated
// tsvector column and serves ranked full-text queries over it.
type DocumentStore struct {
	pool  *ConnectionPool
	table pgx.Identifier
}

func NewDocumentStore(pool *ConnectionPool, table string) *DocumentStore {
	if table == "" {
		table = "kb_documents"
	}
	return &DocumentStore{pool: pool, table: pgx.Identifier{table}}
}

type Hit struct {
	ID    string
	Rank  float32
	Total int64
}

func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	t := s.table.Sanitize()
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			search_vector tsvector GENERATED ALWAYS AS (
				setweight(to_tsvector('english', coalesce(title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(content, '')), 'B')
			) STORED
		)`, t),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (search_vector)`,
			pgx.Identifier{s.table[0] + "_search_idx"}.Sanitize(), t),
	}

	for _, stmt := range stmts {
		if _, err := s.pool.GetConn().Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema for %s: %w", t, err)
		}
	}
	return nil
}

// Replace truncates the table and bulk loads docs with COPY.
func (s *DocumentStore) Replace(ctx context.Context, docs []dataset.Document) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := s.pool.GetConn().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, "TRUNCATE "+s.table.Sanitize()); err != nil {
		return fmt.Errorf("truncate documents: %w", err)
	}

	rows := make([][]interface{}, len(docs))
	for i, d := range docs {
		rows[i] = []interface{}{d.ID, d.Title, d.Content}
	}

	n, err := tx.CopyFrom(ctx, s.table, []string{"id", "title", "content"}, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to bulk insert documents: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit documents: %w", err)
	}

	slog.Info("documents loaded", "table", s.table.Sanitize(), "count", n)
	return nil
}

// Search returns up to limit ids ranked by ts_rank, with the total match count.
func (s *DocumentStore) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	sql := fmt.Sprintf(`
		SELECT id, ts_rank(search_vector, q) AS rank, count(*) OVER () AS total
		FROM %s, plainto_tsquery('english', $1) AS q
		WHERE search_vector @@ q
		ORDER BY rank DESC, id
		LIMIT $2`, s.table.Sanitize())

	rows, err := s.pool.GetConn().Query(ctx, sql, query, limit)
	if err != nil {
		return nil, err
	}

	hits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Hit, error) {
		var h Hit
		err := row.Scan(&h.ID, &h.Rank, &h.Total)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan search rows: %w", err)
	}

	return hits, nil
}
