package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
)

// DefaultSearchFields weights titles above bodies.
var DefaultSearchFields = []string{"title^2", "content"}

// Store indexes benchmark documents and runs BM25 multi_match queries.
type Store struct {
	client       *elasticsearch.TypedClient
	indexName    string
	fields       []string
	indexBuilder *IndexBuilder
}

type SearchResult struct {
	IDs          []string
	TotalMatches int64
}

func NewStore(config ClientConfig, fields ...string) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	if config.IndexName == "" {
		return nil, fmt.Errorf("elasticsearch index name is required")
	}
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}

	return &Store{
		client:       client,
		indexName:    config.IndexName,
		fields:       fields,
		indexBuilder: NewIndexBuilder(),
	}, nil
}

func (s *Store) Search(ctx context.Context, query string, size int) (*SearchResult, error) {
	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  query,
				Fields: s.fields,
			},
		}).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	out := &SearchResult{IDs: make([]string, 0, len(res.Hits.Hits))}
	if res.Hits.Total != nil {
		out.TotalMatches = res.Hits.Total.Value
	}

	for _, hit := range res.Hits.Hits {
		var doc KBDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		out.IDs = append(out.IDs, doc.ID)
	}

	return out, nil
}

// Replace recreates the index and bulk loads docs, refreshing so they are searchable.
func (s *Store) Replace(ctx context.Context, docs []dataset.Document) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		if _, err := s.client.Indices.Delete(s.indexName).Do(ctx); err != nil {
			return fmt.Errorf("failed to delete index: %w", err)
		}
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return err
	}
	if err := s.bulkIndex(ctx, docs); err != nil {
		return err
	}

	if _, err := s.client.Indices.Refresh().Index(s.indexName).Do(ctx); err != nil {
		return fmt.Errorf("failed to refresh index: %w", err)
	}
	return nil
}

func (s *Store) EnsureIndex(ctx context.Context) error {
	existsRes, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	settings := s.indexBuilder.buildSettings()
	mappings := s.indexBuilder.buildMapping()

	createRes, err := s.client.Indices.Create(s.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName)
	return nil
}

func (s *Store) bulkIndex(ctx context.Context, docs []dataset.Document) error {
	if len(docs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64

	for _, d := range docs {
		doc := s.indexBuilder.mapToESDocument(d)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed.Add(1)
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: doc.ID,
				Body:       bytes.NewReader(docBytes),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					successful.Add(1)
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed.Add(1)
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", len(docs),
		"index", s.indexName)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d documents", n, len(docs))
	}

	return nil
}
