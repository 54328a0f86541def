// Package vector is the dense-retrieval baseline: documents are embedded and
// stored in Qdrant, queries are embedded and answered by nearest neighbours.
package vector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
)

const (
	DefaultHost       = "localhost"
	DefaultPort       = 6334
	DefaultTimeout    = 30 * time.Second
	upsertBatchSize   = 256
	payloadDocID      = "doc_id"
	payloadDocTitle   = "title"
	defaultCollection = "kb_bench"
)

// pointNamespace derives stable point ids from document ids, which Qdrant
// would otherwise reject unless they are UUIDs or integers.
var pointNamespace = uuid.MustParse("8c0f3c1e-4a59-4b8e-9d7e-2f1b6c3a9e41")

type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	Timeout    time.Duration
}

// Embedder turns text into dense vectors.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type Store struct {
	client     *qdrant.Client
	collection string
	timeout    time.Duration
	embedder   Embedder
}

type SearchHit struct {
	DocID string
	Score float32
}

func NewStore(cfg Config, embedder Embedder) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}
	if embedder == nil {
		return nil, fmt.Errorf("vector store requires an embedder")
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Store{
		client:     client,
		collection: cfg.Collection,
		timeout:    cfg.Timeout,
		embedder:   embedder,
	}, nil
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQueryDense(vec),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	hits := make([]SearchHit, 0, len(points))
	for _, p := range points {
		hits = append(hits, SearchHit{
			DocID: docIDOf(p),
			Score: p.GetScore(),
		})
	}
	return hits, nil
}

// Replace drops the collection, recreates it sized to the embedding model and
// upserts every document.
func (s *Store) Replace(ctx context.Context, docs []dataset.Document) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout*time.Duration(1+len(docs)/upsertBatchSize))
	defer cancel()

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	}

	if len(docs) == 0 {
		return nil
	}

	created := false
	for start := 0; start < len(docs); start += upsertBatchSize {
		batch := docs[start:min(start+upsertBatchSize, len(docs))]

		texts := make([]string, len(batch))
		for i, d := range batch {
			texts[i] = d.Title + "\n" + d.Content
		}

		vecs, err := s.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed documents: %w", err)
		}
		if len(vecs) != len(batch) {
			return fmt.Errorf("expected %d embeddings, got %d", len(batch), len(vecs))
		}

		if !created {
			if err := s.createCollection(ctx, len(vecs[0])); err != nil {
				return err
			}
			created = true
		}

		points := make([]*qdrant.PointStruct, len(batch))
		for i, d := range batch {
			points[i] = &qdrant.PointStruct{
				Id:      qdrant.NewIDUUID(PointID(d.ID)),
				Vectors: qdrant.NewVectorsDense(vecs[i]),
				Payload: qdrant.NewValueMap(map[string]any{
					payloadDocID:    d.ID,
					payloadDocTitle: d.Title,
				}),
			}
		}

		if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Points:         points,
			Wait:           qdrant.PtrOf(true),
		}); err != nil {
			return fmt.Errorf("failed to upsert points: %w", err)
		}
	}

	slog.Info("vector collection loaded", "collection", s.collection, "points", len(docs))
	return nil
}

func (s *Store) createCollection(ctx context.Context, dim int) error {
	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}
	return nil
}

func (s *Store) Healthy(ctx context.Context) bool {
	_, err := s.client.HealthCheck(ctx)
	return err == nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// PointID maps a document id to the UUID its point is stored under.
func PointID(docID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(docID)).String()
}

// docIDOf prefers the original document id from the payload and falls back
// to the point id.
func docIDOf(p *qdrant.ScoredPoint) string {
	if v, ok := p.GetPayload()[payloadDocID]; ok {
		if sv, ok := v.Kind.(*qdrant.Value_StringValue); ok {
			return sv.StringValue
		}
	}

	switch id := p.GetId().GetPointIdOptions().(type) {
	case *qdrant.PointId_Uuid:
		return id.Uuid
	case *qdrant.PointId_Num:
		return fmt.Sprint(id.Num)
	}
	return ""
}
