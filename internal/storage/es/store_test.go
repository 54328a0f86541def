package es

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	pkgtesting "github.com/DjordjeVuckovic/kb-bench/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexBuilder_MapsDocument(t *testing.T) {
	b := NewIndexBuilder()
	doc := b.mapToESDocument(dataset.Document{ID: "doc_1", Title: "T", Content: "C", Topic: "vision"})

	assert.Equal(t, "doc_1", doc.ID)
	assert.Equal(t, "vision", doc.Topic)
	assert.False(t, doc.IndexedAt.IsZero())

	mapping := b.buildMapping()
	assert.Contains(t, mapping.Properties, "title")
	assert.Contains(t, mapping.Properties, "content")
}

func TestNewStore_RequiresIndex(t *testing.T) {
	_, err := NewStore(ClientConfig{Addresses: []string{"http://localhost:9200"}})
	assert.Error(t, err)
}

func TestStore_ReplaceAndSearch(t *testing.T) {
	pkgtesting.RequireIntegration(t)

	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t, "")

	store, err := NewStore(ClientConfig{Addresses: container.Addresses(), IndexName: "kb-test"})
	require.NoError(t, err)

	docs := []dataset.Document{
		{ID: "doc_0001", Title: "Knowledge graphs", Content: "entities and relations in triples"},
		{ID: "doc_0002", Title: "Model compression", Content: "pruning and quantization"},
	}
	require.NoError(t, store.Replace(ctx, docs))

	res, err := store.Search(ctx, "quantization pruning", 5)
	require.NoError(t, err)
	require.NotEmpty(t, res.IDs)
	assert.Equal(t, "doc_0002", res.IDs[0])
	assert.EqualValues(t, 1, res.TotalMatches)
}
