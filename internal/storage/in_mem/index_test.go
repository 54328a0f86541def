package in_mem

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Search(t *testing.T) {
	idx := NewIndex()
	require.NoError(t, idx.Replace(context.Background(), []dataset.Document{
		{ID: "doc_a", Title: "Databases", Content: "Indexes speed up queries on tables."},
		{ID: "doc_b", Title: "Query planning", Content: "The planner picks an index for each query."},
		{ID: "doc_c", Title: "Networking", Content: "Packets travel between routers."},
	}))

	assert.Equal(t, 3, idx.Len())

	ids, total := idx.Search("query index", 10)
	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{"doc_a", "doc_b"}, ids)
	assert.Equal(t, "doc_b", ids[0])

	ids, total = idx.Search("routers", 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"doc_c"}, ids)

	ids, total = idx.Search("quantum", 10)
	assert.Zero(t, total)
	assert.Empty(t, ids)
}

func TestIndex_Empty(t *testing.T) {
	ids, total := NewIndex().Search("anything", 5)
	assert.Nil(t, ids)
	assert.Zero(t, total)
}

func TestIndex_ReplaceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := NewIndex()
	err := idx.Replace(ctx, []dataset.Document{{ID: "x", Content: "y"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, idx.Len())
}
