package leveldb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docs = []dataset.Document{
	{ID: "doc_a", Title: "Reinforcement learning", Content: "An agent maximizes reward through a policy."},
	{ID: "doc_b", Title: "Computer vision", Content: "Detection and segmentation of pixels in images."},
	{ID: "doc_c", Title: "Policy search", Content: "Policy gradients update the policy of the agent from reward."},
}

func TestIndex_Search(t *testing.T) {
	idx, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	ctx := context.Background()
	require.NoError(t, idx.Replace(ctx, docs))

	hits, total, err := idx.Search(ctx, "policy for agents", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, hits, 2)
	// doc_c repeats "policy" three times
	assert.Equal(t, "doc_c", hits[0].ID)
	assert.Equal(t, "doc_a", hits[1].ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)

	hits, total, err = idx.Search(ctx, "policy agent", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, hits, 1)

	hits, total, err = idx.Search(ctx, "the of and", 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, hits)
}

func TestIndex_ReplaceWipesPrevious(t *testing.T) {
	idx, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	ctx := context.Background()
	require.NoError(t, idx.Replace(ctx, docs))
	require.NoError(t, idx.Replace(ctx, docs[1:2]))

	hits, _, err := idx.Search(ctx, "policy", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, _, err = idx.Search(ctx, "segmentation", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "doc_b", hits[0].ID)
}

func TestIndex_EmptySearch(t *testing.T) {
	idx, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	hits, total, err := idx.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Nil(t, hits)
}

func TestOpen_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.ldb")
	ctx := context.Background()

	idx, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, idx.Replace(ctx, docs))
	require.NoError(t, idx.Close())

	idx, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	hits, _, err := idx.Search(ctx, "pixels", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "doc_b", hits[0].ID)
}
