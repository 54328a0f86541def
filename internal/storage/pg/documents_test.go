package pg

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	pkgtesting "github.com/DjordjeVuckovic/kb-bench/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_ReplaceAndSearch(t *testing.T) {
	pkgtesting.RequireIntegration(t)

	ctx := context.Background()
	container := pkgtesting.NewPGContainerWithCleanup(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := NewDocumentStore(pool, "kb_docs_test")

	docs := []dataset.Document{
		{ID: "doc_0001", Title: "Reinforcement learning", Content: "agents learn a policy from reward"},
		{ID: "doc_0002", Title: "Computer vision", Content: "segmentation and detection in images"},
		{ID: "doc_0003", Title: "Policy gradients", Content: "reward driven policy optimization for agents"},
	}
	require.NoError(t, store.Replace(ctx, docs))

	hits, err := store.Search(ctx, "agent reward policy", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.EqualValues(t, 2, hits[0].Total)

	ids := []string{hits[0].ID, hits[1].ID}
	assert.ElementsMatch(t, []string{"doc_0001", "doc_0003"}, ids)

	t.Run("replace drops previous rows", func(t *testing.T) {
		require.NoError(t, store.Replace(ctx, docs[1:2]))
		hits, err := store.Search(ctx, "policy", 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, pool.Ping(ctx))
	})
}
