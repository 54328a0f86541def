package dataset

import (
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixture(t *testing.T) {
	t.Run("heterogeneous ids", func(t *testing.T) {
		data := `
documents:
  - id: doc_0001
    title: Intro
    content: machine learning basics
queries:
  - query: what is machine learning
    relevant_ids: [doc_0001, "s3://kb/doc_0007.txt", 42]
`
		f, err := ParseFixture([]byte(data))
		require.NoError(t, err)
		require.Len(t, f.Documents, 1)

		gt := f.GroundTruth()
		assert.Equal(t, []any{"doc_0001", "s3://kb/doc_0007.txt", 42}, gt["what is machine learning"])

		c := f.Corpus()
		assert.Equal(t, ScaleFixture, c.Scale)
		assert.Equal(t, []string{"what is machine learning"}, c.Queries)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := ParseFixture([]byte("queries:\n  - query: \"\"\n"))
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("duplicate query", func(t *testing.T) {
		data := "queries:\n  - query: a\n  - query: a\n"
		_, err := ParseFixture([]byte(data))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseFixture([]byte("queries: [::"))
		assert.Error(t, err)
	})
}

func TestWriteFixture_RoundTrip(t *testing.T) {
	c, err := NewGenerator(3).Generate(ScaleTiny, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "gt.yaml")
	require.NoError(t, WriteFixture(path, NewFixture(c, false)))

	gt, err := LoadGroundTruth(path)
	require.NoError(t, err)
	assert.Len(t, gt, len(c.Truth))
	for q, ids := range c.Truth {
		assert.Equal(t, ids, gt[q])
	}
}

func TestLoadGroundTruth_MissingFile(t *testing.T) {
	_, err := LoadGroundTruth(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
