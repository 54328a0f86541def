package metrics

import (
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_Absent(t *testing.T) {
	q, ok := Score(map[string][]any{"q": {"a"}}, nil)
	assert.False(t, ok)
	assert.Nil(t, q)

	q, ok = Score(nil, dataset.GroundTruth{})
	assert.False(t, ok)
	assert.Nil(t, q)
}

func TestScore_AllMiss(t *testing.T) {
	q, ok := Score(
		map[string][]any{"q1": {"x", "y"}, "q2": {}},
		dataset.GroundTruth{"q1": {"a"}, "q2": {"b"}},
	)

	require.True(t, ok)
	require.NotNil(t, q)
	assert.Equal(t, Quality{Queries: 2}, *q)
}

func TestScore_NoScorableQuery(t *testing.T) {
	q, ok := Score(
		map[string][]any{"other": {"a"}, "blank": {"a"}},
		dataset.GroundTruth{"q1": {"a"}, "blank": {"", nil}},
	)

	require.True(t, ok)
	assert.Equal(t, Quality{}, *q)
}

func TestScore_WorkedExample(t *testing.T) {
	q, ok := Score(
		map[string][]any{"q": {"docX", "docA", "docB"}},
		dataset.GroundTruth{"q": {"docA"}},
	)

	require.True(t, ok)
	assert.Equal(t, 1, q.Queries)
	assert.InDelta(t, 0.5, q.MRR, 1e-9)
	assert.InDelta(t, 0.0, q.PrecisionAt1, 1e-9)
	assert.InDelta(t, 0.2, q.PrecisionAt5, 1e-9)
	assert.InDelta(t, 0.1, q.PrecisionAt10, 1e-9)
	assert.InDelta(t, 1.0, q.RecallAt10, 1e-9)
}

func TestScore_AveragesAcrossQueries(t *testing.T) {
	q, ok := Score(
		map[string][]any{
			"hit":     {"s3://kb/docs/Alpha.pdf"},
			"miss":    {"zeta"},
			"no-gt":   {"alpha"},
			"empty-t": {"alpha"},
		},
		dataset.GroundTruth{
			"hit":     {"alpha"},
			"miss":    {"beta"},
			"empty-t": {},
			"no-pred": {"gamma"},
		},
	)

	require.True(t, ok)
	assert.Equal(t, 2, q.Queries)
	assert.InDelta(t, 0.5, q.MRR, 1e-9)
	assert.InDelta(t, 0.5, q.PrecisionAt1, 1e-9)
	assert.InDelta(t, 0.5, q.RecallAt10, 1e-9)
	assert.InDelta(t, 0.5, q.NDCGAt10, 1e-9)
}
