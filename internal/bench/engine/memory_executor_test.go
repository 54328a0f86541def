package engine

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexedMemory(t *testing.T, sim SimulationConfig) *MemoryExecutor {
	t.Helper()

	corpus, err := dataset.NewGenerator(3).Generate(dataset.ScaleTiny, 1)
	require.NoError(t, err)

	ex := NewMemoryExecutor("mock", sim)
	require.NoError(t, ex.Index(context.Background(), corpus.Documents))
	return ex
}

func TestMemoryExecutor_Execute(t *testing.T) {
	ex := indexedMemory(t, SimulationConfig{Seed: 1})

	res, err := ex.Execute(context.Background(), "machine learning neural networks", 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.PredictedIDs), 5)
	assert.GreaterOrEqual(t, res.TotalMatches, int64(len(res.PredictedIDs)))
	assert.Equal(t, CapabilitySimulated, ex.Capability())
}

func TestMemoryExecutor_SimulatedLatency(t *testing.T) {
	ex := indexedMemory(t, SimulationConfig{BaseLatency: 2 * time.Millisecond, Jitter: time.Millisecond, Seed: 9})

	for range 5 {
		res, err := ex.Execute(context.Background(), "database", 3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Latency, 2*time.Millisecond)
		assert.LessOrEqual(t, res.Latency, 3*time.Millisecond)
	}
}

func TestMemoryExecutor_Deterministic(t *testing.T) {
	sim := SimulationConfig{Jitter: 50 * time.Microsecond, FailureRate: 0.5, Seed: 11}
	a := indexedMemory(t, sim)
	b := indexedMemory(t, sim)

	for range 20 {
		ra, errA := a.Execute(context.Background(), "security", 3)
		rb, errB := b.Execute(context.Background(), "security", 3)
		assert.Equal(t, errA == nil, errB == nil)
		if errA == nil {
			assert.Equal(t, ra.Latency, rb.Latency)
			assert.Equal(t, ra.PredictedIDs, rb.PredictedIDs)
		}
	}
}

func TestMemoryExecutor_AlwaysFails(t *testing.T) {
	ex := indexedMemory(t, SimulationConfig{FailureRate: 1, Seed: 1})

	_, err := ex.Execute(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Equal(t, sample.KindUnavailable, sample.KindOf(err))
}

func TestMemoryExecutor_HonorsDeadline(t *testing.T) {
	ex := indexedMemory(t, SimulationConfig{BaseLatency: time.Second, Seed: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := ex.Execute(ctx, "anything", 3)
	require.Error(t, err)
	assert.Equal(t, sample.KindTimeout, sample.KindOf(err))
}
