package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLatencyStats_Empty(t *testing.T) {
	stats := ComputeLatencyStats(nil)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.Median)
	assert.Zero(t, stats.SampleCount)
	assert.True(t, stats.IsZero())

	for label, v := range stats.Summary() {
		assert.Zero(t, v, label)
	}
}

func TestComputeLatencyStats_SingleValue(t *testing.T) {
	stats := ComputeLatencyStats([]float64{10})

	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 10.0, stats.Max)
	assert.Equal(t, 10.0, stats.Mean)
	assert.Equal(t, 10.0, stats.Median)
	assert.Equal(t, 10.0, stats.P99())
	assert.Equal(t, 1, stats.SampleCount)
	assert.Zero(t, stats.Stddev)
	assert.False(t, stats.IsZero())
}

func TestComputeLatencyStats_MultipleValues(t *testing.T) {
	stats := ComputeLatencyStats([]float64{50, 10, 40, 20, 30})

	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 50.0, stats.Max)
	assert.InDelta(t, 30.0, stats.Mean, 1e-9)
	assert.Equal(t, 30.0, stats.Median)
	assert.Equal(t, 5, stats.SampleCount)
	// sample stddev of 10..50
	assert.InDelta(t, 15.811388, stats.Stddev, 1e-6)
}

func TestComputeLatencyStats_Interpolation(t *testing.T) {
	stats := ComputeLatencyStats([]float64{400, 100, 300, 200})

	assert.InDelta(t, 250.0, stats.P50(), 1e-9)
	assert.InDelta(t, 325.0, stats.P75(), 1e-9)
	assert.InDelta(t, 370.0, stats.P90(), 1e-9)
	assert.InDelta(t, 385.0, stats.P95(), 1e-9)
	assert.InDelta(t, 397.0, stats.P99(), 1e-9)
	assert.InDelta(t, 250.0, stats.Mean, 1e-9)
}

func TestComputeLatencyStats_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	ComputeLatencyStats(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestComputeLatencyStats_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(300)
		latencies := make([]float64, n)
		for i := range latencies {
			latencies[i] = rng.ExpFloat64() * 120
		}

		s := ComputeLatencyStats(latencies)

		require.LessOrEqual(t, s.Min, s.P50())
		require.LessOrEqual(t, s.P50(), s.P75())
		require.LessOrEqual(t, s.P75(), s.P90())
		require.LessOrEqual(t, s.P90(), s.P95())
		require.LessOrEqual(t, s.P95(), s.P99())
		require.LessOrEqual(t, s.P99(), s.Max)
		require.LessOrEqual(t, s.Min, s.Mean)
		require.LessOrEqual(t, s.Mean, s.Max)
	}
}

func TestComputeLatencyStats_MeanOfIdenticalValues(t *testing.T) {
	latencies := make([]float64, 1000)
	for i := range latencies {
		latencies[i] = 0.1
	}

	s := ComputeLatencyStats(latencies)
	assert.LessOrEqual(t, s.Mean, s.Max)
	assert.GreaterOrEqual(t, s.Mean, s.Min)
}

func TestLatencyStats_Summary(t *testing.T) {
	s := ComputeLatencyStats([]float64{100, 200, 300, 400})
	summary := s.Summary()

	assert.Len(t, summary, 8)
	for _, label := range []string{"p50", "p75", "p90", "p95", "p99", "mean", "min", "max"} {
		assert.Contains(t, summary, label)
	}
	assert.InDelta(t, 250.0, summary["p50"], 1e-9)
	assert.Equal(t, 100.0, summary["min"])
	assert.Equal(t, 400.0, summary["max"])
}
