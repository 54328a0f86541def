package stats

import (
	"fmt"
	"math"
	"sort"
)

// LatencyStats summarizes a latency distribution in milliseconds.
type LatencyStats struct {
	Min         float64         `json:"min"`
	Max         float64         `json:"max"`
	Mean        float64         `json:"mean"`
	Median      float64         `json:"median"`
	Stddev      float64         `json:"stddev"`
	Percentiles map[int]float64 `json:"percentiles"`
	SampleCount int             `json:"sample_count"`
}

var DefaultPercentiles = []int{50, 75, 90, 95, 99}

// ComputeLatencyStats reduces latencies (ms) to summary statistics.
// Percentiles use linear interpolation between closest ranks: rank = p/100*(n-1).
// An empty input yields the zero sentinel, every field 0.
func ComputeLatencyStats(latencies []float64) LatencyStats {
	stats := LatencyStats{
		Percentiles: make(map[int]float64, len(DefaultPercentiles)),
	}
	for _, p := range DefaultPercentiles {
		stats.Percentiles[p] = 0
	}

	if len(latencies) == 0 {
		return stats
	}

	sorted := make([]float64, len(latencies))
	copy(sorted, latencies)
	sort.Float64s(sorted)

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Median = percentile(sorted, 50)
	stats.SampleCount = len(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	// summation drift must not push the mean outside the observed range
	stats.Mean = math.Min(math.Max(sum/float64(len(sorted)), stats.Min), stats.Max)

	if len(sorted) > 1 {
		var sumSquares float64
		for _, v := range sorted {
			diff := v - stats.Mean
			sumSquares += diff * diff
		}
		stats.Stddev = math.Sqrt(sumSquares / float64(len(sorted)-1))
	}

	for _, p := range DefaultPercentiles {
		stats.Percentiles[p] = percentile(sorted, p)
	}

	return stats
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	v := sorted[lower] + weight*(sorted[upper]-sorted[lower])
	return math.Min(v, sorted[upper])
}

func (s LatencyStats) P50() float64 { return s.Percentiles[50] }
func (s LatencyStats) P75() float64 { return s.Percentiles[75] }
func (s LatencyStats) P90() float64 { return s.Percentiles[90] }
func (s LatencyStats) P95() float64 { return s.Percentiles[95] }
func (s LatencyStats) P99() float64 { return s.Percentiles[99] }

func (s LatencyStats) IsZero() bool {
	return s.SampleCount == 0
}

// Summary renders the label map reported per run: p50..p99, mean, min, max.
func (s LatencyStats) Summary() map[string]float64 {
	out := make(map[string]float64, len(DefaultPercentiles)+3)
	for _, p := range DefaultPercentiles {
		out[fmt.Sprintf("p%d", p)] = s.Percentiles[p]
	}
	out["mean"] = s.Mean
	out["min"] = s.Min
	out["max"] = s.Max
	return out
}
