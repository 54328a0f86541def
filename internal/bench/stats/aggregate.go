// Package stats reduces a finished sample set to latency and throughput figures.
package stats

import (
	"math"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sample"
)

const unknownKind = "unknown"

// Aggregate computes latency over successful samples only and throughput over all of them.
// Failed requests are excluded from latency because their durations measure error
// and timeout paths. Non-finite or negative latencies are ignored.
func Aggregate(samples []sample.Sample, wallClock time.Duration) (LatencyStats, ThroughputStats) {
	latencies := make([]float64, 0, len(samples))
	byKind := make(map[string]int)
	var failed int

	for _, s := range samples {
		if !s.Success {
			failed++
			kind := string(s.ErrorKind)
			if kind == "" {
				kind = unknownKind
			}
			byKind[kind]++
			continue
		}

		if math.IsNaN(s.LatencyMs) || math.IsInf(s.LatencyMs, 0) || s.LatencyMs < 0 {
			continue
		}
		latencies = append(latencies, s.LatencyMs)
	}

	tp := ComputeThroughput(len(samples), failed, wallClock)
	if len(byKind) > 0 {
		tp.ErrorsByKind = byKind
	}

	return ComputeLatencyStats(latencies), tp
}
