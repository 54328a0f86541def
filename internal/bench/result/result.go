// Package result assembles the per-adapter run summary from aggregated
// latency, throughput and quality figures.
package result

import (
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/stats"
)

// RunResult is the outcome of one adapter's test run at one scale and
// concurrency level. Quality is nil when no ground truth was supplied.
type RunResult struct {
	LatencyPercentiles map[string]float64    `json:"latency_percentiles"`
	Throughput         stats.ThroughputStats `json:"throughput"`
	Quality            *metrics.Quality      `json:"quality,omitempty"`
	AdapterName        string                `json:"adapter_name"`
	Scale              string                `json:"scale"`
	Concurrency        int                   `json:"concurrency"`
	Timestamp          time.Time             `json:"timestamp"`
}

func (r *RunResult) P50() float64 { return r.LatencyPercentiles["p50"] }
func (r *RunResult) P95() float64 { return r.LatencyPercentiles["p95"] }
func (r *RunResult) P99() float64 { return r.LatencyPercentiles["p99"] }

// HasQuality distinguishes "not measured" from "measured as zero".
func (r *RunResult) HasQuality() bool {
	return r.Quality != nil
}
