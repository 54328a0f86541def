// Package history keeps per-adapter metric time series across benchmark runs.
package history

import (
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/runner"
)

const (
	MetricP50       = "p50_ms"
	MetricP95       = "p95_ms"
	MetricP99       = "p99_ms"
	MetricQPS       = "qps"
	MetricErrorRate = "error_rate"
	MetricMRR       = "mrr"
	MetricNDCG10    = "ndcg_at_10"
)

var Metrics = []string{MetricP50, MetricP95, MetricP99, MetricQPS, MetricErrorRate, MetricMRR, MetricNDCG10}

func IsMetric(name string) bool {
	for _, m := range Metrics {
		if m == name {
			return true
		}
	}
	return false
}

// Extract flattens the tracked metrics of an outcome. Latency of a run
// without successes and quality that was not measured are left out.
func Extract(o runner.Outcome) map[string]float64 {
	res := o.Result
	if res == nil {
		return nil
	}

	out := map[string]float64{
		MetricErrorRate: res.Throughput.ErrorRate,
		MetricQPS:       res.Throughput.QPS,
	}
	if res.Throughput.SuccessfulRequests > 0 {
		out[MetricP50] = res.P50()
		out[MetricP95] = res.P95()
		out[MetricP99] = res.P99()
	}
	if q := res.Quality; q != nil {
		out[MetricMRR] = q.MRR
		out[MetricNDCG10] = q.NDCGAt10
	}
	return out
}
