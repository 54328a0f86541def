package stats

import "time"

type ThroughputStats struct {
	QPS                float64        `json:"qps"`
	TotalRequests      int            `json:"total_requests"`
	SuccessfulRequests int            `json:"successful_requests"`
	FailedRequests     int            `json:"failed_requests"`
	ErrorRate          float64        `json:"error_rate"`
	DurationSeconds    float64        `json:"duration_seconds"`
	ErrorsByKind       map[string]int `json:"errors_by_kind,omitempty"`
}

// ComputeThroughput derives rates from request counts over a wall-clock window.
// A non-positive window yields qps 0; zero requests yield error rate 0.
func ComputeThroughput(total, failed int, wallClock time.Duration) ThroughputStats {
	t := ThroughputStats{
		TotalRequests:      total,
		SuccessfulRequests: total - failed,
		FailedRequests:     failed,
	}

	if wallClock > 0 {
		t.DurationSeconds = wallClock.Seconds()
		t.QPS = float64(total) / t.DurationSeconds
	}

	if total > 0 {
		t.ErrorRate = float64(failed) / float64(total)
	}

	return t
}
