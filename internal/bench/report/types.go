package report

import (
	"os"
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/engine"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/runner"
)

const Version = "1"

type Report struct {
	Meta     BenchMeta        `json:"meta"`
	Outcomes []runner.Outcome `json:"outcomes"`
	Rankings []Ranking        `json:"rankings"`
}

type BenchMeta struct {
	Version     string                 `json:"version"`
	Timestamp   time.Time              `json:"timestamp"`
	Adapters    map[string]AdapterInfo `json:"adapters"`
	Corpora     []CorpusInfo           `json:"corpora,omitempty"`
	Environment EnvironmentInfo        `json:"environment"`
}

type AdapterInfo struct {
	Type       string `json:"type"`
	Service    string `json:"service"`
	Connection string `json:"connection,omitempty"`
	Index      string `json:"index,omitempty"`
}

type CorpusInfo struct {
	Scale      string `json:"scale"`
	DocCount   int    `json:"doc_count"`
	QueryCount int    `json:"query_count"`
	SizeBytes  int64  `json:"size_bytes"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
	Hostname  string `json:"hostname,omitempty"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	host, _ := os.Hostname()
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		Hostname:  host,
	}
}

// Ranking is an adapter's best showing across all of its runs.
type Ranking struct {
	Adapter            string            `json:"adapter"`
	Capability         engine.Capability `json:"capability"`
	BestP95Ms          float64           `json:"best_p95_ms"`
	BestP95Concurrency int               `json:"best_p95_concurrency"`
	BestQPS            float64           `json:"best_qps"`
	BestMRR            *float64          `json:"best_mrr,omitempty"`
	BestNDCG10         *float64          `json:"best_ndcg_at_10,omitempty"`
	Runs               int               `json:"runs"`
	FailedRuns         int               `json:"failed_runs"`
}

// Usable reports whether at least one run of the adapter succeeded.
func (r Ranking) Usable() bool {
	return r.Runs > r.FailedRuns
}
