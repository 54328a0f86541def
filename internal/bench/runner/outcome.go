package runner

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/cost"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/docid"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/engine"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/result"
)

// Outcome is one adapter run: the summarized result plus what the harness
// knows around it.
type Outcome struct {
	RunID      uuid.UUID         `json:"run_id"`
	Job        string            `json:"job"`
	Service    string            `json:"service"`
	Capability engine.Capability `json:"capability"`
	Result     *result.RunResult `json:"result"`
	Cost       cost.Estimate     `json:"cost"`
	Details    Details           `json:"details"`
	Error      string            `json:"error,omitempty"`
}

type Details struct {
	Iteration  int     `json:"iteration"`
	Documents  int     `json:"documents"`
	Queries    int     `json:"queries"`
	IndexMs    float64 `json:"index_ms,omitempty"`
	Retries    int64   `json:"retries,omitempty"`
	StressMode bool    `json:"stress_mode,omitempty"`
	// Scores holds the extended metrics at the configured cutoffs,
	// e.g. "ndcg@5" or "map".
	Scores map[string]float64 `json:"scores,omitempty"`
}

// Failed reports whether the run could not be set up.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// extendedScores averages the full metric set over the queries that have
// both predictions and a non-empty truth set.
func extendedScores(predictions map[string][]any, truth dataset.GroundTruth, kValues []int) map[string]float64 {
	if len(truth) == 0 {
		return nil
	}

	queries := make([]string, 0, len(truth))
	for q := range truth {
		queries = append(queries, q)
	}
	sort.Strings(queries)

	resolver := docid.NewResolver()
	sums := make(map[string]float64)
	var n int

	for _, q := range queries {
		ranked, ok := predictions[q]
		if !ok {
			continue
		}
		ts := resolver.TruthSet(truth[q])
		if ts.IsEmpty() {
			continue
		}

		s := metrics.ComputeAll(ranked, ts, kValues)
		for _, k := range kValues {
			sums[fmt.Sprintf("precision@%d", k)] += s.Precision[k]
			sums[fmt.Sprintf("recall@%d", k)] += s.Recall[k]
			sums[fmt.Sprintf("f1@%d", k)] += s.F1[k]
			sums[fmt.Sprintf("ndcg@%d", k)] += s.NDCG[k]
		}
		sums["map"] += s.AP
		sums["mrr"] += s.RR
		n++
	}

	if n == 0 {
		return nil
	}
	for k, v := range sums {
		sums[k] = v / float64(n)
	}
	return sums
}
