package metrics

import (
	"sort"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/docid"
)

var qualityK = []int{1, 5, 10}

// Quality is the run-level mean of per-query retrieval scores.
type Quality struct {
	PrecisionAt1  float64 `json:"precision_at_1"`
	PrecisionAt5  float64 `json:"precision_at_5"`
	PrecisionAt10 float64 `json:"precision_at_10"`
	RecallAt10    float64 `json:"recall_at_10"`
	MRR           float64 `json:"mrr"`
	NDCGAt10      float64 `json:"ndcg_at_10"`

	// Queries is how many queries contributed to the means.
	Queries int `json:"-"`
}

// Score averages per-query metrics over queries present in both mappings whose
// truth set is non-empty after normalization.
//
// An empty truth mapping means quality was not measured and returns (nil, false).
// Truth that is present but matches nothing scorable still returns an all-zero
// Quality, which is a measurement.
func Score(predictions map[string][]any, truth dataset.GroundTruth) (*Quality, bool) {
	if len(truth) == 0 {
		return nil, false
	}

	queries := make([]string, 0, len(truth))
	for q := range truth {
		if _, ok := predictions[q]; ok {
			queries = append(queries, q)
		}
	}
	// fixed order keeps floating-point sums reproducible
	sort.Strings(queries)

	resolver := docid.NewResolver()
	var sum Quality

	for _, q := range queries {
		ts := resolver.TruthSet(truth[q])
		if ts.IsEmpty() {
			continue
		}

		s := computeAll(resolver.Relevance(predictions[q], ts), ts.Len(), qualityK)
		sum.PrecisionAt1 += s.Precision[1]
		sum.PrecisionAt5 += s.Precision[5]
		sum.PrecisionAt10 += s.Precision[10]
		sum.RecallAt10 += s.Recall[10]
		sum.MRR += s.RR
		sum.NDCGAt10 += s.NDCG[10]
		sum.Queries++
	}

	if sum.Queries == 0 {
		return &Quality{}, true
	}

	n := float64(sum.Queries)
	return &Quality{
		PrecisionAt1:  sum.PrecisionAt1 / n,
		PrecisionAt5:  sum.PrecisionAt5 / n,
		PrecisionAt10: sum.PrecisionAt10 / n,
		RecallAt10:    sum.RecallAt10 / n,
		MRR:           sum.MRR / n,
		NDCGAt10:      sum.NDCGAt10 / n,
		Queries:       sum.Queries,
	}, true
}
