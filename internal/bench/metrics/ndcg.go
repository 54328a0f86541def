package metrics

import (
	"math"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/docid"
)

// NDCGAtK computes Normalized Discounted Cumulative Gain at rank K.
// Uses binary relevance: DCG = sum(rel_i / log2(i+1)) for 1-indexed i in 1..K.
func NDCGAtK(ranked []any, truth docid.TruthSet, k int) float64 {
	return ndcgAtK(judge(ranked, truth), truth.Len(), k)
}

func ndcgAtK(rel []bool, truthSize, k int) float64 {
	if k <= 0 || len(rel) == 0 || truthSize == 0 {
		return 0
	}

	idcg := idealDCGAtK(truthSize, k)
	if idcg == 0 {
		return 0
	}

	return min(dcgAtK(rel, k)/idcg, 1)
}

func dcgAtK(rel []bool, k int) float64 {
	n := min(k, len(rel))
	var dcg float64

	for i := 0; i < n; i++ {
		if rel[i] {
			dcg += 1 / math.Log2(float64(i+2))
		}
	}

	return dcg
}

func idealDCGAtK(truthSize, k int) float64 {
	n := min(k, truthSize)
	var idcg float64

	for i := 0; i < n; i++ {
		idcg += 1 / math.Log2(float64(i+2))
	}

	return idcg
}
