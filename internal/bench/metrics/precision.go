package metrics

import "github.com/DjordjeVuckovic/kb-bench/internal/bench/docid"

// PrecisionAtK computes the fraction of top-K results that match the truth set.
// A list shorter than K counts its missing slots as misses.
func PrecisionAtK(ranked []any, truth docid.TruthSet, k int) float64 {
	return precisionAtK(judge(ranked, truth), k)
}

// RecallAtK computes the fraction of the truth set found in top-K, capped at 1.
func RecallAtK(ranked []any, truth docid.TruthSet, k int) float64 {
	return recallAtK(judge(ranked, truth), truth.Len(), k)
}

// F1AtK computes the harmonic mean of P@K and R@K.
func F1AtK(ranked []any, truth docid.TruthSet, k int) float64 {
	rel := judge(ranked, truth)
	return f1(precisionAtK(rel, k), recallAtK(rel, truth.Len(), k))
}

func precisionAtK(rel []bool, k int) float64 {
	if k <= 0 || len(rel) == 0 {
		return 0
	}
	return float64(countTop(rel, k)) / float64(k)
}

func recallAtK(rel []bool, truthSize, k int) float64 {
	if k <= 0 || len(rel) == 0 || truthSize == 0 {
		return 0
	}
	// several chunks of one document can all match it
	return min(float64(countTop(rel, k))/float64(truthSize), 1)
}

func f1(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func countTop(rel []bool, k int) int {
	n := min(k, len(rel))
	var found int
	for i := 0; i < n; i++ {
		if rel[i] {
			found++
		}
	}
	return found
}

func judge(ranked []any, truth docid.TruthSet) []bool {
	rel := make([]bool, len(ranked))
	for i, id := range ranked {
		rel[i] = truth.Contains(id)
	}
	return rel
}
