package metrics

import "github.com/DjordjeVuckovic/kb-bench/internal/bench/docid"

// AveragePrecision computes the mean of precision values at each relevant rank position.
func AveragePrecision(ranked []any, truth docid.TruthSet) float64 {
	return averagePrecision(judge(ranked, truth), truth.Len())
}

// ReciprocalRank returns 1/rank of the first matching result over the full list.
func ReciprocalRank(ranked []any, truth docid.TruthSet) float64 {
	return reciprocalRank(judge(ranked, truth))
}

func averagePrecision(rel []bool, truthSize int) float64 {
	if len(rel) == 0 || truthSize == 0 {
		return 0
	}

	var sumPrecision float64
	var relevantSeen int

	for i, r := range rel {
		if r {
			relevantSeen++
			sumPrecision += float64(relevantSeen) / float64(i+1)
		}
	}

	return min(sumPrecision/float64(truthSize), 1)
}

func reciprocalRank(rel []bool) float64 {
	for i, r := range rel {
		if r {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}
