// Package metrics scores ranked retrieval results against ground truth.
//
// Relevance is binary: a returned id is relevant when it matches one of the
// query's truth ids under docid's tiered matching.
package metrics

import "github.com/DjordjeVuckovic/kb-bench/internal/bench/docid"

type ScoreSet struct {
	NDCG      map[int]float64 // K -> NDCG@K
	Precision map[int]float64 // K -> P@K
	Recall    map[int]float64 // K -> R@K
	F1        map[int]float64 // K -> F1@K
	AP        float64         // Average Precision
	RR        float64         // Reciprocal Rank
}

func ComputeAll(ranked []any, truth docid.TruthSet, kValues []int) ScoreSet {
	return computeAll(judge(ranked, truth), truth.Len(), kValues)
}

func computeAll(rel []bool, truthSize int, kValues []int) ScoreSet {
	s := ScoreSet{
		NDCG:      make(map[int]float64, len(kValues)),
		Precision: make(map[int]float64, len(kValues)),
		Recall:    make(map[int]float64, len(kValues)),
		F1:        make(map[int]float64, len(kValues)),
	}

	for _, k := range kValues {
		p := precisionAtK(rel, k)
		r := recallAtK(rel, truthSize, k)
		s.NDCG[k] = ndcgAtK(rel, truthSize, k)
		s.Precision[k] = p
		s.Recall[k] = r
		s.F1[k] = f1(p, r)
	}

	s.AP = averagePrecision(rel, truthSize)
	s.RR = reciprocalRank(rel)

	return s
}
