package token

import "math"

// BM25 holds the Okapi BM25 free parameters.
type BM25 struct {
	K1 float64
	B  float64
}

var DefaultBM25 = BM25{K1: 1.2, B: 0.75}

// Score is the contribution of one term to one document.
// tf is the term count in the document, df the number of documents holding
// the term, n the corpus size.
func (p BM25) Score(tf, df, docLen int, avgDocLen float64, n int) float64 {
	if tf <= 0 || df <= 0 || n <= 0 {
		return 0
	}

	idf := math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))

	norm := 1.0
	if avgDocLen > 0 {
		norm = 1 - p.B + p.B*float64(docLen)/avgDocLen
	}

	ftf := float64(tf)
	return idf * ftf * (p.K1 + 1) / (ftf + p.K1*norm)
}
