// Package in_mem is a process-local keyword index used by the simulated adapter.
package in_mem

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/token"
)

type posting struct {
	doc int
	tf  int
}

type Index struct {
	mu       sync.RWMutex
	ids      []string
	lengths  []int
	avgLen   float64
	postings map[string][]posting
	params   token.BM25
}

func NewIndex() *Index {
	return &Index{
		postings: make(map[string][]posting),
		params:   token.DefaultBM25,
	}
}

func (x *Index) Replace(ctx context.Context, docs []dataset.Document) error {
	ids := make([]string, len(docs))
	lengths := make([]int, len(docs))
	postings := make(map[string][]posting)

	var total int
	for i, d := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		ids[i] = d.ID
		for term, tf := range token.TermFrequencies(d.Title + " " + d.Content) {
			postings[term] = append(postings[term], posting{doc: i, tf: tf})
			lengths[i] += tf
		}
		total += lengths[i]
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	x.ids = ids
	x.lengths = lengths
	x.postings = postings
	x.avgLen = 0
	if len(docs) > 0 {
		x.avgLen = float64(total) / float64(len(docs))
	}

	slog.Debug("in-memory index loaded", "documents", len(docs), "terms", len(postings))
	return nil
}

// Search returns up to limit document ids ordered by BM25 score and the
// number of documents that matched at least one term.
func (x *Index) Search(query string, limit int) ([]string, int) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	n := len(x.ids)
	if n == 0 {
		return nil, 0
	}

	scores := make(map[int]float64)
	for term := range token.TermFrequencies(query) {
		list := x.postings[term]
		for _, p := range list {
			scores[p.doc] += x.params.Score(p.tf, len(list), x.lengths[p.doc], x.avgLen, n)
		}
	}

	ranked := make([]int, 0, len(scores))
	for doc := range scores {
		ranked = append(ranked, doc)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return x.ids[a] < x.ids[b]
	})

	total := len(ranked)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, doc := range ranked {
		out[i] = x.ids[doc]
	}
	return out, total
}

func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.ids)
}
