// Package leveldb is a persistent keyword baseline: an inverted index with
// BM25 ranking stored in LevelDB.
package leveldb

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/token"
)

// Key layout:
//
//	doc:<id>            -> analyzed length
//	term:<term>\x00<id> -> term frequency
//	meta:docs           -> document count
//	meta:terms          -> total analyzed length
var (
	prefixDoc  = []byte("doc:")
	prefixTerm = []byte("term:")
	keyDocs    = []byte("meta:docs")
	keyTerms   = []byte("meta:terms")
)

const termSep = 0x00

type Index struct {
	db     *leveldb.DB
	params token.BM25
}

type Hit struct {
	ID    string
	Score float64
}

func Open(path string) (*Index, error) {
	const op = "storage.leveldb.Open"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Index{db: db, params: token.DefaultBM25}, nil
}

// OpenInMemory backs the index with memory, for tests and throwaway runs.
func OpenInMemory() (*Index, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("storage.leveldb.OpenInMemory: %w", err)
	}
	return &Index{db: db, params: token.DefaultBM25}, nil
}

func (x *Index) Close() error {
	return x.db.Close()
}

// Replace wipes the index and writes docs in one batch.
func (x *Index) Replace(ctx context.Context, docs []dataset.Document) error {
	batch := new(leveldb.Batch)

	iter := x.db.NewIterator(nil, nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("scan index: %w", err)
	}

	var totalLen int
	for i, d := range docs {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		tf := token.TermFrequencies(d.Title + " " + d.Content)
		var docLen int
		for term, count := range tf {
			batch.Put(termKey(term, d.ID), []byte(strconv.Itoa(count)))
			docLen += count
		}
		batch.Put(append(bytes.Clone(prefixDoc), d.ID...), []byte(strconv.Itoa(docLen)))
		totalLen += docLen
	}

	batch.Put(keyDocs, []byte(strconv.Itoa(len(docs))))
	batch.Put(keyTerms, []byte(strconv.Itoa(totalLen)))

	if err := x.db.Write(batch, nil); err != nil {
		return fmt.Errorf("write index batch: %w", err)
	}

	slog.Info("keyword index loaded", "documents", len(docs), "terms", totalLen)
	return nil
}

// Search ranks documents by BM25 over the analyzed query terms and returns
// the top limit hits with the number of matching documents.
func (x *Index) Search(ctx context.Context, query string, limit int) ([]Hit, int, error) {
	n, err := x.getInt(keyDocs)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, nil
	}
	totalLen, err := x.getInt(keyTerms)
	if err != nil {
		return nil, 0, err
	}
	avgLen := float64(totalLen) / float64(n)

	scores := make(map[string]float64)
	lengths := make(map[string]int)

	for term := range token.TermFrequencies(query) {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		postings, err := x.postings(term)
		if err != nil {
			return nil, 0, err
		}

		for id, tf := range postings {
			docLen, ok := lengths[id]
			if !ok {
				docLen, err = x.getInt(append(bytes.Clone(prefixDoc), id...))
				if err != nil {
					return nil, 0, err
				}
				lengths[id] = docLen
			}
			scores[id] += x.params.Score(tf, len(postings), docLen, avgLen, n)
		}
	}

	hits := make([]Hit, 0, len(scores))
	for id, s := range scores {
		hits = append(hits, Hit{ID: id, Score: s})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	total := len(hits)
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, total, nil
}

func (x *Index) postings(term string) (map[string]int, error) {
	prefix := termKey(term, "")
	out := make(map[string]int)

	iter := x.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		tf, err := strconv.Atoi(string(iter.Value()))
		if err != nil {
			return nil, fmt.Errorf("corrupt posting %q: %w", iter.Key(), err)
		}
		out[string(iter.Key()[len(prefix):])] = tf
	}

	return out, iter.Error()
}

func (x *Index) getInt(key []byte) (int, error) {
	v, err := x.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %q: %w", key, err)
	}
	return strconv.Atoi(string(v))
}

func termKey(term, id string) []byte {
	k := make([]byte, 0, len(prefixTerm)+len(term)+1+len(id))
	k = append(k, prefixTerm...)
	k = append(k, term...)
	k = append(k, termSep)
	return append(k, id...)
}
