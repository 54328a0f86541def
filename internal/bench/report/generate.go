package report

import (
	"net/url"
	"sort"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
)

func Generate(
	bs *spec.BenchSpec,
	outcomes []runner.Outcome,
	corpora map[dataset.Scale]*dataset.Corpus,
	now time.Time,
) *Report {
	r := &Report{
		Meta: BenchMeta{
			Version:     Version,
			Timestamp:   now,
			Adapters:    make(map[string]AdapterInfo, len(bs.Adapters)),
			Environment: NewEnvironmentInfo(),
		},
		Outcomes: outcomes,
		Rankings: Rank(outcomes),
	}

	for name, a := range bs.Adapters {
		r.Meta.Adapters[name] = AdapterInfo{
			Type:       a.Type,
			Service:    a.Service,
			Connection: redact(a.Connection),
			Index:      a.Index,
		}
	}

	for _, raw := range bs.Dataset.Scales {
		c, ok := corpora[dataset.Scale(raw)]
		if !ok {
			continue
		}
		r.Meta.Corpora = append(r.Meta.Corpora, CorpusInfo{
			Scale:      raw,
			DocCount:   len(c.Documents),
			QueryCount: len(c.Queries),
			SizeBytes:  c.SizeBytes(),
		})
	}

	return r
}

// Rank picks each adapter's best p95 and best quality, then orders adapters by
// best p95. Adapters whose every run failed sort last.
func Rank(outcomes []runner.Outcome) []Ranking {
	byAdapter := make(map[string]*Ranking)
	var order []string

	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		name := o.Result.AdapterName
		rk, ok := byAdapter[name]
		if !ok {
			rk = &Ranking{Adapter: name, Capability: o.Capability}
			byAdapter[name] = rk
			order = append(order, name)
		}

		rk.Runs++
		if o.Failed() || o.Result.Throughput.SuccessfulRequests == 0 {
			rk.FailedRuns++
			continue
		}

		p95 := o.Result.P95()
		if rk.Runs-rk.FailedRuns == 1 || p95 < rk.BestP95Ms {
			rk.BestP95Ms = p95
			rk.BestP95Concurrency = o.Result.Concurrency
		}
		if qps := o.Result.Throughput.QPS; qps > rk.BestQPS {
			rk.BestQPS = qps
		}
		if q := o.Result.Quality; q != nil {
			if rk.BestMRR == nil || q.MRR > *rk.BestMRR {
				mrr := q.MRR
				rk.BestMRR = &mrr
			}
			if rk.BestNDCG10 == nil || q.NDCGAt10 > *rk.BestNDCG10 {
				ndcg := q.NDCGAt10
				rk.BestNDCG10 = &ndcg
			}
		}
	}

	out := make([]Ranking, 0, len(order))
	for _, name := range order {
		out = append(out, *byAdapter[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Usable() != b.Usable() {
			return a.Usable()
		}
		if a.BestP95Ms != b.BestP95Ms {
			return a.BestP95Ms < b.BestP95Ms
		}
		return a.Adapter < b.Adapter
	})
	return out
}

// BestQuality returns the usable ranking with the highest MRR.
func BestQuality(rankings []Ranking) (Ranking, bool) {
	var best Ranking
	found := false
	for _, rk := range rankings {
		if !rk.Usable() || rk.BestMRR == nil {
			continue
		}
		if !found || *rk.BestMRR > *best.BestMRR {
			best, found = rk, true
		}
	}
	return best, found
}

func redact(conn string) string {
	u, err := url.Parse(conn)
	if err != nil || u.User == nil {
		return conn
	}
	return u.Redacted()
}
