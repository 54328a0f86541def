package docid

import "strings"

// Match reports whether predicted refers to one of the truth identifiers.
//
// Tier 1 is exact equality of normalized forms. Tier 2 accepts containment in
// either direction, for ids where one side keeps a descriptive prefix or
// suffix the other lacks. An empty normalized id never matches.
func Match(predicted any, truth []any) bool {
	return NewTruthSet(truth).Contains(predicted)
}

// TruthSet holds the normalized, de-duplicated, non-empty relevant ids of one query.
type TruthSet struct {
	ids   []string
	exact map[string]struct{}
}

func NewTruthSet(raw []any) TruthSet {
	return newTruthSet(raw, Normalize)
}

func newTruthSet(raw []any, normalize func(any) string) TruthSet {
	ts := TruthSet{exact: make(map[string]struct{}, len(raw))}
	for _, r := range raw {
		n := normalize(r)
		if n == "" {
			continue
		}
		if _, dup := ts.exact[n]; dup {
			continue
		}
		ts.exact[n] = struct{}{}
		ts.ids = append(ts.ids, n)
	}
	return ts
}

// Len is the number of distinct comparable truth ids.
func (ts TruthSet) Len() int {
	return len(ts.ids)
}

func (ts TruthSet) IsEmpty() bool {
	return len(ts.ids) == 0
}

func (ts TruthSet) Contains(predicted any) bool {
	return ts.ContainsNormalized(Normalize(predicted))
}

// ContainsNormalized is Contains for an id that has already been normalized.
func (ts TruthSet) ContainsNormalized(p string) bool {
	if p == "" || len(ts.ids) == 0 {
		return false
	}

	if _, ok := ts.exact[p]; ok {
		return true
	}

	for _, t := range ts.ids {
		if strings.Contains(t, p) || strings.Contains(p, t) {
			return true
		}
	}

	return false
}
