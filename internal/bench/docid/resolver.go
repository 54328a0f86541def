package docid

// Resolver memoizes normalization for the duration of one scoring pass.
// It is not safe for concurrent use; scoring is single threaded.
type Resolver struct {
	cache map[string]string
}

func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]string)}
}

func (r *Resolver) Normalize(raw any) string {
	key := coerce(raw)
	if n, ok := r.cache[key]; ok {
		return n
	}
	n := Normalize(key)
	r.cache[key] = n
	return n
}

func (r *Resolver) TruthSet(raw []any) TruthSet {
	return newTruthSet(raw, r.Normalize)
}

// Relevance maps a ranked prediction list to binary relevance against truth.
func (r *Resolver) Relevance(ranked []any, truth TruthSet) []bool {
	rel := make([]bool, len(ranked))
	for i, id := range ranked {
		rel[i] = truth.ContainsNormalized(r.Normalize(id))
	}
	return rel
}

// Size is the number of cached raw ids.
func (r *Resolver) Size() int {
	return len(r.cache)
}
