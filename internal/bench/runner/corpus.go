package runner

import (
	"fmt"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
)

// LoadCorpora prepares one corpus per configured scale, either generated or
// read from the fixture file.
func LoadCorpora(d spec.DatasetConfig) (map[dataset.Scale]*dataset.Corpus, error) {
	out := make(map[dataset.Scale]*dataset.Corpus, len(d.Scales))

	if d.Fixture != "" {
		f, err := dataset.LoadFixture(d.Fixture)
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		out[dataset.ScaleFixture] = f.Corpus()
		return out, nil
	}

	gen := dataset.NewGenerator(d.Seed, dataset.WithContentLength(d.ContentLength))
	for _, raw := range d.Scales {
		sc, err := dataset.ParseScale(raw)
		if err != nil {
			return nil, err
		}
		c, err := gen.Generate(sc, d.QueriesPerTopic)
		if err != nil {
			return nil, fmt.Errorf("generate %s corpus: %w", sc, err)
		}
		out[sc] = c
	}
	return out, nil
}
