package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
)

// Fixture is the on-disk YAML form of a corpus.
//
//	documents:
//	  - id: doc_0001
//	    title: ...
//	    content: ...
//	queries:
//	  - query: what is machine learning
//	    relevant_ids: [doc_0001, "s3://kb/doc_0007.txt", 42]
type Fixture struct {
	Documents []Document     `yaml:"documents,omitempty"`
	Queries   []FixtureQuery `yaml:"queries"`
}

type FixtureQuery struct {
	Query       string `yaml:"query"`
	RelevantIDs []any  `yaml:"relevant_ids"`
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture YAML: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Queries))
	for i, q := range f.Queries {
		if q.Query == "" {
			return nil, apperr.NewFieldValidation(fmt.Sprintf("queries[%d].query", i), "must not be empty")
		}
		if _, dup := seen[q.Query]; dup {
			return nil, apperr.NewFieldValidation(fmt.Sprintf("queries[%d].query", i), fmt.Sprintf("duplicate query %q", q.Query))
		}
		seen[q.Query] = struct{}{}
	}

	return &f, nil
}

// LoadGroundTruth reads only the query -> relevant ids mapping of a fixture.
func LoadGroundTruth(path string) (GroundTruth, error) {
	f, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return f.GroundTruth(), nil
}

func (f *Fixture) GroundTruth() GroundTruth {
	gt := make(GroundTruth, len(f.Queries))
	for _, q := range f.Queries {
		gt[q.Query] = q.RelevantIDs
	}
	return gt
}

// Corpus turns the fixture into a corpus labelled with the fixture scale.
func (f *Fixture) Corpus() *Corpus {
	c := &Corpus{
		Scale:     ScaleFixture,
		Documents: f.Documents,
		Truth:     f.GroundTruth(),
	}
	for _, q := range f.Queries {
		c.Queries = append(c.Queries, q.Query)
	}
	return c
}

// NewFixture captures a corpus, keeping its query order.
func NewFixture(c *Corpus, withDocuments bool) *Fixture {
	f := &Fixture{Queries: make([]FixtureQuery, 0, len(c.Queries))}
	if withDocuments {
		f.Documents = c.Documents
	}
	for _, q := range c.Queries {
		f.Queries = append(f.Queries, FixtureQuery{Query: q, RelevantIDs: c.Truth[q]})
	}
	return f
}

func WriteFixture(path string, f *Fixture) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create fixture dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write fixture file: %w", err)
	}
	return nil
}
