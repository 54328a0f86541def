package spec

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
)

const (
	TypeAPI           = "api"
	TypeElasticsearch = "elasticsearch"
	TypePostgres      = "postgres"
	TypeQdrant        = "qdrant"
	TypeLevelDB       = "leveldb"
	TypeMemory        = "memory"
)

var validAdapterTypes = map[string]bool{
	TypeAPI:           true,
	TypeElasticsearch: true,
	TypePostgres:      true,
	TypeQdrant:        true,
	TypeLevelDB:       true,
	TypeMemory:        true,
}

func LoadFromFile(path string) (*BenchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*BenchSpec, error) {
	var s BenchSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse spec YAML", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func invalid(format string, args ...any) error {
	return apperr.NewValidation(fmt.Sprintf(format, args...))
}

func validate(s *BenchSpec) error {
	if len(s.Jobs) == 0 {
		return invalid("spec has no jobs")
	}
	if len(s.Adapters) == 0 {
		return invalid("spec has no adapters")
	}
	for i, j := range s.Jobs {
		if j.Name == "" {
			return invalid("job at index %d has no name", i)
		}
		if len(j.Adapters) == 0 {
			return invalid("job %q has no adapters", j.Name)
		}
		for _, ref := range j.Adapters {
			if _, ok := s.Adapters[ref]; !ok {
				return invalid("job %q references unknown adapter %q", j.Name, ref)
			}
		}
	}
	for name, a := range s.Adapters {
		if err := validateAdapter(name, &a); err != nil {
			return err
		}
		s.Adapters[name] = a
	}
	if err := validateDataset(&s.Dataset); err != nil {
		return err
	}
	if err := validateRuns(&s.Runs); err != nil {
		return err
	}
	if len(s.Metrics.KValues) == 0 {
		s.Metrics.KValues = []int{1, 5, 10}
	}
	for _, k := range s.Metrics.KValues {
		if k < 1 {
			return invalid("metrics k value %d must be positive", k)
		}
	}
	return nil
}

func validateAdapter(name string, a *Adapter) error {
	if a.Type == "" {
		return invalid("adapter %q has no type", name)
	}
	if !validAdapterTypes[a.Type] {
		return invalid("adapter %q has invalid type %q", name, a.Type)
	}
	if a.Connection == "" && a.Type != TypeMemory {
		return invalid("adapter %q has no connection", name)
	}
	if a.Simulation != nil {
		if a.Type != TypeMemory {
			return invalid("adapter %q: simulation is only supported by memory adapters", name)
		}
		if a.Simulation.FailureRate < 0 || a.Simulation.FailureRate > 1 {
			return invalid("adapter %q: failure_rate must be within [0, 1]", name)
		}
		if a.Simulation.BaseLatency < 0 || a.Simulation.Jitter < 0 {
			return invalid("adapter %q: simulated latency must not be negative", name)
		}
	}
	if a.Service == "" {
		a.Service = a.Type
	}
	return nil
}

func validateDataset(d *DatasetConfig) error {
	if d.Fixture != "" {
		d.Scales = []string{string(dataset.ScaleFixture)}
	}
	if len(d.Scales) == 0 {
		d.Scales = []string{string(dataset.ScaleSmall)}
	}
	for i, raw := range d.Scales {
		sc, err := dataset.ParseScale(raw)
		if err != nil {
			return apperr.NewValidationWrap("dataset", err)
		}
		if sc == dataset.ScaleFixture && d.Fixture == "" {
			return invalid("dataset scale %q requires a fixture file", sc)
		}
		d.Scales[i] = string(sc)
	}
	if d.Seed == 0 {
		d.Seed = 42
	}
	if d.QueriesPerTopic <= 0 {
		d.QueriesPerTopic = 3
	}
	if d.ContentLength <= 0 {
		d.ContentLength = 60
	}
	return nil
}

func validateRuns(r *RunsConfig) error {
	if r.Warmup < 0 {
		return invalid("runs warmup must not be negative")
	}
	if r.Iterations <= 0 {
		r.Iterations = 1
	}
	if len(r.Concurrency) == 0 {
		r.Concurrency = []int{1}
	}
	for _, c := range r.Concurrency {
		if c < 1 {
			return invalid("runs concurrency %d must be at least 1", c)
		}
	}
	if r.TopK <= 0 {
		r.TopK = 10
	}
	if r.Timeout <= 0 {
		r.Timeout = 30 * time.Second
	}
	if r.Duration < 0 {
		return invalid("runs duration must not be negative")
	}
	if r.RateLimit < 0 {
		return invalid("runs rate_limit must not be negative")
	}
	if r.Retries < 0 {
		return invalid("runs retries must not be negative")
	}
	return nil
}
