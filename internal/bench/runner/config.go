package runner

import (
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/cost"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
)

var DefaultKValues = []int{1, 5, 10}

const (
	DefaultTopK       = 10
	DefaultTimeout    = 30 * time.Second
	DefaultIterations = 1
)

type Config struct {
	Warmup      int
	Iterations  int
	Concurrency []int
	TopK        int
	Timeout     time.Duration
	// Duration > 0 runs each level as a stress test for that long.
	Duration  time.Duration
	RateLimit float64
	Retries   int
	KValues   []int
	SkipIndex bool
	Pricing   cost.Table
}

func DefaultConfig() Config {
	return Config{
		Iterations:  DefaultIterations,
		Concurrency: []int{1},
		TopK:        DefaultTopK,
		Timeout:     DefaultTimeout,
		KValues:     DefaultKValues,
		Pricing:     cost.DefaultTable,
	}
}

// ConfigFromSpec takes run settings from a validated spec.
func ConfigFromSpec(bs *spec.BenchSpec) Config {
	cfg := DefaultConfig()
	cfg.Warmup = bs.Runs.Warmup
	cfg.Iterations = bs.Runs.Iterations
	cfg.Concurrency = bs.Runs.Concurrency
	cfg.TopK = bs.Runs.TopK
	cfg.Timeout = bs.Runs.Timeout
	cfg.Duration = bs.Runs.Duration
	cfg.RateLimit = bs.Runs.RateLimit
	cfg.Retries = bs.Runs.Retries
	cfg.SkipIndex = bs.Dataset.SkipIndex
	if len(bs.Metrics.KValues) > 0 {
		cfg.KValues = bs.Metrics.KValues
	}
	return cfg
}

func (c *Config) normalize() {
	if c.Iterations <= 0 {
		c.Iterations = DefaultIterations
	}
	if len(c.Concurrency) == 0 {
		c.Concurrency = []int{1}
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if len(c.KValues) == 0 {
		c.KValues = DefaultKValues
	}
	if c.Pricing == nil {
		c.Pricing = cost.DefaultTable
	}
}
