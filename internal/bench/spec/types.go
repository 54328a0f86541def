package spec

import "time"

type BenchSpec struct {
	Adapters map[string]Adapter `yaml:"adapters"`
	Jobs     []Job              `yaml:"jobs"`
	Dataset  DatasetConfig      `yaml:"dataset"`
	Runs     RunsConfig         `yaml:"runs"`
	Metrics  MetricsConfig      `yaml:"metrics"`
}

type Job struct {
	Name     string   `yaml:"name"`
	Adapters []string `yaml:"adapters"`
}

// Adapter describes one service under test.
type Adapter struct {
	Type       string `yaml:"type"`
	Connection string `yaml:"connection"`
	Index      string `yaml:"index,omitempty"`
	// Service keys the pricing table; defaults to Type.
	Service string `yaml:"service,omitempty"`
	// Credentials names the environment variable holding the API key.
	Credentials string            `yaml:"credentials,omitempty"`
	Options     map[string]string `yaml:"options,omitempty"`
	Simulation  *Simulation       `yaml:"simulation,omitempty"`
}

// Simulation shapes the synthetic latency and failures of a memory adapter.
type Simulation struct {
	BaseLatency time.Duration `yaml:"base_latency"`
	Jitter      time.Duration `yaml:"jitter"`
	FailureRate float64       `yaml:"failure_rate"`
	Seed        int64         `yaml:"seed"`
}

type DatasetConfig struct {
	Scales          []string `yaml:"scales"`
	Seed            int64    `yaml:"seed"`
	QueriesPerTopic int      `yaml:"queries_per_topic"`
	ContentLength   int      `yaml:"content_length"`
	// Fixture replaces the generated corpus with a YAML fixture file.
	Fixture   string `yaml:"fixture,omitempty"`
	SkipIndex bool   `yaml:"skip_index"`
}

type RunsConfig struct {
	Warmup      int           `yaml:"warmup"`
	Iterations  int           `yaml:"iterations"`
	Concurrency []int         `yaml:"concurrency"`
	TopK        int           `yaml:"top_k"`
	Timeout     time.Duration `yaml:"timeout"`
	// Duration > 0 switches to stress mode: queries loop until it elapses.
	Duration  time.Duration `yaml:"duration"`
	RateLimit float64       `yaml:"rate_limit"`
	Retries   int           `yaml:"retries"`
}

type MetricsConfig struct {
	KValues []int `yaml:"k_values"`
}
