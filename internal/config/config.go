package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/DjordjeVuckovic/kb-bench/internal/api/server"
	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/DjordjeVuckovic/kb-bench/internal/embedding"
	"github.com/DjordjeVuckovic/kb-bench/pkg/config/env"
)

const Prefix = "KBBENCH"

// Config holds process-level settings. Benchmark shape lives in the bench YAML.
type Config struct {
	Env          string   `envconfig:"ENV" default:"local"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info"`
	ReportDir    string   `envconfig:"REPORT_DIR" default:"reports"`
	RedisURL     string   `envconfig:"REDIS_URL"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"kbbench.outcomes"`

	Embedding embedding.Config `envconfig:"EMBEDDING"`
	API       server.Config    `envconfig:"API"`
}

// Load reads an optional .env file and then the KBBENCH_* environment.
func Load() (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv(Prefix+"_ENV"), ".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the KBBENCH_* environment without touching .env files.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, apperr.NewValidationWrap("process environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ReportDir == "" {
		return apperr.NewFieldValidation("REPORT_DIR", "must not be empty")
	}
	if err := c.API.Validate(); err != nil {
		return apperr.NewValidationWrap("API", err)
	}
	return nil
}

func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, apperr.NewFieldValidation("LOG_LEVEL", fmt.Sprintf("unknown level %q", s))
	}
	return lvl, nil
}
