package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/kb-bench/internal/embedding"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/es"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/leveldb"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/pg"
	"github.com/DjordjeVuckovic/kb-bench/internal/storage/vector"
)

const (
	defaultIndex   = "kb_bench"
	inMemoryLevel  = ":memory:"
	defaultSimSeed = 1
)

type Config struct {
	// Getenv resolves adapter credential references; os.Getenv when nil.
	Getenv    func(string) string
	Embedding embedding.Config
	// Simulate replaces every adapter with a MemoryExecutor of the same name.
	Simulate bool
}

func (c Config) secret(name string) string {
	if name == "" {
		return ""
	}
	if c.Getenv != nil {
		return c.Getenv(name)
	}
	return os.Getenv(name)
}

// CreateFromSpec builds one executor per adapter. The returned cleanup closes
// all of them. On error every executor built so far is closed.
func CreateFromSpec(ctx context.Context, adapters map[string]spec.Adapter, cfg Config) (map[string]Executor, func(), error) {
	executors := make(map[string]Executor, len(adapters))

	cleanup := func() {
		for name, ex := range executors {
			if err := ex.Close(); err != nil {
				slog.Warn("failed to close executor", "adapter", name, "error", err)
			}
		}
	}

	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ex, err := create(ctx, name, adapters[name], cfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("create adapter %q: %w", name, err)
		}
		slog.Debug("adapter ready", "adapter", name, "type", adapters[name].Type, "capability", ex.Capability())
		executors[name] = ex
	}

	return executors, cleanup, nil
}

func create(ctx context.Context, name string, a spec.Adapter, cfg Config) (Executor, error) {
	if cfg.Simulate || a.Type == spec.TypeMemory {
		return NewMemoryExecutor(name, simulationOf(a)), nil
	}

	index := a.Index
	if index == "" {
		index = defaultIndex
	}

	switch a.Type {
	case spec.TypeAPI:
		return NewAPIExecutor(name, a.Connection, APIOptionsFrom(a.Options, cfg.secret(a.Credentials))), nil

	case spec.TypeElasticsearch:
		store, err := es.NewStore(es.ClientConfig{
			Addresses: splitList(a.Connection),
			IndexName: index,
			Username:  a.Options["username"],
			Password:  cfg.secret(a.Options["password_env"]),
			APIKey:    cfg.secret(a.Credentials),
		})
		if err != nil {
			return nil, err
		}
		return NewEsExecutor(name, store), nil

	case spec.TypePostgres:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: a.Connection})
		if err != nil {
			return nil, err
		}
		return NewPgExecutor(name, pool, index), nil

	case spec.TypeQdrant:
		host, port, err := hostPort(a.Connection, vector.DefaultPort)
		if err != nil {
			return nil, err
		}
		client, err := embedding.NewOllamaClient(cfg.Embedding.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("embedding client: %w", err)
		}
		store, err := vector.NewStore(vector.Config{
			Host:       host,
			Port:       port,
			APIKey:     cfg.secret(a.Credentials),
			UseTLS:     a.Options["tls"] == "true",
			Collection: index,
		}, embedding.NewEmbedder(client, cfg.Embedding.Options()...))
		if err != nil {
			return nil, err
		}
		return NewQdrantExecutor(name, store), nil

	case spec.TypeLevelDB:
		var (
			idx *leveldb.Index
			err error
		)
		if a.Connection == inMemoryLevel {
			idx, err = leveldb.OpenInMemory()
		} else {
			idx, err = leveldb.Open(a.Connection)
		}
		if err != nil {
			return nil, err
		}
		return NewLevelDBExecutor(name, idx), nil
	}

	return nil, fmt.Errorf("unsupported adapter type %q", a.Type)
}

func simulationOf(a spec.Adapter) SimulationConfig {
	if a.Simulation == nil {
		return SimulationConfig{Seed: defaultSimSeed}
	}
	sim := SimulationConfig{
		BaseLatency: a.Simulation.BaseLatency,
		Jitter:      a.Simulation.Jitter,
		FailureRate: a.Simulation.FailureRate,
		Seed:        a.Simulation.Seed,
	}
	if sim.Seed == 0 {
		sim.Seed = defaultSimSeed
	}
	return sim
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hostPort(conn string, defaultPort int) (string, int, error) {
	conn = strings.TrimPrefix(strings.TrimPrefix(conn, "http://"), "https://")
	host, rawPort, err := net.SplitHostPort(conn)
	if err != nil {
		return conn, defaultPort, nil
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", conn, err)
	}
	return host, port, nil
}
