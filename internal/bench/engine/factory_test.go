package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFromSpec(t *testing.T) {
	adapters := map[string]spec.Adapter{
		"mock": {
			Type:       spec.TypeMemory,
			Simulation: &spec.Simulation{BaseLatency: time.Millisecond},
		},
		"local": {Type: spec.TypeLevelDB, Connection: filepath.Join(t.TempDir(), "kb")},
		"scratch": {Type: spec.TypeLevelDB, Connection: ":memory:"},
		"vendor": {
			Type:        spec.TypeAPI,
			Connection:  "http://localhost:1",
			Credentials: "VENDOR_KEY",
		},
	}

	cfg := Config{Getenv: func(name string) string {
		if name == "VENDOR_KEY" {
			return "k"
		}
		return ""
	}}

	executors, cleanup, err := CreateFromSpec(context.Background(), adapters, cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.Len(t, executors, 4)
	assert.IsType(t, &MemoryExecutor{}, executors["mock"])
	assert.IsType(t, &LevelDBExecutor{}, executors["local"])
	assert.IsType(t, &LevelDBExecutor{}, executors["scratch"])
	require.IsType(t, &APIExecutor{}, executors["vendor"])
	assert.Equal(t, "k", executors["vendor"].(*APIExecutor).opts.APIKey)

	for name, ex := range executors {
		assert.Equal(t, name, ex.Name())
	}
	assert.Equal(t, CapabilitySimulated, executors["mock"].Capability())
	assert.Equal(t, CapabilityReal, executors["local"].Capability())
}

func TestCreateFromSpec_Simulate(t *testing.T) {
	adapters := map[string]spec.Adapter{
		"es": {Type: spec.TypeElasticsearch, Connection: "http://localhost:9200"},
		"pg": {Type: spec.TypePostgres, Connection: "postgres://localhost/none"},
	}

	executors, cleanup, err := CreateFromSpec(context.Background(), adapters, Config{Simulate: true})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	for _, ex := range executors {
		assert.Equal(t, CapabilitySimulated, ex.Capability())
	}
}

func TestCreateFromSpec_UnknownType(t *testing.T) {
	_, _, err := CreateFromSpec(context.Background(), map[string]spec.Adapter{
		"x": {Type: "mysql", Connection: "mysql://"},
	}, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported adapter type")
}

func TestHostPort(t *testing.T) {
	host, port, err := hostPort("qdrant.local:7334", 6334)
	require.NoError(t, err)
	assert.Equal(t, "qdrant.local", host)
	assert.Equal(t, 7334, port)

	host, port, err = hostPort("http://qdrant.local", 6334)
	require.NoError(t, err)
	assert.Equal(t, "qdrant.local", host)
	assert.Equal(t, 6334, port)

	_, _, err = hostPort("qdrant.local:abc", 6334)
	assert.Error(t, err)
}
