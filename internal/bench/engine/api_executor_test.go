package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIExecutor_Execute(t *testing.T) {
	var got map[string]any
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/retrieve", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("X-Api-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"total": 42,
				"hits": [
					{"document": {"id": "s3://bucket/docs/Doc_0001.pdf"}},
					{"document": {"id": 17}},
					{"document": {}}
				]
			}
		}`))
	}))
	defer srv.Close()

	ex := NewAPIExecutor("vendor", srv.URL+"/", APIOptions{
		Path:         "/v1/retrieve",
		QueryField:   "q",
		TopKField:    "limit",
		ResultsField: "data.hits",
		IDField:      "document.id",
		TotalField:   "data.total",
		AuthHeader:   "X-Api-Key",
		APIKey:       "secret",
	})

	res, err := ex.Execute(context.Background(), "vector databases", 5)
	require.NoError(t, err)

	assert.Equal(t, "vector databases", got["q"])
	assert.EqualValues(t, 5, got["limit"])
	assert.Equal(t, "secret", auth)

	require.Len(t, res.PredictedIDs, 3)
	assert.Equal(t, "s3://bucket/docs/Doc_0001.pdf", res.PredictedIDs[0])
	assert.Equal(t, json.Number("17"), res.PredictedIDs[1])
	assert.Nil(t, res.PredictedIDs[2])
	assert.Equal(t, int64(42), res.TotalMatches)
	assert.Positive(t, res.Latency)

	assert.Equal(t, "vendor", ex.Name())
	assert.Equal(t, CapabilityReal, ex.Capability())
}

func TestAPIExecutor_Defaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"results": ["a", "b"]}`))
	}))
	defer srv.Close()

	ex := NewAPIExecutor("vendor", srv.URL, APIOptionsFrom(nil, "k"))
	res, err := ex.Execute(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, res.PredictedIDs)
	assert.Equal(t, int64(2), res.TotalMatches)
}

func TestAPIExecutor_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind sample.ErrorKind
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: "slow down", wantKind: sample.KindRateLimited},
		{name: "server error", status: http.StatusBadGateway, body: "", wantKind: sample.KindUnavailable},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, wantKind: sample.KindTimeout},
		{name: "bad request", status: http.StatusBadRequest, wantKind: sample.KindInternal},
		{name: "not a list", status: http.StatusOK, body: `{"results": {"id": 1}}`, wantKind: sample.KindInternal},
		{name: "malformed json", status: http.StatusOK, body: `{`, wantKind: sample.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewAPIExecutor("vendor", srv.URL, APIOptions{}).Execute(context.Background(), "q", 3)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, sample.KindOf(err))
		})
	}
}

func TestAPIExecutor_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAPIExecutor("vendor", srv.URL, APIOptions{}).Execute(ctx, "q", 3)
	require.Error(t, err)
	assert.Equal(t, sample.KindCanceled, sample.KindOf(err))
}
