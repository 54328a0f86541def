package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOllamaServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "model not loaded", status)
			return
		}

		switch r.URL.Path {
		case "/api/embeddings":
			var req OllamaRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode(Response{Embedding: []float32{float32(len(req.Prompt)), 1, 2, 3}})
		case "/api/embed":
			var req OllamaBatchRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			out := BatchResponse{}
			for range req.Input {
				out.Embeddings = append(out.Embeddings, []float32{1, 2, 3, 4})
			}
			_ = json.NewEncoder(w).Encode(out)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbedder_EmbedQuery(t *testing.T) {
	srv := newOllamaServer(t, http.StatusOK)
	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	e := NewEmbedder(client, WithTask(""), WithExecutorMaxLength(2))
	vec, err := e.EmbedQuery(context.Background(), "  what is ml  ")
	require.NoError(t, err)

	// instruct disabled: prompt is the trimmed query
	assert.Equal(t, []float32{10, 1}, vec)
}

func TestEmbedder_EmbedTexts(t *testing.T) {
	srv := newOllamaServer(t, http.StatusOK)
	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	vecs, err := NewEmbedder(client).EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, vecs, 3)

	none, err := NewEmbedder(client).EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestOllamaClient_Errors(t *testing.T) {
	srv := newOllamaServer(t, http.StatusServiceUnavailable)
	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)

	_, err = client.Generate(context.Background(), Request{Model: "m"})
	assert.True(t, apperr.IsValidation(err))

	_, err = client.GenerateBatch(context.Background(), BatchRequest{Prompts: []string{"x"}})
	assert.True(t, apperr.IsValidation(err))
}
