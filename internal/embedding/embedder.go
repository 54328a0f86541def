package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Embedder turns benchmark queries and documents into vectors through a Client.
type Embedder struct {
	maxLength *int
	model     string
	task      string

	client Client
}

type EmbedderOption func(executor *Embedder)

func NewEmbedder(client Client, opts ...EmbedderOption) *Embedder {
	base := &Embedder{
		model:  defaultModel,
		task:   defaultTask,
		client: client,
	}

	for _, opt := range opts {
		opt(base)
	}

	return base
}

func WithExecutorModel(model string) EmbedderOption {
	return func(executor *Embedder) {
		if model != "" {
			executor.model = model
		}
	}
}

func WithExecutorMaxLength(length int) EmbedderOption {
	return func(executor *Embedder) {
		if length > 0 {
			executor.maxLength = &length
		}
	}
}

// WithTask sets the instruction prepended to queries.
func WithTask(task string) EmbedderOption {
	return func(executor *Embedder) {
		executor.task = task
	}
}

func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	prompt := strings.TrimSpace(query)
	if e.task != "" {
		prompt = wrapWithInstruct(e.task, prompt)
	}

	slog.Debug("embedding query with instruct", "task", e.task, "query", query)

	embed, err := e.client.Generate(ctx, Request{
		Model:  e.model,
		Prompt: prompt,
	})
	if err != nil {
		return nil, err
	}

	return e.truncate(embed.Embedding), nil
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	slog.Debug("Bulk embedding documents", "count", len(texts))

	resp, err := e.client.GenerateBatch(ctx, BatchRequest{
		Model:   e.model,
		Prompts: texts,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vecs := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vecs[i] = e.truncate(emb)
	}

	slog.Debug("Generated bulk embeddings", "count", len(vecs), "model", e.model)
	return vecs, nil
}

func (e *Embedder) truncate(vec []float32) []float32 {
	if e.maxLength != nil && len(vec) > *e.maxLength {
		return vec[:*e.maxLength]
	}
	return vec
}

func wrapWithInstruct(task, query string) string {
	return fmt.Sprintf("Instruct: %s\nQuery:%s", task, query)
}
