package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxErrorBody = 512

// APIOptions maps a vendor's REST search endpoint onto the executor.
// Dotted fields address nested JSON objects ("data.hits", "document.id").
type APIOptions struct {
	Path         string
	QueryField   string
	TopKField    string
	ResultsField string
	IDField      string
	TotalField   string
	AuthHeader   string
	AuthScheme   string
	APIKey       string
}

func (o *APIOptions) withDefaults() {
	if o.Path == "" {
		o.Path = "/search"
	}
	if o.QueryField == "" {
		o.QueryField = "query"
	}
	if o.TopKField == "" {
		o.TopKField = "top_k"
	}
	if o.ResultsField == "" {
		o.ResultsField = "results"
	}
	if o.IDField == "" {
		o.IDField = "id"
	}
	if o.AuthHeader == "" {
		o.AuthHeader = "Authorization"
	}
	if o.AuthScheme == "" && strings.EqualFold(o.AuthHeader, "Authorization") {
		o.AuthScheme = "Bearer"
	}
}

// APIOptionsFrom reads the adapter's string options.
func APIOptionsFrom(opts map[string]string, apiKey string) APIOptions {
	return APIOptions{
		Path:         opts["path"],
		QueryField:   opts["query_field"],
		TopKField:    opts["top_k_field"],
		ResultsField: opts["results_field"],
		IDField:      opts["id_field"],
		TotalField:   opts["total_field"],
		AuthHeader:   opts["auth_header"],
		AuthScheme:   opts["auth_scheme"],
		APIKey:       apiKey,
	}
}

// APIExecutor queries a vendor knowledge base over JSON/HTTP.
type APIExecutor struct {
	name    string
	baseURL string
	opts    APIOptions
	client  *http.Client
}

func NewAPIExecutor(name, baseURL string, opts APIOptions) *APIExecutor {
	opts.withDefaults()
	return &APIExecutor{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *APIExecutor) Execute(ctx context.Context, query string, topK int) (*Execution, error) {
	payload, err := json.Marshal(map[string]any{
		e.opts.QueryField: query,
		e.opts.TopKField:  topK,
	})
	if err != nil {
		return nil, fmt.Errorf("api encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+e.opts.Path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("api create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.opts.APIKey != "" {
		value := e.opts.APIKey
		if e.opts.AuthScheme != "" {
			value = e.opts.AuthScheme + " " + value
		}
		req.Header.Set(e.opts.AuthHeader, value)
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: api request: %w", e.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Adapter: e.name, Status: resp.StatusCode, Body: string(body)}
	}

	var doc any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("api parse response: %w", err)
	}
	latency := time.Since(start)

	ids, err := e.extractIDs(doc)
	if err != nil {
		return nil, err
	}

	total := int64(len(ids))
	if e.opts.TotalField != "" {
		if n, ok := lookup(doc, e.opts.TotalField).(json.Number); ok {
			if v, err := n.Int64(); err == nil {
				total = v
			}
		}
	}

	return &Execution{
		PredictedIDs: ids,
		TotalMatches: total,
		Latency:      latency,
	}, nil
}

// extractIDs accepts either a list of hit objects or a bare list of ids.
func (e *APIExecutor) extractIDs(doc any) ([]any, error) {
	raw := lookup(doc, e.opts.ResultsField)
	if raw == nil {
		if list, ok := doc.([]any); ok {
			raw = list
		}
	}

	hits, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("api response: field %q is not a list", e.opts.ResultsField)
	}

	ids := make([]any, 0, len(hits))
	for _, h := range hits {
		if _, isObject := h.(map[string]any); isObject {
			ids = append(ids, lookup(h, e.opts.IDField))
			continue
		}
		ids = append(ids, h)
	}
	return ids, nil
}

func (e *APIExecutor) Name() string           { return e.name }
func (e *APIExecutor) Capability() Capability { return CapabilityReal }
func (e *APIExecutor) Close() error           { return nil }

func lookup(doc any, path string) any {
	cur := doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}
