package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sample"
	"github.com/DjordjeVuckovic/kb-bench/internal/embedding"
)

func TestClassify(t *testing.T) {
	reason := "queue is full"

	tests := []struct {
		name string
		err  error
		want sample.ErrorKind
	}{
		{name: "nil", err: nil, want: sample.KindNone},
		{
			name: "elasticsearch rejection",
			err: fmt.Errorf("failed to execute search: %w", &types.ElasticsearchError{
				Status:     429,
				ErrorCause: types.ErrorCause{Type: "es_rejected_execution_exception", Reason: &reason},
			}),
			want: sample.KindRateLimited,
		},
		{
			name: "embedding server down",
			err:  fmt.Errorf("embed query: %w", &embedding.StatusError{Status: 503, Body: "loading model"}),
			want: sample.KindUnavailable,
		},
		{
			name: "grpc deadline",
			err:  fmt.Errorf("qdrant query: %w", status.Error(codes.DeadlineExceeded, "slow")),
			want: sample.KindTimeout,
		},
		{
			name: "grpc unavailable",
			err:  status.Error(codes.Unavailable, "connection refused"),
			want: sample.KindUnavailable,
		},
		{
			name: "grpc resource exhausted",
			err:  status.Error(codes.ResourceExhausted, "quota"),
			want: sample.KindRateLimited,
		},
		{
			name: "grpc not found",
			err:  status.Error(codes.NotFound, "no collection"),
			want: sample.KindInternal,
		},
		{
			name: "postgres statement timeout",
			err:  &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"},
			want: sample.KindTimeout,
		},
		{
			name: "postgres syntax error",
			err:  &pgconn.PgError{Code: "42601"},
			want: sample.KindInternal,
		},
		{
			name: "context deadline",
			err:  context.DeadlineExceeded,
			want: sample.KindTimeout,
		},
		{
			name: "plain",
			err:  errors.New("boom"),
			want: sample.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("adapter", tt.err)
			assert.Equal(t, tt.want, sample.KindOf(err))
			if tt.err != nil {
				assert.Contains(t, err.Error(), "adapter")
			}
		})
	}
}

func TestStatusError_Kind(t *testing.T) {
	tests := map[int]sample.ErrorKind{
		429: sample.KindRateLimited,
		408: sample.KindTimeout,
		504: sample.KindTimeout,
		500: sample.KindUnavailable,
		503: sample.KindUnavailable,
		404: sample.KindInternal,
	}
	for code, want := range tests {
		err := &StatusError{Adapter: "a", Status: code}
		assert.Equal(t, want, err.Kind(), "status %d", code)
	}
}
