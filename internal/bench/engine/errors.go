package engine

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/sample"
	"github.com/DjordjeVuckovic/kb-bench/internal/embedding"
)

// StatusError is a non-success HTTP answer from an adapter backend.
type StatusError struct {
	Adapter string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Adapter, e.Status, e.Body)
}

func (e *StatusError) Kind() sample.ErrorKind {
	return kindForStatus(e.Status)
}

func kindForStatus(code int) sample.ErrorKind {
	switch {
	case code == http.StatusTooManyRequests:
		return sample.KindRateLimited
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return sample.KindTimeout
	case code >= 500:
		return sample.KindUnavailable
	default:
		return sample.KindInternal
	}
}

// Error is an adapter failure whose kind was decided from a backend specific
// error (gRPC status, Postgres SQLSTATE).
type Error struct {
	Adapter string
	kind    sample.ErrorKind
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Adapter, e.Err)
}

// Unavailable marks err as a backend that cannot serve requests at all.
func Unavailable(adapter string, err error) *Error {
	return &Error{Adapter: adapter, kind: sample.KindUnavailable, Err: err}
}

func (e *Error) Unwrap() error          { return e.Err }
func (e *Error) Kind() sample.ErrorKind { return e.kind }

var grpcKinds = map[codes.Code]sample.ErrorKind{
	codes.DeadlineExceeded:  sample.KindTimeout,
	codes.Canceled:          sample.KindCanceled,
	codes.ResourceExhausted: sample.KindRateLimited,
	codes.Unavailable:       sample.KindUnavailable,
	codes.Aborted:           sample.KindUnavailable,
}

// Postgres SQLSTATE codes worth classifying.
var pgKinds = map[string]sample.ErrorKind{
	"57014": sample.KindTimeout,     // query_canceled (statement_timeout)
	"53300": sample.KindUnavailable, // too_many_connections
	"57P01": sample.KindUnavailable, // admin_shutdown
	"57P03": sample.KindUnavailable, // cannot_connect_now
}

// classify attaches a kind to backend errors that do not carry one. Errors it
// does not recognise are wrapped with the adapter name and left to
// sample.KindOf.
func classify(adapter string, err error) error {
	if err == nil {
		return nil
	}

	var esErr *types.ElasticsearchError
	if errors.As(err, &esErr) {
		body := esErr.ErrorCause.Type
		if esErr.ErrorCause.Reason != nil {
			body += ": " + *esErr.ErrorCause.Reason
		}
		return &StatusError{Adapter: adapter, Status: esErr.Status, Body: body}
	}

	var embErr *embedding.StatusError
	if errors.As(err, &embErr) {
		return &StatusError{Adapter: adapter, Status: embErr.Status, Body: embErr.Body}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := pgKinds[pgErr.Code]; ok {
			return &Error{Adapter: adapter, kind: kind, Err: err}
		}
		return &Error{Adapter: adapter, kind: sample.KindInternal, Err: err}
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.OK {
		if kind, known := grpcKinds[st.Code()]; known {
			return &Error{Adapter: adapter, kind: kind, Err: err}
		}
	}

	return fmt.Errorf("%s: %w", adapter, err)
}
