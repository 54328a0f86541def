package sample

import (
	"context"
	"errors"
	"net"
)

type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindTimeout     ErrorKind = "timeout"
	KindCanceled    ErrorKind = "canceled"
	KindRateLimited ErrorKind = "rate_limited"
	KindUnavailable ErrorKind = "unavailable"
	KindInternal    ErrorKind = "internal"
)

// Retryable reports whether a request that failed with this kind is worth retrying.
func (k ErrorKind) Retryable() bool {
	return k == KindRateLimited || k == KindUnavailable
}

// Sample is one observed outcome of a single benchmarked operation.
// PredictedIDs keeps whatever identifier shape the adapter returned, in rank order.
type Sample struct {
	Query        string    `json:"query,omitempty"`
	LatencyMs    float64   `json:"latency_ms"`
	Success      bool      `json:"success"`
	PredictedIDs []any     `json:"predicted_ids,omitempty"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
}

// Kinder is implemented by adapter errors that know their own classification.
type Kinder interface {
	Kind() ErrorKind
}

// KindOf classifies an adapter error. A nil error has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindUnavailable
	}

	return KindInternal
}
