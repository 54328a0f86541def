package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("adapter name is required")

	if err.Error() != "adapter name is required" {
		t.Errorf("expected 'adapter name is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid fixture", inner)

	if err.Error() != "invalid fixture: parse failed" {
		t.Errorf("expected 'invalid fixture: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestNewFieldValidation(t *testing.T) {
	err := apperr.NewFieldValidation("concurrency", "must be at least 1")

	if err.Error() != "concurrency: must be at least 1" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("sample count mismatch")

	wrapped := fmt.Errorf("build result: %w", original)
	doubleWrapped := fmt.Errorf("run adapter: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "sample count mismatch" {
		t.Errorf("expected 'sample count mismatch', got %q", ve.Message)
	}
	if !apperr.IsValidation(doubleWrapped) {
		t.Error("IsValidation should see through wrapping")
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("connection refused")
	wrapped := fmt.Errorf("adapter error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
	if apperr.IsValidation(wrapped) {
		t.Fatal("IsValidation should be false for plain errors")
	}
}
