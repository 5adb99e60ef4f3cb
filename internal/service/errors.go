package service

import (
	"errors"
	"fmt"

	"casebrief/internal/casemeta"
	"casebrief/internal/llm"
	"casebrief/internal/rag"
	"casebrief/internal/storage"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrNoIndexedContent is returned when a case has no indexed chunks to
	// answer from. It wraps ErrNotFound.
	ErrNoIndexedContent = fmt.Errorf("%w: no indexed content", ErrNotFound)
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// classifyError translates errors from the lower layers into the service
// sentinels while keeping the original error in the chain.
func classifyError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rag.ErrNoEmbeddings):
		return fmt.Errorf("%s: %w: %w", msg, ErrNoIndexedContent, err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
	case errors.Is(err, rag.ErrExternalService),
		errors.Is(err, casemeta.ErrExternalService),
		errors.Is(err, llm.ErrTimeout):
		return fmt.Errorf("%s: %w: %w", msg, ErrExternalService, err)
	default:
		return WrapError(err, msg)
	}
}
