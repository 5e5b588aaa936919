package client

import (
	"fmt"

	"github.com/kailas-cloud/fundex/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound    = domain.ErrNotFound
	ErrValidation  = domain.ErrValidation
	ErrRateLimited = domain.ErrRateLimited
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("fundex: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("fundex: %s: %s", e.Code, e.Message)
}

// Unwrap maps the response code to a domain sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "not_found":
		return ErrNotFound
	case "validation_failed":
		return ErrValidation
	case "rate_limited":
		return ErrRateLimited
	}
	return nil
}
