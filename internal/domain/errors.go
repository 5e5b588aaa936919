package domain

import "errors"

var (
	// ErrNotFound signals that no fund has the requested identifier.
	ErrNotFound = errors.New("fund not found")
	// ErrValidation signals a patch that would produce an invalid fund.
	ErrValidation = errors.New("validation failed")
	// ErrStorage signals an unreadable, unwritable or malformed collection.
	ErrStorage = errors.New("storage failure")
	// ErrRateLimited signals a request rejected by the API rate limiter.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError names the field that failed validation.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }
