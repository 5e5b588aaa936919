package db

import "errors"

// Sentinel errors for storage operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	ErrInvalidKey  = errors.New("db: invalid key")
)

// Op names for error context. Redis ops match command names.
const (
	OpPing   = "PING"
	OpGet    = "GET"
	OpSet    = "SET"
	OpRead   = "read"
	OpWrite  = "write"
	OpRename = "rename"
	OpStat   = "stat"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
