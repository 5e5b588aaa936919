package db

import (
	"context"
	"time"
)

// Store is the storage facade the fund collection is persisted through.
// Implementations: file (JSON file per key) and redis (string value per key).
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides whole-value reads and overwrites.
// Get returns ErrKeyNotFound when nothing is stored under key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
