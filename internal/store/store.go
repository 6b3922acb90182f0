// Package store provides the durable key/value layer behind the planner
// session. Values are opaque JSON blobs written one key at a time; there are
// no transactions across keys. The calling layer treats reads and writes as
// soft-failing and keeps in-memory state authoritative.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the storage contract. Implementations: FileKV (default) and RedisKV.
type KV interface {
	// Get returns the stored blob for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set durably stores the blob under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Ping reports whether the backing medium is reachable.
	Ping(ctx context.Context) error
}
