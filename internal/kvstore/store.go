// Package kvstore defines the durable string-keyed storage capability the
// rest of the application is built on, plus its SQLite and in-memory
// adapters. Values are opaque serialized blobs owned by the callers.
package kvstore

import "context"

// Store is an asynchronous durable key-value store.
//
// Contract:
//   - Get returns (nil, nil) when the key is absent.
//   - Set replaces any prior value for the key.
//   - Delete is idempotent; removing an absent key is not an error.
//   - Clear removes every key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
