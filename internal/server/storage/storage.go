// Package storage defines the key-value persistence surface the
// repositories are built on. Keys follow a "<prefix>/<name>" convention
// where the prefix acts as a typed table (accounts, sessions, guilds) and
// the name is the entity's primary key.
package storage

import "context"

// Store is the persistence surface. Implementations must serialize
// conflicting writes to the same key so that two concurrent updates of
// one entity cannot produce a torn or lost document.
type Store interface {
	// Get returns the document stored under key, or common.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put durably stores data under key, replacing any previous document.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the document under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// ListKeys returns the names (without the prefix) of all documents
	// stored under the given prefix. An unknown prefix yields an empty
	// slice.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
