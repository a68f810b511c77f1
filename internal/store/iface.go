package store

import (
	"context"
	"encoding/json"
)

// Accessor loads and saves named collections. A collection is an ordered
// sequence of JSON records.
// Implementations: *FileStore, *MemoryStore, *sqlite.Store, *postgres.Store and *redis.Store.
type Accessor interface {
	// Load returns every record of the collection. A collection that was never
	// saved yields an empty sequence and no error.
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	// Save replaces the whole collection. Readers never observe a partial write.
	Save(ctx context.Context, collection string, records []json.RawMessage) error
	// Exists reports whether the collection has ever been saved.
	Exists(ctx context.Context, collection string) (bool, error)
	Close() error
}

// Store is an Accessor that can run a load-mutate-save cycle as one unit of work.
type Store interface {
	Accessor
	// Do runs fn with exclusive access to the underlying accessor. No other
	// unit of work runs until fn returns.
	Do(ctx context.Context, fn func(Accessor) error) error
}
