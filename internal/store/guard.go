package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Guarded serializes units of work over an Accessor. Within a process a mutex
// orders callers; when lockPath is set an exclusive OS file lock also orders
// separate processes sharing the same data directory.
type Guarded struct {
	inner    Accessor
	lockPath string
	mu       sync.Mutex
}

// NewGuarded wraps inner. An empty lockPath disables the file lock.
func NewGuarded(inner Accessor, lockPath string) *Guarded {
	return &Guarded{inner: inner, lockPath: lockPath}
}

// Do runs fn with exclusive access to the wrapped accessor.
func (g *Guarded) Do(ctx context.Context, fn func(Accessor) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lockPath != "" {
		l, err := acquireLock(ctx, g.lockPath)
		if err != nil {
			return err
		}
		defer l.release()
	}
	return fn(g.inner)
}

func (g *Guarded) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	err := g.Do(ctx, func(a Accessor) error {
		var err error
		out, err = a.Load(ctx, collection)
		return err
	})
	return out, err
}

func (g *Guarded) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	return g.Do(ctx, func(a Accessor) error {
		return a.Save(ctx, collection, records)
	})
}

func (g *Guarded) Exists(ctx context.Context, collection string) (bool, error) {
	var ok bool
	err := g.Do(ctx, func(a Accessor) error {
		var err error
		ok, err = a.Exists(ctx, collection)
		return err
	})
	return ok, err
}

func (g *Guarded) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Close()
}
