// Package redis stores each collection as one string key holding the JSON array.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
)

// DefaultPrefix namespaces collection keys.
const DefaultPrefix = "planner"

// Store is the Redis implementation of store.Accessor.
type Store struct {
	client *goredis.Client
	prefix string
}

// Open connects to addr and verifies the connection with PING.
func Open(ctx context.Context, addr, prefix string) (*Store, error) {
	if addr == "" {
		return nil, errors.New("redis address required")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(client, prefix), nil
}

// New wraps an existing client.
func New(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(collection string) string {
	return s.prefix + ":" + collection
}

func (s *Store) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	body, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	return store.Decode(collection, body)
}

// Save replaces the key with a single SET, which Redis applies atomically.
func (s *Store) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	body, err := store.Encode(records)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(collection), body, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, collection string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(collection)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ store.Accessor = (*Store)(nil)
