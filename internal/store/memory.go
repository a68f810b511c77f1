package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps encoded collections in process memory. It goes through
// the same Encode/Decode path as the durable backends.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	body, ok := s.data[collection]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return Decode(collection, body)
}

func (s *MemoryStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := Encode(records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.data[collection] = body
	return nil
}

// Put stores a raw body as-is. Tests use it to seed malformed content.
func (s *MemoryStore) Put(collection string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = append([]byte(nil), body...)
}

func (s *MemoryStore) Exists(ctx context.Context, collection string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	_, ok := s.data[collection]
	return ok, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
