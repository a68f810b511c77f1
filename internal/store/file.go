package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// collectionFiles maps collection names to the file names used on disk.
var collectionFiles = map[string]string{
	"boards": "project_board_base.json",
	"teams":  "team_base.json",
	"users":  "user_base.json",
}

// CollectionPath returns the file holding a collection under dir.
func CollectionPath(dir, collection string) string {
	if name, ok := collectionFiles[collection]; ok {
		return filepath.Join(dir, name)
	}
	return filepath.Join(dir, collection+".json")
}

// FileStore keeps one JSON file per collection in a directory.
type FileStore struct {
	dir string

	mu     sync.Mutex
	closed bool
}

// OpenFile opens (and creates if needed) a file store rooted at dir.
func OpenFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(CollectionPath(s.dir, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return Decode(collection, data)
}

// Save writes the collection to a temporary file and renames it into place.
func (s *FileStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	data, err := Encode(records)
	if err != nil {
		return err
	}
	path := CollectionPath(s.dir, collection)
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", collection, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

func (s *FileStore) Exists(ctx context.Context, collection string) (bool, error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}
	_, err := os.Stat(CollectionPath(s.dir, collection))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
