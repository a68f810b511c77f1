//go:build windows

package store

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

type fileLock struct {
	f    *os.File
	path string
}

// acquireLock polls for exclusive creation of lockFile until ctx is done.
func acquireLock(ctx context.Context, lockFile string) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(lockFile), 0o755); err != nil {
		return nil, err
	}
	for {
		f, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
		if err == nil {
			return &fileLock{f: f, path: lockFile}, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func (l *fileLock) release() {
	if l == nil || l.f == nil {
		return
	}
	_ = l.f.Close()
	_ = os.Remove(l.path)
}
