package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
)

// FileStore keeps one file per key inside a directory. It mirrors the
// semantics of a browser's local storage: synchronous, string-valued, with an
// optional overall byte quota across all keys.
type FileStore struct {
	dir   string
	quota int64
}

// FileStoreOption configures optional FileStore behavior.
type FileStoreOption func(*FileStore)

// WithQuota caps the total bytes stored across all keys. Zero means no cap.
func WithQuota(bytes int64) FileStoreOption {
	return func(s *FileStore) {
		s.quota = bytes
	}
}

// NewFileStore creates the directory if needed and returns a store over it.
// A directory that cannot be created or written reports ErrUnavailable.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w: %v", dir, ErrUnavailable, err)
	}
	store := &FileStore{dir: dir}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Path returns the file a key is stored in. The watcher uses this to observe
// mutations made by other processes.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

// Read returns the value for key, or ok=false when absent. Unreadable files
// are logged and reported as absent so corrupt storage never crashes a
// caller.
func (s *FileStore) Read(key string) (string, bool) {
	contents, err := os.ReadFile(s.Path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read storage key, treating as absent", "key", key, "error", err)
		}
		return "", false
	}
	return string(contents), true
}

// Write stores the value under key atomically (write to a temporary file,
// then rename). Quota violations and filesystem failures are surfaced to the
// caller.
func (s *FileStore) Write(key, value string) error {
	if s.quota > 0 {
		usage, err := s.Usage()
		if err != nil {
			return fmt.Errorf("measure storage usage: %w", err)
		}
		var current int64
		if existing, ok := s.Read(key); ok {
			current = int64(len(existing))
		}
		if usage.UsedBytes-current+int64(len(value)) > s.quota {
			return fmt.Errorf("write %s (%d bytes): %w", key, len(value), ErrQuotaExceeded)
		}
	}

	path := s.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %v", key, ErrUnavailable, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w: %v", key, ErrUnavailable, err)
	}
	return nil
}

// Remove deletes the key's file. Removing an absent key is a no-op.
func (s *FileStore) Remove(key string) error {
	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w: %v", key, ErrUnavailable, err)
	}
	return nil
}

// Usage reports the total bytes and key count currently stored.
func (s *FileStore) Usage() (Usage, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Usage{}, fmt.Errorf("read storage directory: %w: %v", ErrUnavailable, err)
	}
	var usage Usage
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		usage.UsedBytes += info.Size()
		usage.Keys++
	}
	return usage, nil
}
