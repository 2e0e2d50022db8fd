// Package storage provides the local persistent key-value store the profile
// layer writes to. Values are strings (JSON documents at the call sites);
// reads never fail, writes surface unavailability and quota errors to the
// caller so data loss is never silent.
package storage

import "errors"

//go:generate mockgen -source=storage.go -destination=../mocks/storage/mock_store.go -package=mock_storage

var (
	// ErrUnavailable means the backing store cannot be accessed at all.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded means the store rejected a write due to size limits.
	// The write is not retried; the caller decides how to recover.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is the minimal persistent key-value contract.
type Store interface {
	// Read returns the stored value for key; ok is false when the key is
	// absent. Read never fails: an unreadable backend reports absent.
	Read(key string) (value string, ok bool)
	// Write stores value under key. Errors wrap ErrQuotaExceeded or
	// ErrUnavailable.
	Write(key, value string) error
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string) error
}

// Usage reports how much of the store is occupied, for the parent-facing
// storage report. Implemented by both backends.
type Usage struct {
	UsedBytes int64
	Keys      int
}
