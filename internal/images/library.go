package images

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/wordnest/wordnest/internal/storage"
)

// DefaultCacheKey is the storage key holding the image URL cache. It is a
// separate, unbounded, permanent cache, distinct from the profile store.
const DefaultCacheKey = "word_image_cache_permanent"

// Library serves illustration URLs with cache-first semantics.
type Library struct {
	store    storage.Store
	fetcher  Fetcher
	cacheKey string
}

// LibraryOption configures optional Library behavior.
type LibraryOption func(*Library)

// WithCacheKey overrides the storage key holding the cache.
func WithCacheKey(key string) LibraryOption {
	return func(l *Library) {
		l.cacheKey = key
	}
}

// NewLibrary creates a Library over the given store and fetcher.
func NewLibrary(store storage.Store, fetcher Fetcher, opts ...LibraryOption) *Library {
	library := &Library{
		store:    store,
		fetcher:  fetcher,
		cacheKey: DefaultCacheKey,
	}
	for _, opt := range opts {
		opt(library)
	}
	return library
}

// Lookup returns the illustration URL for a word. A cached value is always
// returned before any new lookup is issued; a failed lookup yields a
// placeholder URL which is cached like a real hit. Lookup always returns a
// usable URL.
func (l *Library) Lookup(ctx context.Context, word string) string {
	key := strings.ToLower(strings.TrimSpace(word))
	cache := l.readCache()
	if cached, ok := cache[key]; ok {
		return cached
	}

	found, err := l.fetcher.Fetch(ctx, key)
	if err != nil {
		slog.Warn("image lookup failed, using placeholder", "word", key, "error", err)
		found = PlaceholderURL(word)
	}

	cache[key] = found
	l.writeCache(cache)
	return found
}

// readCache loads the cache map, degrading to empty on absent or corrupt
// content.
func (l *Library) readCache() map[string]string {
	raw, ok := l.store.Read(l.cacheKey)
	if !ok || raw == "" {
		return map[string]string{}
	}
	var cache map[string]string
	if err := json.Unmarshal([]byte(raw), &cache); err != nil {
		slog.Warn("image cache is not parsable, starting fresh", "error", err)
		return map[string]string{}
	}
	return cache
}

// writeCache persists the cache map. A failed write only costs a repeat
// lookup later, so it is logged rather than surfaced.
func (l *Library) writeCache(cache map[string]string) {
	encoded, err := json.Marshal(cache)
	if err != nil {
		slog.Warn("failed to encode image cache", "error", err)
		return
	}
	if err := l.store.Write(l.cacheKey, string(encoded)); err != nil {
		slog.Warn("failed to persist image cache", "error", err)
	}
}
