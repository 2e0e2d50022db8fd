package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wordnest/wordnest/internal/profile"
)

// DefaultPollInterval is the backstop poll granularity. Concurrent edits
// from two contexts inside one poll window can overwrite one another; that
// is an accepted limitation of the last-write-wins model.
const DefaultPollInterval = time.Second

// Watcher reloads the active profile whenever another context or a sibling
// component mutates the store.
type Watcher struct {
	repo     *profile.Repository
	notifier *Notifier
	interval time.Duration
	paths    []string
}

// Option configures optional Watcher behavior.
type Option func(*Watcher)

// WithPollInterval overrides the backstop poll interval.
func WithPollInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		w.interval = interval
	}
}

// WithStoragePaths names the files holding the profile collection so
// cross-process mutations are picked up as file events. Without paths the
// watcher still converges through the poll backstop (e.g. for the SQLite
// backend, whose file churns on unrelated writes).
func WithStoragePaths(paths ...string) Option {
	return func(w *Watcher) {
		w.paths = paths
	}
}

// NewWatcher creates a Watcher over the repository. notifier may be shared
// with any component that saves profiles in the same process.
func NewWatcher(repo *profile.Repository, notifier *Notifier, opts ...Option) *Watcher {
	watcher := &Watcher{
		repo:     repo,
		notifier: notifier,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(watcher)
	}
	return watcher
}

// Run blocks until ctx is cancelled, invoking onReload with a fresh copy of
// the active profile after every detected change. A dangling or absent
// current-profile pointer simply produces no reloads until one appears.
func (w *Watcher) Run(ctx context.Context, onReload func(profile.Profile)) error {
	var fileEvents chan fsnotify.Event
	watched := map[string]bool{}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("file watching unavailable, relying on polling", "error", err)
	} else {
		defer func() {
			_ = fsWatcher.Close()
		}()
		// Watch parent directories: stores replace files by rename, which
		// would silently detach a direct file watch.
		for _, path := range w.paths {
			watched[filepath.Clean(path)] = true
			if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
				slog.Warn("failed to watch storage path, relying on polling", "path", path, "error", err)
			}
		}
		fileEvents = make(chan fsnotify.Event)
		go func() {
			defer close(fileEvents)
			for {
				select {
				case event, ok := <-fsWatcher.Events:
					if !ok {
						return
					}
					select {
					case fileEvents <- event:
					case <-ctx.Done():
						return
					}
				case err, ok := <-fsWatcher.Errors:
					if !ok {
						return
					}
					slog.Warn("storage watch error", "error", err)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	saved, cancel := w.notifier.Subscribe()
	defer cancel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	lastSeen := ""
	if current, ok := w.repo.CurrentProfile(); ok {
		lastSeen = current.LastModified
	}

	reload := func() {
		current, ok := w.repo.CurrentProfile()
		if !ok {
			lastSeen = ""
			return
		}
		lastSeen = current.LastModified
		onReload(*current)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			reload()
		case <-saved:
			reload()
		case <-ticker.C:
			current, ok := w.repo.CurrentProfile()
			if !ok {
				lastSeen = ""
				continue
			}
			if current.LastModified != lastSeen {
				lastSeen = current.LastModified
				onReload(*current)
			}
		}
	}
}
