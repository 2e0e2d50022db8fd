package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/wordnest/wordnest/internal/storage"
)

// Storage keys. The whole profile collection lives under one key and is
// always rewritten as a unit; the current-profile pointer is a separate
// scalar key and is a weak reference (it may dangle after a deletion).
const (
	ProfilesKey       = "english_learning_profiles"
	CurrentProfileKey = "current_profile_id"
	LegacyDataKey     = "parentData"
)

// Repository provides CRUD over the stored profile collection and manages
// the current-profile pointer. Reads fail soft (corrupt or missing data
// degrades to empty); writes propagate failures so the caller can warn the
// user that data was not saved.
type Repository struct {
	store storage.Store
	now   func() time.Time
}

// RepositoryOption configures optional Repository behavior.
type RepositoryOption func(*Repository)

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a Repository over the given store.
func NewRepository(store storage.Store, opts ...RepositoryOption) *Repository {
	repo := &Repository{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// loadAll reads the stored profile array. Absent and unparsable content both
// yield an empty slice; corrupt is true only for the unparsable case so Save
// can log that it is overwriting a damaged index.
func (r *Repository) loadAll() (profiles []Profile, corrupt bool) {
	raw, ok := r.store.Read(ProfilesKey)
	if !ok || raw == "" {
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		slog.Error("stored profiles are not parsable, treating as empty", "error", err)
		return nil, true
	}
	return profiles, false
}

// ListSummaries returns a summary per stored profile. Any read or parse
// failure yields an empty list.
func (r *Repository) ListSummaries() []Summary {
	profiles, _ := r.loadAll()
	summaries := make([]Summary, 0, len(profiles))
	for i := range profiles {
		summaries = append(summaries, profiles[i].Summary())
	}
	return summaries
}

// Get returns the profile with the given ID, normalized so the at-rest
// invariants hold (pronunciation lists refreshed from the static table,
// stale selections pruned). ok is false when the ID is absent or the stored
// collection is unreadable.
func (r *Repository) Get(id string) (*Profile, bool) {
	if id == "" {
		return nil, false
	}
	profiles, _ := r.loadAll()
	for i := range profiles {
		if profiles[i].ID == id {
			found := profiles[i].Clone()
			found.Normalize()
			return found, true
		}
	}
	return nil, false
}

// Save stamps lastModified and writes the whole collection back under the
// single profiles key. A corrupt stored index is deliberately replaced with
// a fresh one-element collection rather than blocking the write. Write
// failures (quota, unavailable store) propagate to the caller.
func (r *Repository) Save(p *Profile) error {
	profiles, corrupt := r.loadAll()
	if corrupt {
		slog.Warn("overwriting corrupt profile index", "profile_id", p.ID)
	}

	p.LastModified = ISOTime(r.now())
	replaced := false
	for i := range profiles {
		if profiles[i].ID == p.ID {
			profiles[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		profiles = append(profiles, *p)
	}

	encoded, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := r.store.Write(ProfilesKey, string(encoded)); err != nil {
		return fmt.Errorf("save profile %s: %w", p.ID, err)
	}
	return nil
}

// Create builds a new empty profile with a fresh ID. It is not persisted;
// the caller must Save it explicitly.
func (r *Repository) Create(name string) *Profile {
	return New(name, r.now())
}

// Delete removes the profile from the collection and writes it back. When
// the deleted profile is the current one, the pointer is cleared so it never
// dangles onto a freshly-reused ID. Deleting an absent ID is a no-op.
func (r *Repository) Delete(id string) error {
	profiles, _ := r.loadAll()
	kept := profiles[:0]
	for i := range profiles {
		if profiles[i].ID != id {
			kept = append(kept, profiles[i])
		}
	}
	if len(kept) == len(profiles) {
		return nil
	}

	encoded, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := r.store.Write(ProfilesKey, string(encoded)); err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}

	if r.CurrentProfileID() == id {
		if err := r.SetCurrentProfileID(""); err != nil {
			return fmt.Errorf("clear current profile pointer: %w", err)
		}
	}
	return nil
}

// EnsureDefault returns the profile with the earliest creation time when any
// profiles exist (insertion order in the raw array can differ after
// imports). On a completely empty store it creates the demo profile once,
// persists it, and points the current-profile pointer at it.
func (r *Repository) EnsureDefault() (*Profile, error) {
	profiles, _ := r.loadAll()
	if len(profiles) > 0 {
		first := profiles[0]
		for _, candidate := range profiles[1:] {
			if createdBefore(candidate, first) {
				first = candidate
			}
		}
		found := first.Clone()
		found.Normalize()
		return found, nil
	}

	demo := NewDemo(r.now())
	if err := r.Save(demo); err != nil {
		return nil, fmt.Errorf("save demo profile: %w", err)
	}
	if err := r.SetCurrentProfileID(demo.ID); err != nil {
		return nil, fmt.Errorf("set current profile: %w", err)
	}
	return demo, nil
}

func createdBefore(a, b Profile) bool {
	at, aok := ParseISOTime(a.CreatedAt)
	bt, bok := ParseISOTime(b.CreatedAt)
	if aok && bok {
		return at.Before(bt)
	}
	return a.CreatedAt < b.CreatedAt
}

// CurrentProfileID returns the stored pointer, or "" when absent.
func (r *Repository) CurrentProfileID() string {
	id, _ := r.store.Read(CurrentProfileKey)
	return id
}

// SetCurrentProfileID stores the pointer. An empty ID removes the key
// instead of storing an empty string, so "absent" and "explicitly cleared"
// are indistinguishable.
func (r *Repository) SetCurrentProfileID(id string) error {
	if id == "" {
		if err := r.store.Remove(CurrentProfileKey); err != nil {
			return fmt.Errorf("clear current profile: %w", err)
		}
		return nil
	}
	if err := r.store.Write(CurrentProfileKey, id); err != nil {
		return fmt.Errorf("set current profile: %w", err)
	}
	return nil
}

// CurrentProfile resolves the pointer. A pointer referencing a deleted or
// unreadable profile is treated as "no selection", never an error.
func (r *Repository) CurrentProfile() (*Profile, bool) {
	return r.Get(r.CurrentProfileID())
}

// MigrateLegacy converts a pre-profile single-blob data key into a profile
// of its own, saves it, points the current-profile pointer at it, and
// removes the old key. It returns nil with no error when there is nothing
// to migrate; an unparsable legacy blob is dropped with a log instead of
// blocking startup.
func (r *Repository) MigrateLegacy() (*Profile, error) {
	raw, ok := r.store.Read(LegacyDataKey)
	if !ok || raw == "" {
		return nil, nil
	}

	var legacy Data
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		slog.Error("legacy data is not parsable, skipping migration", "error", err)
		return nil, nil
	}

	migrated := r.Create("Default")
	migrated.Data = legacy
	migrated.Normalize()
	if err := r.Save(migrated); err != nil {
		return nil, fmt.Errorf("save migrated profile: %w", err)
	}
	if err := r.SetCurrentProfileID(migrated.ID); err != nil {
		return nil, fmt.Errorf("set current profile: %w", err)
	}
	if err := r.store.Remove(LegacyDataKey); err != nil {
		return nil, fmt.Errorf("remove legacy data: %w", err)
	}
	return migrated, nil
}
