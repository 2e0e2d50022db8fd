package profile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_storage "github.com/wordnest/wordnest/internal/mocks/storage"
	"github.com/wordnest/wordnest/internal/storage"
)

func newTestRepository(t *testing.T, opts ...RepositoryOption) (*Repository, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewRepository(store, opts...), store
}

func TestRepositorySaveAndGet(t *testing.T) {
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := base
	repo, _ := newTestRepository(t, WithClock(func() time.Time { return clock }))

	p := New("Mia", base)
	_, err := p.AddWord("cat", base)
	require.NoError(t, err)
	require.NoError(t, repo.Save(p))
	assert.Equal(t, ISOTime(base), p.LastModified)

	loaded, ok := repo.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Mia", loaded.Name)
	require.Len(t, loaded.Data.Words, 1)
	assert.Equal(t, "cat", loaded.Data.Words[0].Text)

	// A second save advances lastModified.
	clock = base.Add(time.Minute)
	require.NoError(t, repo.Save(loaded))
	reloaded, ok := repo.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, ISOTime(clock), reloaded.LastModified)
}

func TestRepositoryGetNormalizes(t *testing.T) {
	repo, store := newTestRepository(t)

	stored := []Profile{{
		ID:        "p1",
		Name:      "Legacy",
		CreatedAt: "2026-01-01T00:00:00.000Z",
		Data: Data{
			Letters: []Letter{{ID: "C", IsVisible: true, Pronunciations: []string{"/stale/"}}},
			SelectedPronunciations: map[string][]string{
				"C": {"/k/", "/bogus/"},
				"D": {"/d/"},
			},
		},
	}}
	encoded, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, store.Write(ProfilesKey, string(encoded)))

	loaded, ok := repo.Get("p1")
	require.True(t, ok)
	require.Len(t, loaded.Data.Letters, 26)
	assert.Equal(t, []string{"/k/", "/s/"}, loaded.Data.Letters[2].Pronunciations)
	assert.Equal(t, map[string][]string{"C": {"/k/"}}, loaded.Data.SelectedPronunciations)
	assert.NotNil(t, loaded.Data.Words)
}

func TestRepositoryGetReturnsCopy(t *testing.T) {
	repo, _ := newTestRepository(t)
	p := New("Mia", time.Now())
	require.NoError(t, repo.Save(p))

	first, ok := repo.Get(p.ID)
	require.True(t, ok)
	first.Name = "mutated"

	second, ok := repo.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Mia", second.Name)
}

func TestRepositoryCorruptIndexFailsSoft(t *testing.T) {
	repo, store := newTestRepository(t)
	require.NoError(t, store.Write(ProfilesKey, "{not json"))

	assert.Empty(t, repo.ListSummaries())
	_, ok := repo.Get("anything")
	assert.False(t, ok)

	// Saving replaces the damaged index with a fresh collection.
	p := New("Recovered", time.Now())
	require.NoError(t, repo.Save(p))
	summaries := repo.ListSummaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "Recovered", summaries[0].Name)
}

func TestRepositorySavePropagatesWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	store.EXPECT().Read(ProfilesKey).Return("", false)
	store.EXPECT().Write(ProfilesKey, gomock.Any()).Return(storage.ErrQuotaExceeded)

	repo := NewRepository(store)
	err := repo.Save(New("Mia", time.Now()))
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
}

func TestRepositoryDelete(t *testing.T) {
	repo, _ := newTestRepository(t)
	first := New("First", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	second := New("Second", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))
	require.NoError(t, repo.SetCurrentProfileID(first.ID))

	t.Run("removes the profile and clears a pointing current id", func(t *testing.T) {
		require.NoError(t, repo.Delete(first.ID))
		_, ok := repo.Get(first.ID)
		assert.False(t, ok)
		assert.Empty(t, repo.CurrentProfileID())
		_, ok = repo.CurrentProfile()
		assert.False(t, ok)
	})

	t.Run("keeps the others", func(t *testing.T) {
		_, ok := repo.Get(second.ID)
		assert.True(t, ok)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete("profile_missing"))
		assert.Len(t, repo.ListSummaries(), 1)
	})
}

func TestRepositoryEnsureDefault(t *testing.T) {
	t.Run("creates and persists the demo profile on an empty store", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		first, err := repo.EnsureDefault()
		require.NoError(t, err)
		assert.Equal(t, DemoProfileID, first.ID)
		assert.Equal(t, DemoProfileID, repo.CurrentProfileID())

		// A second call finds the stored demo instead of recreating it.
		again, err := repo.EnsureDefault()
		require.NoError(t, err)
		assert.Equal(t, DemoProfileID, again.ID)
		assert.Len(t, repo.ListSummaries(), 1)
	})

	t.Run("returns the earliest-created profile when several exist", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		later := New("Later", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
		earlier := New("Earlier", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(later))
		require.NoError(t, repo.Save(earlier))

		found, err := repo.EnsureDefault()
		require.NoError(t, err)
		assert.Equal(t, "Earlier", found.Name)
	})
}

func TestRepositoryCurrentProfilePointer(t *testing.T) {
	repo, _ := newTestRepository(t)
	p := New("Mia", time.Now())
	require.NoError(t, repo.Save(p))

	require.NoError(t, repo.SetCurrentProfileID(p.ID))
	current, ok := repo.CurrentProfile()
	require.True(t, ok)
	assert.Equal(t, p.ID, current.ID)

	// A dangling pointer resolves to no selection, not an error.
	require.NoError(t, repo.SetCurrentProfileID("profile_gone"))
	_, ok = repo.CurrentProfile()
	assert.False(t, ok)

	// Clearing removes the key entirely.
	require.NoError(t, repo.SetCurrentProfileID(""))
	assert.Empty(t, repo.CurrentProfileID())
}

func TestRepositoryScenario(t *testing.T) {
	// A parent sets up a child profile and records a first learning session.
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	repo, _ := newTestRepository(t, WithClock(func() time.Time { return clock }))

	mia := repo.Create("Mia")
	require.NoError(t, repo.Save(mia))
	require.NoError(t, repo.SetCurrentProfileID(mia.ID))

	current, ok := repo.CurrentProfile()
	require.True(t, ok)
	_, err := current.AddWord("cat", clock)
	require.NoError(t, err)
	require.NoError(t, current.SetLetterVisible("C", true))
	require.NoError(t, current.TogglePronunciation("C", "/k/"))

	clock = clock.Add(time.Minute)
	require.NoError(t, repo.Save(current))

	reloaded, ok := repo.CurrentProfile()
	require.True(t, ok)
	require.Len(t, reloaded.Data.Words, 1)
	assert.Equal(t, "cat", reloaded.Data.Words[0].Text)
	assert.True(t, reloaded.Data.Letters[2].IsVisible)
	assert.Equal(t, []string{"/k/"}, reloaded.Data.SelectedPronunciations["C"])
	assert.Equal(t, ISOTime(clock), reloaded.LastModified)
}

func TestRepositoryMigrateLegacy(t *testing.T) {
	t.Run("nothing to migrate", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		migrated, err := repo.MigrateLegacy()
		require.NoError(t, err)
		assert.Nil(t, migrated)
	})

	t.Run("converts the legacy blob into a profile", func(t *testing.T) {
		repo, store := newTestRepository(t)
		legacy := Data{
			Words: []Word{{ID: "word_1", Text: "cat", Star: 3, CreatedAt: "2025-01-01T00:00:00.000Z"}},
		}
		encoded, err := json.Marshal(legacy)
		require.NoError(t, err)
		require.NoError(t, store.Write(LegacyDataKey, string(encoded)))

		migrated, err := repo.MigrateLegacy()
		require.NoError(t, err)
		require.NotNil(t, migrated)
		assert.Equal(t, "Default", migrated.Name)
		assert.Equal(t, migrated.ID, repo.CurrentProfileID())

		_, ok := store.Read(LegacyDataKey)
		assert.False(t, ok)

		loaded, ok := repo.Get(migrated.ID)
		require.True(t, ok)
		require.Len(t, loaded.Data.Words, 1)
		assert.Equal(t, "cat", loaded.Data.Words[0].Text)
	})

	t.Run("unparsable legacy blob is skipped", func(t *testing.T) {
		repo, store := newTestRepository(t)
		require.NoError(t, store.Write(LegacyDataKey, "{broken"))

		migrated, err := repo.MigrateLegacy()
		require.NoError(t, err)
		assert.Nil(t, migrated)
	})
}
