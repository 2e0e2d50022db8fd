// Package testutil provides shared test helpers for creating config files,
// stores and profile fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wordnest/wordnest/internal/profile"
	"github.com/wordnest/wordnest/internal/storage"
)

// SetupTestConfig creates a minimal config file with storage rooted in
// tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`storage:
  backend: file
  directory: %s
  quota_bytes: 1048576
sync:
  poll_interval_seconds: 1
`,
		filepath.Join(tmpDir, "storage"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewFileStore creates a file store rooted in a fresh temporary directory.
func NewFileStore(t *testing.T, opts ...storage.FileStoreOption) *storage.FileStore {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir(), opts...)
	require.NoError(t, err)
	return store
}

// FixedClock returns a clock frozen at the given time.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// SeedProfile creates and saves a profile with a couple of content entries,
// returning the saved copy.
func SeedProfile(t *testing.T, repo *profile.Repository, name string, now time.Time) *profile.Profile {
	t.Helper()

	seeded := profile.New(name, now)
	_, err := seeded.AddWord("apple", now)
	require.NoError(t, err)
	_, err = seeded.AddSentence("I like apples.", now.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, seeded.SetLetterVisible("A", true))
	require.NoError(t, repo.Save(seeded))
	return seeded
}
