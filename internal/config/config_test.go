package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestConfigLoaderLoad(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		want    func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults fill an empty file",
			config: "storage:\n  directory: /tmp/wordnest\n",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendFile, cfg.Storage.Backend)
				assert.Equal(t, "/tmp/wordnest", cfg.Storage.Directory)
				assert.Equal(t, int64(5*1024*1024), cfg.Storage.QuotaBytes)
				assert.Equal(t, 1, cfg.Sync.PollIntervalSeconds)
				assert.Equal(t, time.Second, cfg.Sync.PollInterval())
				assert.Equal(t, "word_image_cache_permanent", cfg.Images.CacheKey)
				assert.Equal(t, 0.8, cfg.Speech.Rate)
			},
		},
		{
			name: "explicit values override defaults",
			config: `storage:
  backend: sqlite
  directory: /data/storage
  database_file: /data/app.db
  quota_bytes: 1048576
sync:
  poll_interval_seconds: 5
speech:
  command: say
  rate: 1.5
`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
				assert.Equal(t, "/data/app.db", cfg.Storage.DatabaseFile)
				assert.Equal(t, int64(1048576), cfg.Storage.QuotaBytes)
				assert.Equal(t, 5*time.Second, cfg.Sync.PollInterval())
				assert.Equal(t, "say", cfg.Speech.Command)
				assert.Equal(t, 1.5, cfg.Speech.Rate)
			},
		},
		{
			name:    "unknown storage backend",
			config:  "storage:\n  backend: redis\n  directory: /tmp/wordnest\n",
			wantErr: "backend",
		},
		{
			name:    "poll interval below one second",
			config:  "storage:\n  directory: /tmp/wordnest\nsync:\n  poll_interval_seconds: 0\n",
			wantErr: "poll_interval_seconds",
		},
		{
			name:    "speech rate above the supported range",
			config:  "storage:\n  directory: /tmp/wordnest\nspeech:\n  rate: 3.0\n",
			wantErr: "rate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewConfigLoader(writeConfigFile(t, tt.config))
			require.NoError(t, err)

			cfg, err := loader.Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestConfigLoaderReadsAccessKeyFromEnvironment(t *testing.T) {
	t.Setenv("UNSPLASH_ACCESS_KEY", "test-access-key")

	loader, err := NewConfigLoader(writeConfigFile(t, "storage:\n  directory: /tmp/wordnest\n"))
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "test-access-key", cfg.Images.UnsplashAccessKey)
}
