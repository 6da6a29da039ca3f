package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/devtrack/internal/backing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "~/.devtrack", cfg.Storage.Dir)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "devtrack:", cfg.Storage.Redis.Prefix)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "stderr", cfg.Logger.Output)
	assert.Equal(t, 10, cfg.Store.SeedCount)
	assert.Equal(t, "dev_user", cfg.Store.UserID)
	assert.False(t, cfg.Store.StrictTimeLogs)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devtrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: sqlite
  dir: /tmp/devtrack-test
store:
  seed_count: 0
  user_id: alice
logger:
  level: debug
`), 0o644))
	t.Setenv("DEVTRACK_STORE_STRICT_TIME_LOGS", "true")
	t.Setenv("DEVTRACK_LOGGER_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 0, cfg.Store.SeedCount)
	assert.Equal(t, "alice", cfg.Store.UserID)
	assert.True(t, cfg.Store.StrictTimeLogs)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)

	assert.Equal(t, backing.Config{
		Driver: "sqlite",
		Dir:    "/tmp/devtrack-test",
		Redis:  backing.RedisConfig{Addr: "localhost:6379", Prefix: "devtrack:"},
	}, cfg.Storage.Backing())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"DEVTRACK_STORAGE_DRIVER": "postgres"}, "storage.driver"},
		{"unknown level", map[string]string{"DEVTRACK_LOGGER_LEVEL": "loud"}, "logger.level"},
		{"negative seed", map[string]string{"DEVTRACK_STORE_SEED_COUNT": "-1"}, "store.seed_count"},
		{"unknown format", map[string]string{"DEVTRACK_LOGGER_FORMAT": "xml"}, "logger.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadAcceptsAnyCase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("DEVTRACK_LOGGER_LEVEL", "INFO")
	t.Setenv("DEVTRACK_LOGGER_FORMAT", "JSON")
	t.Setenv("DEVTRACK_STORAGE_DRIVER", "Memory")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DEVTRACK_STORE_USER_ID=from_dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DEVTRACK_STORE_USER_ID") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.Store.UserID)
}
