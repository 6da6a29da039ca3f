package backing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBackend runs the behaviour every driver must share
func exerciseBackend(t *testing.T, b Backend) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		raw, ok, err := b.Load(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, raw)
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "tickets", `[{"id":1}]`))
		raw, ok, err := b.Load(ctx, "tickets")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1}]`, raw)
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "tickets", `first`))
		require.NoError(t, b.Save(ctx, "tickets", `second`))
		raw, ok, err := b.Load(ctx, "tickets")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", raw)
	})

	t.Run("empty value is present", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "blank", ""))
		_, ok, err := b.Load(ctx, "blank")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "timelogs", `[]`))
		require.NoError(t, b.Clear(ctx, "timelogs"))
		_, ok, err := b.Load(ctx, "timelogs")
		require.NoError(t, err)
		assert.False(t, ok)

		// clearing twice is fine
		require.NoError(t, b.Clear(ctx, "timelogs"))
	})

	t.Run("invalid key", func(t *testing.T) {
		for _, key := range []string{"", "../escape", "a/b", ".."} {
			assert.ErrorIs(t, b.Save(ctx, key, "x"), ErrInvalidKey, "save %q", key)

			raw, ok, err := b.Load(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey, "load %q", key)
			assert.False(t, ok)
			assert.Empty(t, raw)

			assert.ErrorIs(t, b.Clear(ctx, key), ErrInvalidKey, "clear %q", key)
		}
	})

	t.Run("empty key never matches a stored row", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "occupied", "value"))
		_, ok, _ := b.Load(ctx, "")
		assert.False(t, ok)
		require.ErrorIs(t, b.Clear(ctx, ""), ErrInvalidKey)

		raw, ok, err := b.Load(ctx, "occupied")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "value", raw)
	})
}

func TestMemory(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFile(dir)
	require.NoError(t, err)
	exerciseBackend(t, b)

	t.Run("one file per key", func(t *testing.T) {
		require.NoError(t, b.Save(context.Background(), "devtrack_tickets", "[]"))
		data, err := os.ReadFile(filepath.Join(dir, "devtrack_tickets.json"))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))

		matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, matches, "temp files should not be left behind")
	})
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "devtrack.db")
	b, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	exerciseBackend(t, b)

	t.Run("survives reopen", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, b.Save(ctx, "persisted", "value"))
		require.NoError(t, b.Close())

		reopened, err := OpenSQLite(path)
		require.NoError(t, err)
		defer reopened.Close()

		raw, ok, err := reopened.Load(ctx, "persisted")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "value", raw)
	})
}

func TestRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	exerciseBackend(t, NewRedis(client, "devtrack-test:"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, err := Open(ctx, Config{Driver: "memory"})
		require.NoError(t, err)
		assert.IsType(t, &Memory{}, b)
	})

	t.Run("file", func(t *testing.T) {
		b, err := Open(ctx, Config{Driver: "file", Dir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &File{}, b)
	})

	t.Run("sqlite", func(t *testing.T) {
		dir := t.TempDir()
		b, err := Open(ctx, Config{Driver: "SQLite", Dir: dir})
		require.NoError(t, err)
		defer b.Close()
		assert.IsType(t, &SQLite{}, b)
		assert.FileExists(t, filepath.Join(dir, "devtrack.db"))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, Config{Driver: "floppy"})
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}
