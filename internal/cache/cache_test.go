package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/models"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should report a missing file as empty", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "summary_cache.json"))

		_, found, err := store.Get(ctx, "1")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should persist entries as one JSON object", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "summary_cache.json")
		store := NewFileStore(path)

		require.NoError(t, store.Set(ctx, "1", json.RawMessage(`{"a":1}`)))
		require.NoError(t, store.Set(ctx, "2", json.RawMessage(`{"b":2}`)))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"1":{"a":1},"2":{"b":2}}`, string(data))

		value, found, err := NewFileStore(path).Get(ctx, "2")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"b":2}`, string(value))
	})

	t.Run("should fail on a corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "summary_cache.json")
		require.NoError(t, os.WriteFile(path, []byte("invalid json{"), 0644))

		_, found, err := NewFileStore(path).Get(ctx, "1")

		assert.Error(t, err)
		assert.False(t, found)
	})

	t.Run("should keep every concurrent write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "summary_cache.json")
		store := NewFileStore(path)

		var wg sync.WaitGroup
		for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				assert.NoError(t, store.Set(ctx, key, json.RawMessage(`true`)))
			}(key)
		}
		wg.Wait()

		entries, err := store.load()
		require.NoError(t, err)
		assert.Len(t, entries, 8)

		leftovers, err := filepath.Glob(path + ".*.tmp")
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})

	t.Run("should clear the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "summary_cache.json")
		store := NewFileStore(path)
		require.NoError(t, store.Set(ctx, "1", json.RawMessage(`{}`)))

		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestBadgerStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewBadgerStore("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, found, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "1", json.RawMessage(`{"summary":"x"}`)))
	value, found, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"summary":"x"}`, string(value))

	require.NoError(t, store.Clear(ctx))
	_, found, err = store.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	store := NewRedisStore(srv.Addr(), "", 0, "ghdash:summary:")
	t.Cleanup(func() { _ = store.Close() })

	t.Run("should report a missing key", func(t *testing.T) {
		_, found, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should store values under the prefix", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "1", json.RawMessage(`{"summary":"x"}`)))

		raw, err := srv.Get("ghdash:summary:1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"summary":"x"}`, raw)

		value, found, err := store.Get(ctx, "1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"summary":"x"}`, string(value))
	})

	t.Run("should clear only prefixed keys", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "2", json.RawMessage(`{}`)))
		require.NoError(t, srv.Set("other:key", "keep"))

		require.NoError(t, store.Clear(ctx))

		_, found, err := store.Get(ctx, "2")
		require.NoError(t, err)
		assert.False(t, found)
		assert.False(t, srv.Exists("ghdash:summary:1"))
		assert.True(t, srv.Exists("other:key"))
	})

	t.Run("should surface connection errors", func(t *testing.T) {
		down := NewRedisStore("127.0.0.1:1", "", 0, "p:")
		t.Cleanup(func() { _ = down.Close() })

		_, _, err := down.Get(ctx, "1")
		assert.Error(t, err)
	})
}

func TestRedisStore_Key(t *testing.T) {
	store := NewRedisStore("localhost:6379", "", 0, "ghdash:summary:")
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, "ghdash:summary:42", store.key("42"))
}

func TestOpen(t *testing.T) {
	t.Run("should open the file backend", func(t *testing.T) {
		store, err := Open(config.CacheConfig{Backend: config.BackendFile, File: filepath.Join(t.TempDir(), "c.json")})
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, store)
	})

	t.Run("should reject unknown backends", func(t *testing.T) {
		_, err := Open(config.CacheConfig{Backend: "memcached"})
		assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
	})
}

func TestSummaryCache(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "summary_cache.json")
	c := NewSummaryCache(NewFileStore(path))

	resp := &models.SummaryResponse{
		Summary:        json.RawMessage(`{"issue_type":"bug","summary":"Crash on save"}`),
		Files:          []models.PRFile{},
		MentionedUsers: []string{"alice"},
	}
	require.NoError(t, c.Set(ctx, "123", resp))

	got, found, err := c.Get(ctx, "123")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, string(resp.Summary), string(got.Summary))
	assert.Equal(t, []string{"alice"}, got.MentionedUsers)

	t.Run("should wrap read failures", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

		_, _, err := c.Get(ctx, "123")

		assert.True(t, stderrors.Is(err, errors.ErrCacheRead))
	})
}
