package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/lyricbook/internal/shared"
)

func newSQLite(t *testing.T) Store {
	t.Helper()
	db, err := shared.OpenDatabase(context.Background(), shared.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	s := NewSQLiteStore(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func newRedis(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb, "test")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func backends(t *testing.T) map[string]Store {
	r, _ := newRedis(t)
	return map[string]Store{
		"sqlite": newSQLite(t),
		"redis":  r,
		"memory": NewMemoryStore(),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("absent key", func(t *testing.T) {
				_, err := s.Get(ctx, "missing")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("set then get", func(t *testing.T) {
				require.NoError(t, s.Set(ctx, "genres", `[{"id":"1","name":"Pop"}]`))
				v, err := s.Get(ctx, "genres")
				require.NoError(t, err)
				assert.Equal(t, `[{"id":"1","name":"Pop"}]`, v)
			})

			t.Run("overwrite", func(t *testing.T) {
				require.NoError(t, s.Set(ctx, "theme", "light"))
				require.NoError(t, s.Set(ctx, "theme", "dark"))
				v, err := s.Get(ctx, "theme")
				require.NoError(t, err)
				assert.Equal(t, "dark", v)
			})

			t.Run("empty value is not absent", func(t *testing.T) {
				require.NoError(t, s.Set(ctx, "empty", ""))
				v, err := s.Get(ctx, "empty")
				require.NoError(t, err)
				assert.Equal(t, "", v)
			})

			t.Run("keys sorted", func(t *testing.T) {
				keys, err := s.Keys(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"empty", "genres", "theme"}, keys)
			})

			t.Run("delete", func(t *testing.T) {
				require.NoError(t, s.Delete(ctx, "empty"))
				require.NoError(t, s.Delete(ctx, "never-written"))
				_, err := s.Get(ctx, "empty")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("clear", func(t *testing.T) {
				require.NoError(t, s.Clear(ctx))
				keys, err := s.Keys(ctx)
				require.NoError(t, err)
				assert.Empty(t, keys)
				_, err = s.Get(ctx, "genres")
				assert.ErrorIs(t, err, ErrNotFound)
			})
		})
	}
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("keys are namespaced", func(t *testing.T) {
		s, mr := newRedis(t)
		require.NoError(t, s.Set(ctx, "lyrics", "[]"))

		v, err := mr.Get("test:lyrics")
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("clear leaves other namespaces", func(t *testing.T) {
		s, mr := newRedis(t)
		require.NoError(t, mr.Set("other:lyrics", "keep"))
		require.NoError(t, s.Set(ctx, "lyrics", "[]"))
		require.NoError(t, s.Clear(ctx))

		assert.True(t, mr.Exists("other:lyrics"))
		assert.False(t, mr.Exists("test:lyrics"))
	})

	t.Run("server failure is not ErrNotFound", func(t *testing.T) {
		s, mr := newRedis(t)
		mr.SetError("boom")
		_, err := s.Get(ctx, "lyrics")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("DialRedis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, err := DialRedis(ctx, "redis://"+mr.Addr()+"/0", "")
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, "lyricbook:x", s.key("x"))

		_, err = DialRedis(ctx, "not a url", "ns")
		assert.Error(t, err)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("closed", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Close())
		assert.ErrorIs(t, s.Set(ctx, "k", "v"), ErrClosed)
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := NewMemoryStore()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Set(cctx, "k", "v"), context.Canceled)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Store.Driver = "memory"
		s, err := Open(ctx, cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Database.Path = ":memory:"
		s, err := Open(ctx, cfg, nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQLiteStore{}, s)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := shared.DefaultConfig()
		cfg.Store.Driver = "redis"
		cfg.Store.RedisURL = "redis://" + mr.Addr()
		s, err := Open(ctx, cfg, nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &RedisStore{}, s)
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Store.Driver = "etcd"
		_, err := Open(ctx, cfg, nil)
		assert.ErrorIs(t, err, ErrUnsupportedDriver)
	})
}
