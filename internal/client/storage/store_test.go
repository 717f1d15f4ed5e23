package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engine interface {
	Store
	HintStore
}

var (
	_ engine = (*SQLiteStore)(nil)
	_ engine = (*MemoryStore)(nil)
)

func engines(t *testing.T) map[string]func() engine {
	t.Helper()
	return map[string]func() engine{
		"sqlite": func() engine {
			s := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "moviedb.sqlite"))
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"memory": func() engine { return NewMemoryStore() },
	}
}

func forEachEngine(t *testing.T, fn func(t *testing.T, s engine)) {
	for name, mk := range engines(t) {
		t.Run(name, func(t *testing.T) {
			s := mk()
			require.NoError(t, s.Initialize(context.Background()))
			fn(t, s)
		})
	}
}

func TestStore_OperationsBeforeInitialize(t *testing.T) {
	ctx := context.Background()
	for name, mk := range engines(t) {
		t.Run(name, func(t *testing.T) {
			s := mk()

			_, err := s.CreateUser(ctx, "alice", "a@x.com", "h")
			assert.ErrorIs(t, err, common.ErrStorageUnavailable)

			_, err = s.FindUserByUsername(ctx, "alice")
			assert.ErrorIs(t, err, common.ErrStorageUnavailable)

			_, err = s.FindUserByEmail(ctx, "a@x.com")
			assert.ErrorIs(t, err, common.ErrStorageUnavailable)

			_, err = s.GetWatchlist(ctx, "u")
			assert.ErrorIs(t, err, common.ErrStorageUnavailable)

			assert.ErrorIs(t, s.PutWatchlist(ctx, "u", nil), common.ErrStorageUnavailable)

			_, _, err = s.GetHint(ctx)
			assert.ErrorIs(t, err, common.ErrStorageUnavailable)
			assert.ErrorIs(t, s.SetHint(ctx, "u"), common.ErrStorageUnavailable)
			assert.ErrorIs(t, s.DeleteHint(ctx), common.ErrStorageUnavailable)
		})
	}
}

func TestStore_InitializeIsIdempotent(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s engine) {
		ctx := context.Background()
		u, err := s.CreateUser(ctx, "alice", "a@x.com", "h")
		require.NoError(t, err)

		require.NoError(t, s.Initialize(ctx))

		got, err := s.FindUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})
}

func TestStore_CreateUserAndLookup(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s engine) {
		ctx := context.Background()

		u, err := s.CreateUser(ctx, "alice", "a@x.com", "hash")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "a@x.com", u.Email)
		assert.Equal(t, "hash", u.PasswordHash)
		assert.False(t, u.CreatedAt.IsZero())

		byName, err := s.FindUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, u.ID, byName.ID)
		assert.True(t, u.CreatedAt.Equal(byName.CreatedAt))

		byEmail, err := s.FindUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, u.ID, byEmail.ID)

		missing, err := s.FindUserByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Nil(t, missing)

		missing, err = s.FindUserByEmail(ctx, "b@x.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestStore_CreateUserConflicts(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s engine) {
		ctx := context.Background()
		_, err := s.CreateUser(ctx, "alice", "a@x.com", "h")
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, "alice", "other@x.com", "h")
		require.ErrorIs(t, err, common.ErrConflict)
		assert.EqualError(t, err, "Username already exists")

		_, err = s.CreateUser(ctx, "bob", "a@x.com", "h")
		require.ErrorIs(t, err, common.ErrConflict)
		assert.EqualError(t, err, "Email already exists")

		// Both taken: username is reported first.
		_, err = s.CreateUser(ctx, "alice", "a@x.com", "h")
		assert.EqualError(t, err, "Username already exists")

		other, err := s.FindUserByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Nil(t, other)
	})
}

func TestStore_WatchlistRoundTrip(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s engine) {
		ctx := context.Background()

		empty, err := s.GetWatchlist(ctx, "u-1")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		movies := []models.Movie{
			{ImdbID: "tt1", Title: "One", Year: "2001", Type: "movie", Poster: "N/A"},
			{ImdbID: "tt2", Title: "Two", Year: "2002", Type: "series", Poster: "N/A", Plot: "p"},
		}
		require.NoError(t, s.PutWatchlist(ctx, "u-1", movies))

		got, err := s.GetWatchlist(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, movies, got)

		// Whole-record replace.
		require.NoError(t, s.PutWatchlist(ctx, "u-1", movies[1:]))
		got, err = s.GetWatchlist(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, movies[1:], got)

		require.NoError(t, s.PutWatchlist(ctx, "u-1", nil))
		got, err = s.GetWatchlist(ctx, "u-1")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		other, err := s.GetWatchlist(ctx, "u-2")
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestStore_WatchlistIsCopied(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s engine) {
		ctx := context.Background()
		in := []models.Movie{{ImdbID: "tt1", Title: "One"}}
		require.NoError(t, s.PutWatchlist(ctx, "u", in))
		in[0].Title = "changed"

		out, err := s.GetWatchlist(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, "One", out[0].Title)

		out[0].Title = "changed again"
		again, err := s.GetWatchlist(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, "One", again[0].Title)
	})
}

func TestStore_Hint(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s engine) {
		ctx := context.Background()

		_, ok, err := s.GetHint(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.SetHint(ctx, "u-1"))
		require.NoError(t, s.SetHint(ctx, "u-2"))
		v, ok, err := s.GetHint(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "u-2", v)

		require.NoError(t, s.DeleteHint(ctx))
		require.NoError(t, s.DeleteHint(ctx))
		_, ok, err = s.GetHint(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_ConcurrentPuts(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s engine) {
		ctx := context.Background()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.PutWatchlist(ctx, "u", []models.Movie{{ImdbID: "tt1"}}))
			}()
		}
		wg.Wait()

		got, err := s.GetWatchlist(ctx, "u")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moviedb.sqlite")

	s := NewSQLiteStore(path)
	require.NoError(t, s.Initialize(ctx))
	u, err := s.CreateUser(ctx, "alice", "a@x.com", "h")
	require.NoError(t, err)
	require.NoError(t, s.PutWatchlist(ctx, u.ID, []models.Movie{{ImdbID: "tt1"}}))
	require.NoError(t, s.Close())

	reopened := NewSQLiteStore(path)
	require.NoError(t, reopened.Initialize(ctx))
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	movies, err := reopened.GetWatchlist(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Movie{{ImdbID: "tt1"}}, movies)
}

func TestSQLiteStore_InMemoryDSN(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(":memory:")
	require.NoError(t, s.Initialize(ctx))
	t.Cleanup(func() { _ = s.Close() })

	_, err := s.CreateUser(ctx, "alice", "a@x.com", "h")
	require.NoError(t, err)
}

func TestSQLiteStore_InitializeFailure(t *testing.T) {
	dir := t.TempDir()
	// The database path is an existing directory.
	s := NewSQLiteStore(dir)

	err := s.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = s.GetWatchlist(context.Background(), "u")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestSQLiteStore_CloseTwice(t *testing.T) {
	s := NewSQLiteStore(":memory:")
	require.NoError(t, s.Initialize(context.Background()))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
