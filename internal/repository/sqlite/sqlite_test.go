package sqlite

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

func openTestDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	db := reopenTestDB(t, path)
	return db, path
}

func reopenTestDB(t *testing.T, path string) *sqlx.DB {
	t.Helper()
	db, err := NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, RunMigrations(db))
	return db
}

func TestEndpointCacheRepository(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)
	repo := NewEndpointCacheRepository(db)

	t.Run("miss returns nil without error", func(t *testing.T) {
		entry, err := repo.Get(ctx, "profile.read")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, domain.EndpointEntry{
			Operation: "profile.read", Method: http.MethodGet, Path: "/user/profile",
		}))

		entry, err := repo.Get(ctx, "profile.read")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, http.MethodGet, entry.Method)
		assert.Equal(t, "/user/profile", entry.Path)
	})

	t.Run("put replaces the previous route", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, domain.EndpointEntry{
			Operation: "profile.read", Method: http.MethodGet, Path: "/me",
		}))

		entry, err := repo.Get(ctx, "profile.read")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "/me", entry.Path)
	})

	t.Run("delete evicts", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "profile.read"))

		entry, err := repo.Get(ctx, "profile.read")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("deleting an absent operation is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "never.cached"))
	})
}

func TestEndpointCache_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	db, path := openTestDB(t)

	require.NoError(t, NewEndpointCacheRepository(db).Put(ctx, domain.EndpointEntry{
		Operation: "health.read", Method: http.MethodGet, Path: "/api/health-records",
	}))
	require.NoError(t, db.Close())

	entry, err := NewEndpointCacheRepository(reopenTestDB(t, path)).Get(ctx, "health.read")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "/api/health-records", entry.Path)
}

func TestStateRepository(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)
	repo := NewStateRepository(db)

	t.Run("absent key reads as empty", func(t *testing.T) {
		value, err := repo.Get(ctx, domain.StateKeyTheme)
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, domain.StateKeyTheme, string(domain.ThemeDark)))

		value, err := repo.Get(ctx, domain.StateKeyTheme)
		require.NoError(t, err)
		assert.Equal(t, string(domain.ThemeDark), value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, domain.StateKeyTheme, string(domain.ThemeLight)))

		value, err := repo.Get(ctx, domain.StateKeyTheme)
		require.NoError(t, err)
		assert.Equal(t, string(domain.ThemeLight), value)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, domain.StateKeyTheme))

		value, err := repo.Get(ctx, domain.StateKeyTheme)
		require.NoError(t, err)
		assert.Empty(t, value)
	})
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, _ := openTestDB(t)
	assert.NoError(t, RunMigrations(db))
}
