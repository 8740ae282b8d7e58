package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:sessrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("v1")))

	got, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), got)

	// overwrite
	require.NoError(t, r.Set(ctx, "k", []byte("v2")))
	got, err = r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), got)
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Get(context.Background(), "missing")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))

	require.NoError(t, r.Delete(ctx, "a"))
	_, err := r.Get(ctx, "a")
	require.True(t, errors.Is(err, common.ErrNotFound))

	require.NoError(t, r.Clear(ctx))
	_, err = r.Get(ctx, "b")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteRepository_DeleteKeys(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))
	require.NoError(t, r.Set(ctx, "c", []byte("3")))

	require.NoError(t, r.DeleteKeys(ctx, "a", "b", "nope"))

	_, err := r.Get(ctx, "a")
	require.True(t, errors.Is(err, common.ErrNotFound))
	_, err = r.Get(ctx, "b")
	require.True(t, errors.Is(err, common.ErrNotFound))

	got, err := r.Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, []byte("3"), got)
}

func TestSQLiteRepository_DeleteMissingIsNoop(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, r.Delete(context.Background(), "nope"))
}
