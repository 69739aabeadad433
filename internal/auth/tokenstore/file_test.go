package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "session")
	store := NewFileStore(dir)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
	require.NoError(t, store.Clear(ctx), "clearing an empty store")

	require.NoError(t, store.Save(ctx, "abc"))
	info, err := os.Stat(filepath.Join(dir, tokenKey))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewFileStore(dir)
	token, err = reopened.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	require.NoError(t, reopened.Clear(ctx))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, tc := range []struct {
		backend string
		path    string
	}{
		{BackendSQLite, filepath.Join(dir, "nested", "session.db")},
		{BackendFile, filepath.Join(dir, "session")},
	} {
		store, err := Open(tc.backend, tc.path)
		require.NoError(t, err, tc.backend)

		require.NoError(t, store.Save(ctx, "tok-"+tc.backend))
		token, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "tok-"+tc.backend, token)
		require.NoError(t, store.Close())
	}

	store, err := Open(BackendSQLite, filepath.Join(dir, "nested", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	token, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-sqlite", token, "token survives reopen")
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", "x")
	require.ErrorContains(t, err, "unknown session backend")
}
