package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/taskpane/internal/api"
	"github.com/rpggio/taskpane/internal/auth"
	"github.com/rpggio/taskpane/internal/auth/tokenstore"
	"github.com/rpggio/taskpane/internal/testserver"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	token    string
	clearErr error
	saves    int
}

func (m *memStore) Load(context.Context) (string, error) { return m.token, nil }

func (m *memStore) Save(_ context.Context, token string) error {
	m.saves++
	m.token = token
	return nil
}

func (m *memStore) Clear(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}

type stubAuthn struct {
	token string
	err   error
}

func (s stubAuthn) Login(context.Context, string, string) (string, error) {
	return s.token, s.err
}

func TestSession_InitRestoresToken(t *testing.T) {
	s := auth.NewSession(&memStore{token: "persisted"}, nil)
	require.Empty(t, s.Token())
	require.NoError(t, s.Init(context.Background()))
	require.Equal(t, "persisted", s.Token())
	require.True(t, s.Authenticated())
}

func TestSession_LoginRequiresInit(t *testing.T) {
	s := auth.NewSession(&memStore{}, nil)
	err := s.Login(context.Background(), stubAuthn{token: "t"}, "a", "b")
	require.ErrorIs(t, err, auth.ErrNotInitialized)
}

func TestSession_LoginStoresTokenOnSuccess(t *testing.T) {
	store := &memStore{}
	s := auth.NewSession(store, nil)
	require.NoError(t, s.Init(context.Background()))

	require.NoError(t, s.Login(context.Background(), stubAuthn{token: "fresh"}, "a@b.c", "pw"))
	require.Equal(t, "fresh", s.Token())
	require.Equal(t, "fresh", store.token)
}

func TestSession_FailedLoginStoresNothing(t *testing.T) {
	store := &memStore{}
	s := auth.NewSession(store, nil)
	require.NoError(t, s.Init(context.Background()))

	err := s.Login(context.Background(), stubAuthn{err: api.ErrInvalidCredentials}, "a@b.c", "bad")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)
	require.False(t, s.Authenticated())
	require.Zero(t, store.saves)
}

func TestSession_LogoutClearsEvenWhenStoreFails(t *testing.T) {
	store := &memStore{token: "old", clearErr: errors.New("disk gone")}
	s := auth.NewSession(store, nil)
	require.NoError(t, s.Init(context.Background()))

	require.Error(t, s.Logout(context.Background()))
	require.Empty(t, s.Token())
}

func TestSession_WrongPasswordAgainstServer(t *testing.T) {
	ts := testserver.New(t)
	store := tokenstore.NewFileStore(t.TempDir())
	s := auth.NewSession(store, nil)
	require.NoError(t, s.Init(context.Background()))
	client := api.New(ts.URL(), s)

	err := s.Login(context.Background(), client, testserver.Email, "wrong")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)
	require.Equal(t, "Invalid credentials", api.Message(err))

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, stored)
	require.False(t, s.Authenticated())
}

func TestSession_LoginAndLogoutAgainstServer(t *testing.T) {
	ts := testserver.New(t)
	ctx := context.Background()
	store := tokenstore.NewFileStore(t.TempDir())
	s := auth.NewSession(store, nil)
	require.NoError(t, s.Init(ctx))
	client := api.New(ts.URL(), s)

	require.NoError(t, s.Login(ctx, client, testserver.Email, testserver.Password))
	_, err := client.ListProjects(ctx)
	require.NoError(t, err)

	restored := auth.NewSession(store, nil)
	require.NoError(t, restored.Init(ctx))
	require.Equal(t, s.Token(), restored.Token())

	require.NoError(t, s.Logout(ctx))
	_, err = client.ListProjects(ctx)
	require.ErrorIs(t, err, api.ErrUnauthorized)
}
