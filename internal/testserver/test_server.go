package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/taskpane/internal/sqlite"
	"github.com/rpggio/taskpane/internal/transport"
	"github.com/stretchr/testify/require"
)

// Seeded credentials every test server accepts.
const (
	Email    = "test@hahn.com"
	Password = "password123"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	UserID string
}

// New starts the reference REST server over a per-test in-memory database
// with one seeded user.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	repos := transport.Repositories{
		Users:    sqlite.NewUserRepository(db),
		Tokens:   sqlite.NewTokenRepository(db),
		Projects: sqlite.NewProjectRepository(db),
		Tasks:    sqlite.NewTaskRepository(db),
	}
	user, err := transport.EnsureUser(context.Background(), repos.Users, Email, Password)
	require.NoError(t, err)

	server := httptest.NewServer(transport.NewServer(repos, nil))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		UserID: user.ID,
	}
}

// URL returns the base URL of the server.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// IssueToken registers token for the seeded user without a login round trip.
func (ts *TestServer) IssueToken(t *testing.T, token string) {
	t.Helper()
	repo := sqlite.NewTokenRepository(ts.DB)
	require.NoError(t, repo.Issue(context.Background(), ts.UserID, transport.HashToken(token)))
}
