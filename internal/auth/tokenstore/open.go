package tokenstore

import (
	"context"
	"fmt"

	"github.com/rpggio/taskpane/internal/sqlite"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Store is the auth.Store contract with a release hook.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Close() error
}

type sqliteStore struct {
	*sqlite.SessionStore
	db *sqlite.DB
}

func (s sqliteStore) Close() error { return s.db.Close() }

type fileStore struct {
	*FileStore
}

func (fileStore) Close() error { return nil }

// Open returns the token store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendSQLite:
		if err := ensureDir(path); err != nil {
			return nil, fmt.Errorf("failed to prepare session path: %w", err)
		}
		db, err := sqlite.New(path)
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewSessionStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return sqliteStore{SessionStore: store, db: db}, nil
	case BackendFile:
		return fileStore{NewFileStore(path)}, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", backend)
	}
}
