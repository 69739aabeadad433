package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SessionStore persists the client's bearer token in a single-row table.
// It satisfies auth.Store.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates the client session table if needed.
func NewSessionStore(db *DB) (*SessionStore, error) {
	if err := db.RunClientMigrations(); err != nil {
		return nil, err
	}
	return &SessionStore{db: db}, nil
}

// Load returns the stored token, or "" when none is stored.
func (s *SessionStore) Load(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM client_session WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return token, nil
}

// Save replaces the stored token.
func (s *SessionStore) Save(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_session (id, token, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at
	`, token)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
