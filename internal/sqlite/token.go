package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/taskpane/internal/repository"
)

// TokenRepository implements repository.TokenRepository for SQLite
type TokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Issue records a hashed token for a user
func (r *TokenRepository) Issue(ctx context.Context, userID, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_tokens (token_hash, user_id) VALUES (?, ?)`,
		tokenHash, userID,
	)
	return insertError(err, "token")
}

// Resolve returns the user a token hash belongs to and stamps last use
func (r *TokenRepository) Resolve(ctx context.Context, tokenHash string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM auth_tokens WHERE token_hash = ?`,
		tokenHash,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE auth_tokens SET last_used = CURRENT_TIMESTAMP WHERE token_hash = ?`,
		tokenHash,
	); err != nil {
		return "", fmt.Errorf("failed to update token usage: %w", err)
	}
	return userID, nil
}

// Revoke deletes a token
func (r *TokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return requireAffected(result)
}
