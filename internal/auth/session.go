// Package auth holds the process-wide authentication session: the bearer
// token in memory, mirrored to durable client storage.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNotInitialized is returned by Login and Logout before Init.
var ErrNotInitialized = errors.New("auth session not initialized")

// Store persists the token across runs.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Session is the single source of the current token. It implements
// api.TokenSource.
type Session struct {
	store  Store
	logger *slog.Logger

	mu          sync.RWMutex
	token       string
	initialized bool
}

// NewSession creates a session backed by store. Call Init before use.
func NewSession(store Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{store: store, logger: logger}
}

// Init reads the persisted token, if any.
func (s *Session) Init(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.initialized = true
	s.mu.Unlock()
	s.logger.Debug("auth session initialized", "authenticated", token != "")
	return nil
}

// Login authenticates and, on success only, stores the token durably and
// in memory. A failed login leaves any existing token untouched.
func (s *Session) Login(ctx context.Context, authn Authenticator, email, password string) error {
	if !s.isInitialized() {
		return ErrNotInitialized
	}
	token, err := authn.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", "email", email, "error", err)
		return err
	}
	if err := s.store.Save(ctx, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.logger.Info("logged in", "email", email)
	return nil
}

// Logout drops the token from memory and storage. The in-memory token is
// cleared even when the store fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("clearing stored session failed", "error", err)
		return fmt.Errorf("clearing session: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// Token returns the current token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) isInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}
