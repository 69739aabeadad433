// Package tokenstore provides durable backends for the auth session token.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const tokenKey = "token"

// FileStore keeps the token as a single file under a directory.
type FileStore struct {
	d *diskv.Diskv
}

// NewFileStore stores the token under dir, creating it on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		FilePerm:          0o600,
		PathPerm:          0o700,
	})}
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func pathToKey(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

// Load returns the stored token, or "" when none is stored.
func (s *FileStore) Load(_ context.Context) (string, error) {
	if !s.d.Has(tokenKey) {
		return "", nil
	}
	data, err := s.d.Read(tokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return string(data), nil
}

// Save replaces the stored token.
func (s *FileStore) Save(_ context.Context, token string) error {
	if err := s.d.Write(tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	err := s.d.Erase(tokenKey)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to erase token: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o700)
}
