package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Fixed keys for the two co-located durable entries. They are written
// together, read together at startup, and cleared together on logout.
const (
	tokenKey    = "rideshare_token"
	identityKey = "rideshare_user"
)

// Storage persists the raw token and the serialized identity.
type Storage interface {
	// Load returns both entries. ok is false when either is missing;
	// a session is never hydrated from a partial pair.
	Load(ctx context.Context) (token string, identity []byte, ok bool, err error)
	Save(ctx context.Context, token string, identity []byte) error
	Clear(ctx context.Context) error
}

// FileStorage keeps both entries in a single JSON file, the durable
// source of truth across process restarts.
type FileStorage struct {
	path string
}

// NewFileStorage builds a file-backed storage at the given path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads both entries from disk.
func (f *FileStorage) Load(_ context.Context) (string, []byte, bool, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, err
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return "", nil, false, err
	}

	token := entries[tokenKey]
	identity := entries[identityKey]
	if token == "" || identity == "" {
		return "", nil, false, nil
	}
	return token, []byte(identity), true, nil
}

// Save writes both entries in one atomic file replace.
func (f *FileStorage) Save(_ context.Context, token string, identity []byte) error {
	raw, err := json.Marshal(map[string]string{
		tokenKey:    token,
		identityKey: string(identity),
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Clear removes both entries.
func (f *FileStorage) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
