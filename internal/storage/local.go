package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalAvatarStore keeps avatars on the local filesystem under dir. The
// router serves dir at baseURL.
type LocalAvatarStore struct {
	dir     string
	baseURL string
}

// NewLocalAvatarStore creates dir if needed.
func NewLocalAvatarStore(dir, baseURL string) (*LocalAvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &LocalAvatarStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes data to dir/key.
func (s *LocalAvatarStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes dir/key. Missing files are not an error.
func (s *LocalAvatarStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete avatar %s: %w", key, err)
	}
	return nil
}

// path resolves key inside dir and rejects keys that escape it.
func (s *LocalAvatarStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid avatar key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}
