package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes photos under a directory. BaseURL is where that
// directory is served from; the HTTP router mounts it when it is set.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, photoPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Dir() string {
	return s.basePath
}

func (s *LocalStorage) Save(ctx context.Context, filename, _ string, body io.Reader) (string, error) {
	const op = "storage.local.save"
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := NewKey(filename)
	f, err := os.OpenFile(filepath.Join(s.basePath, filepath.FromSlash(key)), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !validKey(key) {
		return "", ErrInvalidKey
	}
	if _, err := os.Stat(filepath.Join(s.basePath, filepath.FromSlash(key))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrObjectNotFound
		}
		return "", err
	}
	if s.baseURL == "" {
		return "", nil
	}
	return s.baseURL + "/" + key, nil
}
