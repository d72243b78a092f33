// Package storage keeps gift proof photos. The photo reference handed around
// the rest of the bot is the object key returned by Save.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

type Storage interface {
	// Save stores body and returns its key.
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	// URL returns an address the photo can be fetched from.
	URL(ctx context.Context, key string) (string, error)
}

const photoPrefix = "photos"

// NewKey builds a unique object key that keeps a readable trace of the
// uploaded file name.
func NewKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.Make(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if len(base) > 40 {
		base = strings.Trim(base[:40], "-")
	}

	name := uuid.NewString()
	if base != "" {
		name += "-" + base
	}
	if ext != "" && slug.IsSlug(strings.TrimPrefix(ext, ".")) {
		name += ext
	}
	return path.Join(photoPrefix, name)
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	return path.Clean(key) == key && !strings.HasPrefix(key, "..")
}
