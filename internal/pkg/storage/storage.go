package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when nothing is stored under the key.
var ErrObjectNotFound = errors.New("storage object not found")

// Storage is a flat blob store addressed by slash-separated keys.
type Storage interface {
	Save(ctx context.Context, key string, content io.Reader) error
	// Get returns ErrObjectNotFound for unknown keys. Callers close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key string) error
}
