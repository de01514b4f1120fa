package storage

import (
	"context"
	"io"
)

// StorageInterface is the object store evidence and listing images are
// written to. The handshake flow stores files before any database record
// references them; the returned URL is what gets embedded.
type StorageInterface interface {
	// Save durably stores the object under key and returns its public URL.
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)

	// Delete removes an object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// Open reads an object back (used by the mock storage HTTP handler).
	Open(key string) (io.ReadCloser, error)
}
