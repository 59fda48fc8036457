package service

import (
	"context"
	"io"
	"time"
)

// ImageStorage stores product pictures in an object store.
type ImageStorage interface {
	// Upload writes the object under key.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns an address clients can download the object from.
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Close releases the underlying bucket or client.
	Close() error
}
