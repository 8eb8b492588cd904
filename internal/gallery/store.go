package gallery

import (
	"context"
	"io"
)

// ObjectStore provides an interface for remote object storage backends.
// Uploads stream from an io.Reader to support large originals without
// loading them entirely into memory.
type ObjectStore interface {
	// Upload stores an object under the given key with the given content type
	// and makes it publicly readable. size is the number of bytes that will be
	// read from r. Returns the public URL of the stored object.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	// List returns every key under the given prefix. Implementations handle
	// pagination internally and return the full key set.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the given keys. Implementations split the key set into
	// batches as required by the backend (S3 caps DeleteObjects at 1000 keys
	// per request). A partial failure is reported as an error naming the
	// first failed key.
	Delete(ctx context.Context, keys []string) error

	// ValidateSetup verifies that the store is accessible and properly configured.
	ValidateSetup(ctx context.Context) error
}
