package testutil

import (
	"context"
	"fmt"
	"io"

	"photosync/internal/gallery"
	"photosync/internal/store"
)

// NewTestStore creates a new in-memory object store for testing.
func NewTestStore() *store.MemoryStore {
	return store.NewMemoryStore()
}

// FlakyStore wraps an ObjectStore with switchable failures, for exercising
// the pipeline's purge-warning and per-image upload failure paths.
type FlakyStore struct {
	gallery.ObjectStore

	FailList   bool
	FailDelete bool
	// FailUploadKeys marks keys whose upload should fail.
	FailUploadKeys map[string]bool
}

// NewFlakyStore wraps the given store.
func NewFlakyStore(inner gallery.ObjectStore) *FlakyStore {
	return &FlakyStore{
		ObjectStore:    inner,
		FailUploadKeys: make(map[string]bool),
	}
}

func (f *FlakyStore) List(ctx context.Context, prefix string) ([]string, error) {
	if f.FailList {
		return nil, fmt.Errorf("injected list failure")
	}
	return f.ObjectStore.List(ctx, prefix)
}

func (f *FlakyStore) Delete(ctx context.Context, keys []string) error {
	if f.FailDelete {
		return fmt.Errorf("injected delete failure")
	}
	return f.ObjectStore.Delete(ctx, keys)
}

func (f *FlakyStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if f.FailUploadKeys[key] {
		return "", fmt.Errorf("injected upload failure for %s", key)
	}
	return f.ObjectStore.Upload(ctx, key, r, size, contentType)
}
