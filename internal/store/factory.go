package store

import (
	"context"
	"fmt"

	"photosync/internal/config"
	"photosync/internal/gallery"
)

// NewStoreFromConfig creates an ObjectStore implementation based on the
// store config type. An empty type selects S3.
func NewStoreFromConfig(ctx context.Context, cfg config.S3Config) (gallery.ObjectStore, error) {
	switch cfg.Type {
	case "", "s3":
		return NewS3Store(ctx, cfg.Bucket, cfg.Region, cfg.AccessKey, cfg.SecretKey)
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem store requires fs_root to be set")
		}
		return NewFileSystemStore(cfg.FSRoot)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
