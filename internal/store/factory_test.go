package store

import (
	"context"
	"testing"

	"photosync/internal/config"
)

func TestNewStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := NewStoreFromConfig(ctx, config.S3Config{Type: "memory"})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := s.(*MemoryStore); !ok {
			t.Errorf("store = %T, want *MemoryStore", s)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		s, err := NewStoreFromConfig(ctx, config.S3Config{Type: "filesystem", FSRoot: t.TempDir()})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := s.(*FileSystemStore); !ok {
			t.Errorf("store = %T, want *FileSystemStore", s)
		}
	})

	t.Run("filesystem requires a root", func(t *testing.T) {
		if _, err := NewStoreFromConfig(ctx, config.S3Config{Type: "filesystem"}); err == nil {
			t.Error("expected error for filesystem store without fs_root")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := NewStoreFromConfig(ctx, config.S3Config{Type: "ftp"}); err == nil {
			t.Error("expected error for unknown store type")
		}
	})
}
