package gallery

import (
	"context"
	"fmt"
	"os"
	"path"
)

// UploadedImage records where one image landed in the remote store.
type UploadedImage struct {
	Name          ImageName
	CompressedKey string
	CompressedURL string
	OriginalKey   string // empty unless originals are uploaded
}

// Syncer reconciles the remote namespace with the local compressed set:
// a full purge of the base path followed by re-upload of every ready
// artifact. The Syncer is the sole writer of the remote namespace.
type Syncer struct {
	store    ObjectStore
	basePath string
	logger   Logger
}

// NewSyncer creates a Syncer writing under basePath in the given store.
func NewSyncer(store ObjectStore, basePath string, logger Logger) *Syncer {
	return &Syncer{
		store:    store,
		basePath: basePath,
		logger:   logger,
	}
}

// CompressedKey returns the deterministic remote key for a compressed artifact.
func (s *Syncer) CompressedKey(groupID string, name ImageName) string {
	return path.Join(s.basePath, groupID, CompressedDirName, name.Compressed())
}

// OriginalKey returns the deterministic remote key for an original file.
func (s *Syncer) OriginalKey(groupID string, name ImageName) string {
	return path.Join(s.basePath, groupID, "original", name.Original())
}

// Purge deletes every remote object under the base path. The caller treats
// a returned error as a warning: stale objects are a recoverable
// inconsistency and must never block new uploads.
func (s *Syncer) Purge(ctx context.Context) error {
	keys, err := s.store.List(ctx, s.basePath)
	if err != nil {
		return fmt.Errorf("listing remote namespace: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.store.Delete(ctx, keys); err != nil {
		return fmt.Errorf("deleting remote objects: %w", err)
	}
	s.logger.Info("remote namespace purged", "prefix", s.basePath, "objects", len(keys))
	return nil
}

// UploadGroup uploads every ready compressed artifact for the group, and
// the originals too when withOriginals is set. A failed upload is logged
// and that image is excluded from the returned set; it never aborts
// sibling uploads.
func (s *Syncer) UploadGroup(ctx context.Context, g *Group, results []CompressResult, withOriginals bool) []UploadedImage {
	var uploaded []UploadedImage
	for _, r := range results {
		if !r.Ready() {
			continue
		}

		key := s.CompressedKey(g.ID, r.Name)
		url, err := s.uploadFile(ctx, key, r.CompressedPath, contentTypeForExt(".jpg"))
		if err != nil {
			s.logger.Warn("upload failed", "group", g.ID, "key", key, "error", err)
			continue
		}

		img := UploadedImage{
			Name:          r.Name,
			CompressedKey: key,
			CompressedURL: url,
		}

		if withOriginals {
			origKey := s.OriginalKey(g.ID, r.Name)
			if _, err := s.uploadFile(ctx, origKey, r.OriginalPath, r.Name.ContentType()); err != nil {
				s.logger.Warn("original upload failed", "group", g.ID, "key", origKey, "error", err)
				continue
			}
			img.OriginalKey = origKey
		}

		uploaded = append(uploaded, img)
		s.logger.Debug("image uploaded", "key", key, "url", url)
	}
	return uploaded
}

// uploadFile streams a local file to the store under the given key.
func (s *Syncer) uploadFile(ctx context.Context, key, localPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", localPath, err)
	}

	url, err := s.store.Upload(ctx, key, f, info.Size(), contentType)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return url, nil
}
