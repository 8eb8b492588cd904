package gallery

import (
	"fmt"
	"os"
	"path/filepath"
)

// CompressStatus is the outcome of ensuring one compressed artifact.
type CompressStatus int

const (
	// CompressFresh means a cached artifact was reused without invoking the codec.
	CompressFresh CompressStatus = iota
	// CompressRegenerated means the codec produced a new artifact.
	CompressRegenerated
	// CompressFailed means the image could not be compressed and is excluded
	// from upload and the manifest.
	CompressFailed
)

func (s CompressStatus) String() string {
	switch s {
	case CompressFresh:
		return "fresh"
	case CompressRegenerated:
		return "regenerated"
	case CompressFailed:
		return "failed"
	default:
		return fmt.Sprintf("CompressStatus(%d)", int(s))
	}
}

// CompressResult is the per-image outcome of the compression step. Failures
// are carried as values rather than errors so one corrupt file never aborts
// its group.
type CompressResult struct {
	Name           ImageName
	OriginalPath   string
	CompressedPath string
	Status         CompressStatus
	Reason         error // set when Status == CompressFailed
	OriginalSize   int64
	CompressedSize int64
}

// Ready reports whether the compressed artifact exists and can be uploaded.
func (r CompressResult) Ready() bool {
	return r.Status != CompressFailed
}

// Reduction returns the percentage size reduction of the compressed artifact
// relative to the original. Informational only.
func (r CompressResult) Reduction() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-r.CompressedSize) / float64(r.OriginalSize) * 100
}

// Compressor decides per image whether a cached compressed artifact is
// reusable or must be regenerated through the codec.
type Compressor struct {
	codec   ImageCodec
	maxSize int
	quality int
	logger  Logger
}

// NewCompressor creates a Compressor with the given codec settings.
func NewCompressor(codec ImageCodec, maxSize, quality int, logger Logger) *Compressor {
	return &Compressor{
		codec:   codec,
		maxSize: maxSize,
		quality: quality,
		logger:  logger,
	}
}

// EnsureGroup ensures a compressed artifact exists for every image in the
// group, returning one result per image in the group's image order.
func (c *Compressor) EnsureGroup(g *Group) []CompressResult {
	results := make([]CompressResult, 0, len(g.Images))

	compressedDir := g.CompressedDir()
	if err := os.MkdirAll(compressedDir, 0755); err != nil {
		err = fmt.Errorf("creating compressed directory: %w", err)
		for _, img := range g.Images {
			results = append(results, CompressResult{
				Name:         img.Name,
				OriginalPath: img.Path,
				Status:       CompressFailed,
				Reason:       err,
			})
		}
		return results
	}

	for _, img := range g.Images {
		r := c.ensure(img, compressedDir)
		if r.Status == CompressFailed {
			c.logger.Warn("image compression failed", "group", g.ID, "image", img.Name.Original(), "error", r.Reason)
		}
		results = append(results, r)
	}
	return results
}

// ensure applies the cache-freshness policy to a single image: an existing
// artifact whose mtime is not older than the original's is reused, anything
// else goes through the codec and overwrites the artifact.
func (c *Compressor) ensure(img ImageRef, compressedDir string) CompressResult {
	result := CompressResult{
		Name:           img.Name,
		OriginalPath:   img.Path,
		CompressedPath: filepath.Join(compressedDir, img.Name.Compressed()),
	}

	origInfo, err := os.Stat(img.Path)
	if err != nil {
		result.Status = CompressFailed
		result.Reason = fmt.Errorf("stat original: %w", err)
		return result
	}
	result.OriginalSize = origInfo.Size()

	if compInfo, err := os.Stat(result.CompressedPath); err == nil &&
		!compInfo.ModTime().Before(origInfo.ModTime()) {
		result.Status = CompressFresh
		result.CompressedSize = compInfo.Size()
		c.logger.Debug("cache hit", "image", img.Name.Original())
		return result
	}

	data, err := c.codec.Encode(img.Path, c.maxSize, c.quality)
	if err != nil {
		result.Status = CompressFailed
		result.Reason = fmt.Errorf("encoding: %w", err)
		return result
	}

	if err := writeFileAtomic(result.CompressedPath, data); err != nil {
		result.Status = CompressFailed
		result.Reason = fmt.Errorf("writing artifact: %w", err)
		return result
	}

	result.Status = CompressRegenerated
	result.CompressedSize = int64(len(data))
	c.logger.Info("image compressed",
		"image", img.Name.Original(),
		"reduction_pct", fmt.Sprintf("%.1f", result.Reduction()),
		"original_mb", fmt.Sprintf("%.1f", float64(result.OriginalSize)/1024/1024),
		"compressed_mb", fmt.Sprintf("%.1f", float64(result.CompressedSize)/1024/1024),
	)
	return result
}
