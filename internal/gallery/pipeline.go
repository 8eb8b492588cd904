package gallery

import (
	"context"
	"fmt"
	"time"
)

// RunReport summarizes one pipeline run.
type RunReport struct {
	Groups      int
	Images      int
	Fresh       int
	Regenerated int
	Failed      int
	Uploaded    int
	Duration    time.Duration
}

// Pipeline sequences the synchronization steps: discovery, validation,
// manifest skeleton, remote purge, then per-group compression, upload, and
// manifest update. Strictly ordered, no parallelism; each run is a complete
// batch job.
type Pipeline struct {
	root            string
	scanner         *Scanner
	compressor      *Compressor
	syncer          *Syncer
	manifests       *ManifestStore
	uploadOriginals bool
	logger          Logger
	clock           Clock
}

// NewPipeline creates a Pipeline over the collection rooted at root.
func NewPipeline(root string, scanner *Scanner, compressor *Compressor, syncer *Syncer, manifests *ManifestStore, uploadOriginals bool, logger Logger, clock Clock) *Pipeline {
	return &Pipeline{
		root:            root,
		scanner:         scanner,
		compressor:      compressor,
		syncer:          syncer,
		manifests:       manifests,
		uploadOriginals: uploadOriginals,
		logger:          logger,
		clock:           clock,
	}
}

// Run executes the full pipeline. Structural violations and manifest
// persistence failures abort the run; per-image and purge failures are
// absorbed with a log line and leave the overall outcome successful.
// No remote or manifest mutation happens before validation passes.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	start := p.clock.Now()

	groups, err := p.scanner.DiscoverGroups(p.root)
	if err != nil {
		return nil, fmt.Errorf("discovering groups: %w", err)
	}

	validation, err := p.scanner.ValidateGroups(groups)
	if err != nil {
		return nil, fmt.Errorf("validating groups: %w", err)
	}
	if err := validation.Err(); err != nil {
		return nil, err
	}

	// Pre-image pass: rebuild the manifest skeleton from directory metadata.
	// Groups absent from this scan are dropped; nothing is merged.
	manifest := NewManifest()
	configs := make(map[string]*GroupConfig, len(groups))
	for _, g := range groups {
		cfg, err := LoadGroupConfig(g.Path)
		if err != nil {
			p.logger.Warn("skipping group with unreadable config", "group", g.ID, "error", err)
			continue
		}
		configs[g.ID] = cfg
		manifest.Groups = append(manifest.Groups, NewGroupEntry(g, cfg))
	}
	if err := p.manifests.Save(manifest); err != nil {
		return nil, fmt.Errorf("persisting manifest: %w", err)
	}

	if err := p.syncer.Purge(ctx); err != nil {
		p.logger.Warn("remote purge failed, stale objects may remain", "error", err)
	}

	report := &RunReport{Groups: len(manifest.Groups)}
	for _, g := range groups {
		cfg, ok := configs[g.ID]
		if !ok {
			continue
		}

		results := p.compressor.EnsureGroup(g)
		report.Images += len(results)
		ready := 0
		for _, r := range results {
			switch r.Status {
			case CompressFresh:
				report.Fresh++
				ready++
			case CompressRegenerated:
				report.Regenerated++
				ready++
			case CompressFailed:
				report.Failed++
			}
		}

		uploaded := p.syncer.UploadGroup(ctx, g, results, p.uploadOriginals)
		report.Uploaded += len(uploaded)
		report.Failed += ready - len(uploaded)

		entry := manifest.Group(g.ID)
		for _, u := range uploaded {
			entry.Images = append(entry.Images, ImageEntry{
				Compressed: u.CompressedKey,
				Original:   u.OriginalKey,
			})
		}
		entry.CoverImage = ResolveCover(cfg.FeaturedImage, uploaded)

		if len(uploaded) == 0 {
			p.logger.Warn("no images processed", "group", g.ID)
		}

		if err := p.manifests.Save(manifest); err != nil {
			return nil, fmt.Errorf("persisting manifest: %w", err)
		}
	}

	report.Duration = p.clock.Now().Sub(start)
	p.logger.Info("sync complete",
		"groups", report.Groups,
		"images", report.Images,
		"fresh", report.Fresh,
		"regenerated", report.Regenerated,
		"failed", report.Failed,
		"uploaded", report.Uploaded,
		"duration", report.Duration.Truncate(time.Millisecond),
	)
	return report, nil
}
