package app

import (
	"context"
	"fmt"
	"os"

	"photosync/internal/codec"
	"photosync/internal/config"
	"photosync/internal/gallery"
	"photosync/internal/store"
)

// App is the application layer between the CLI and the sync pipeline.
// It constructs all dependencies from config and manages the log file
// lifecycle on Close.
type App struct {
	cfg      *config.Config
	store    gallery.ObjectStore
	scanner  *gallery.Scanner
	pipeline *gallery.Pipeline
	logger   gallery.Logger
	logFile  *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Sync", "Validate").
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, operation string) (*App, error) {
	st, err := store.NewStoreFromConfig(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("creating object store: %w", err)
	}

	logDir := cfg.LogDir
	if logDir == "" {
		defaults, err := GetDefaults()
		if err != nil {
			return nil, fmt.Errorf("getting defaults: %w", err)
		}
		logDir = defaults["log_dir"]
	}

	runID := gallery.UUIDGenerator{}.New()
	slogger, logFile, err := newLogger(logDir, runID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger.With("operation", operation)}

	scanner := gallery.NewScanner(cfg.ImageProcessing.Formats)
	compressor := gallery.NewCompressor(
		codec.NewImagingCodec(),
		cfg.ImageProcessing.MaxSize,
		cfg.ImageProcessing.Quality,
		logger,
	)
	syncer := gallery.NewSyncer(st, cfg.S3.BasePath, logger)
	manifests := gallery.NewManifestStore(cfg.Paths.GalleryConfig)
	pipeline := gallery.NewPipeline(
		cfg.Paths.PhotographyCollection,
		scanner,
		compressor,
		syncer,
		manifests,
		cfg.ImageProcessing.UploadOriginals,
		logger,
		gallery.RealClock{},
	)

	return &App{
		cfg:      cfg,
		store:    st,
		scanner:  scanner,
		pipeline: pipeline,
		logger:   logger,
		logFile:  logFile,
	}, nil
}

// Sync runs the full synchronization pipeline.
func (a *App) Sync(ctx context.Context) (*gallery.RunReport, error) {
	return a.pipeline.Run(ctx)
}

// Scan discovers the collection's group directories.
func (a *App) Scan() ([]*gallery.Group, error) {
	return a.scanner.DiscoverGroups(a.cfg.Paths.PhotographyCollection)
}

// Validate discovers groups and runs the full validation sweep, returning
// every structural violation.
func (a *App) Validate() ([]*gallery.Group, *gallery.ValidationReport, error) {
	groups, err := a.scanner.DiscoverGroups(a.cfg.Paths.PhotographyCollection)
	if err != nil {
		return nil, nil, err
	}
	report, err := a.scanner.ValidateGroups(groups)
	if err != nil {
		return nil, nil, err
	}
	return groups, report, nil
}

// ValidateStore verifies the remote store is reachable.
func (a *App) ValidateStore(ctx context.Context) error {
	return a.store.ValidateSetup(ctx)
}

// Close releases the log file.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
